package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// It is used to key cached artifacts (such as question embeddings) so that
// identical content always maps to the same cache slot.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Entry is a single question/answer pair in the knowledge base.
// The ID is the entry's insertion-order index in the store and is stable for
// the lifetime of the store. Entries are immutable after load.
type Entry struct {
	ID       int
	Question string
	Answer   string
}

// ScoredCandidate pairs an entry ID with a similarity score produced by a
// scoring strategy. Candidates are transient; they are ranked and discarded
// within a single match call.
type ScoredCandidate struct {
	EntryID int
	Score   float32
}

// MatchResult is the outcome of matching one query against the knowledge base.
// A match carries the winning entry ID and score; a miss carries the best
// score seen during scoring, when scoring happened at all.
type MatchResult struct {
	Matched bool
	EntryID int
	Score   float32

	// BestSeen is the highest score observed when no entry cleared the
	// threshold. Valid only when HasBestSeen is true; scoring is bypassed
	// entirely when the store is empty or unavailable.
	BestSeen    float32
	HasBestSeen bool
}

// NewMatched builds a MatchResult for a confident match.
func NewMatched(entryID int, score float32) MatchResult {
	return MatchResult{Matched: true, EntryID: entryID, Score: score}
}

// NewNoMatch builds a MatchResult for a scored query that fell below the threshold.
func NewNoMatch(bestSeen float32) MatchResult {
	return MatchResult{BestSeen: bestSeen, HasBestSeen: true}
}

// NewNoMatchUnscored builds a MatchResult for a query that was never scored,
// such as when the knowledge base failed to load or contains no entries.
func NewNoMatchUnscored() MatchResult {
	return MatchResult{}
}

// Decision returns the result as a log-friendly label.
func (r MatchResult) Decision() string {
	if r.Matched {
		return "matched"
	}
	return "fallback"
}

// ResponseBundle is the final user-facing output for one turn: the primary
// message (a matched answer or a fallback line) plus a follow-up prompt.
// It is owned by the caller and not retained by the engine.
type ResponseBundle struct {
	Primary  string
	FollowUp string
}

// VectorRecord is a cached question embedding. Records are keyed by the
// content ID of the model name and question text, so a model change or an
// edited question naturally misses the cache.
type VectorRecord struct {
	Id       ID
	Model    string
	Vector   []float32
	CachedAt time.Time
}
