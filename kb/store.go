package kb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/faqmatch/core"
)

// RawEntry is one question/answer object in the knowledge base document.
type RawEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// document is the on-disk shape of the knowledge base.
type document struct {
	Questions []RawEntry `json:"questions"`
}

// Store is the validated, ordered, immutable set of knowledge base entries.
// A Store is built once by New/Load and never mutated afterwards; replacing
// the knowledge base means building a new Store and swapping the reference.
type Store struct {
	entries []core.Entry
}

// New builds a Store from raw entries. Every entry must have a non-blank
// question and answer; the first invalid entry fails the whole load with an
// error wrapping ErrSchema.
func New(raw []RawEntry) (*Store, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrSchema, ErrNoEntries)
	}

	entries := make([]core.Entry, len(raw))
	for i, r := range raw {
		entry := core.Entry{
			ID:       i,
			Question: r.Question,
			Answer:   r.Answer,
		}
		if err := core.ValidateEntry(&entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrSchema, i, err)
		}
		entries[i] = entry
	}

	return &Store{entries: entries}, nil
}

// Load parses and validates a knowledge base document.
func Load(r io.Reader) (*Store, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return New(doc.Questions)
}

// LoadFile parses and validates a knowledge base document from a file.
// A missing file is a schema error like any other malformed input.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	defer f.Close()
	return Load(f)
}

// Entries returns the ordered entries. The returned slice is shared with the
// store and must not be modified.
func (s *Store) Entries() []core.Entry {
	return s.entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entry returns the entry with the given ID, or false when the ID does not
// index a live entry.
func (s *Store) Entry(id int) (core.Entry, bool) {
	if s == nil || id < 0 || id >= len(s.entries) {
		return core.Entry{}, false
	}
	return s.entries[id], true
}

// Questions returns the question text of every entry in ID order.
func (s *Store) Questions() []string {
	questions := make([]string, len(s.entries))
	for i, e := range s.entries {
		questions[i] = e.Question
	}
	return questions
}

// Save writes the store back out in the document format. A store saved and
// reloaded reproduces identical entry order and content.
func (s *Store) Save(w io.Writer) error {
	doc := document{Questions: make([]RawEntry, len(s.entries))}
	for i, e := range s.entries {
		doc.Questions[i] = RawEntry{Question: e.Question, Answer: e.Answer}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}
