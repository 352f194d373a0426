package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "what are the admission requirements?",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestMatchResult_Decision(t *testing.T) {
	tests := []struct {
		name   string
		result MatchResult
		want   string
	}{
		{
			name:   "matched result",
			result: NewMatched(3, 0.91),
			want:   "matched",
		},
		{
			name:   "scored miss",
			result: NewNoMatch(0.42),
			want:   "fallback",
		},
		{
			name:   "unscored miss",
			result: NewNoMatchUnscored(),
			want:   "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.Decision()
			if got != tt.want {
				t.Errorf("MatchResult.Decision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchResult_Constructors(t *testing.T) {
	matched := NewMatched(7, 0.83)
	if !matched.Matched || matched.EntryID != 7 || matched.Score != 0.83 {
		t.Errorf("NewMatched() = %+v", matched)
	}

	miss := NewNoMatch(0.5)
	if miss.Matched || !miss.HasBestSeen || miss.BestSeen != 0.5 {
		t.Errorf("NewNoMatch() = %+v", miss)
	}

	unscored := NewNoMatchUnscored()
	if unscored.Matched || unscored.HasBestSeen {
		t.Errorf("NewNoMatchUnscored() = %+v", unscored)
	}
}
