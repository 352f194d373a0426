package respond

import (
	"log/slog"
	"math/rand/v2"

	"github.com/poiesic/faqmatch/core"
)

// Selector turns match outcomes into user-facing responses. A matched entry
// passes its answer through verbatim; a miss draws a random fallback line.
// Every turn gets a random follow-up prompt. Safe for concurrent use when
// the configured pick function is.
type Selector struct {
	greetings []string
	fallbacks []string
	followUps []string
	pick      func(n int) int
	logger    *slog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector) error

// WithGreetings replaces the greeting lines.
func WithGreetings(lines []string) SelectorOption {
	return func(s *Selector) error {
		if len(lines) == 0 {
			return ErrEmptyMessageSet
		}
		s.greetings = lines
		return nil
	}
}

// WithFallbacks replaces the fallback lines.
func WithFallbacks(lines []string) SelectorOption {
	return func(s *Selector) error {
		if len(lines) == 0 {
			return ErrEmptyMessageSet
		}
		s.fallbacks = lines
		return nil
	}
}

// WithFollowUps replaces the follow-up lines.
func WithFollowUps(lines []string) SelectorOption {
	return func(s *Selector) error {
		if len(lines) == 0 {
			return ErrEmptyMessageSet
		}
		s.followUps = lines
		return nil
	}
}

// WithPickFunc replaces the random pick function. pick(n) must return a
// value in [0, n). Used in tests to make selection deterministic.
func WithPickFunc(pick func(n int) int) SelectorOption {
	return func(s *Selector) error {
		if pick == nil {
			pick = rand.IntN
		}
		s.pick = pick
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSelector builds a selector with the stock message sets and a uniform
// random pick.
func NewSelector(opts ...SelectorOption) (*Selector, error) {
	s := &Selector{
		greetings: defaultGreetings,
		fallbacks: defaultFallbacks,
		followUps: defaultFollowUps,
		pick:      rand.IntN,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Greeting returns a random session-opening line.
func (s *Selector) Greeting() string {
	return s.pickFrom("greeting", s.greetings)
}

// Fallback returns a random line for queries nothing matched.
func (s *Selector) Fallback() string {
	return s.pickFrom("fallback", s.fallbacks)
}

// FollowUp returns a random turn-closing prompt.
func (s *Selector) FollowUp() string {
	return s.pickFrom("follow-up", s.followUps)
}

func (s *Selector) pickFrom(kind string, lines []string) string {
	i := s.pick(len(lines))
	s.logger.Debug("message selected", "kind", kind, "index", i)
	return lines[i]
}

// Compose builds the response bundle for one turn. The answer is used only
// when the result matched; it is the matched entry's answer text.
func (s *Selector) Compose(result core.MatchResult, answer string) core.ResponseBundle {
	primary := answer
	if !result.Matched {
		primary = s.Fallback()
	}
	return core.ResponseBundle{
		Primary:  primary,
		FollowUp: s.FollowUp(),
	}
}
