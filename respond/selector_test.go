// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package respond

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/poiesic/faqmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelector(t *testing.T) {
	t.Run("defaults carry three lines per set", func(t *testing.T) {
		s, err := NewSelector()
		require.NoError(t, err)
		assert.Len(t, s.greetings, 3)
		assert.Len(t, s.fallbacks, 3)
		assert.Len(t, s.followUps, 3)
	})

	t.Run("rejects empty message sets", func(t *testing.T) {
		_, err := NewSelector(WithGreetings(nil))
		assert.ErrorIs(t, err, ErrEmptyMessageSet)

		_, err = NewSelector(WithFallbacks([]string{}))
		assert.ErrorIs(t, err, ErrEmptyMessageSet)

		_, err = NewSelector(WithFollowUps(nil))
		assert.ErrorIs(t, err, ErrEmptyMessageSet)
	})
}

func TestSelectorPicks(t *testing.T) {
	t.Run("picks stay within their sets", func(t *testing.T) {
		s, err := NewSelector()
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			assert.Contains(t, s.greetings, s.Greeting())
			assert.Contains(t, s.fallbacks, s.Fallback())
			assert.Contains(t, s.followUps, s.FollowUp())
		}
	})

	t.Run("pinned pick is deterministic", func(t *testing.T) {
		s, err := NewSelector(WithPickFunc(func(n int) int { return n - 1 }))
		require.NoError(t, err)

		assert.Equal(t, s.greetings[2], s.Greeting())
		assert.Equal(t, s.fallbacks[2], s.Fallback())
		assert.Equal(t, s.followUps[2], s.FollowUp())
	})

	t.Run("each selection is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		s, err := NewSelector(
			WithLogger(logger),
			WithPickFunc(func(n int) int { return 1 }))
		require.NoError(t, err)

		s.Greeting()
		s.Fallback()
		s.FollowUp()

		out := buf.String()
		assert.Contains(t, out, "message selected")
		assert.Contains(t, out, "kind=greeting")
		assert.Contains(t, out, "kind=fallback")
		assert.Contains(t, out, "kind=follow-up")
		assert.Contains(t, out, "index=1")
	})
}

func TestSelectorCompose(t *testing.T) {
	s, err := NewSelector(WithPickFunc(func(n int) int { return 0 }))
	require.NoError(t, err)

	t.Run("matched answer passes through", func(t *testing.T) {
		bundle := s.Compose(core.NewMatched(1, 0.9), "The library opens at 8am.")
		assert.Equal(t, "The library opens at 8am.", bundle.Primary)
		assert.Equal(t, s.followUps[0], bundle.FollowUp)
	})

	t.Run("miss draws a fallback line", func(t *testing.T) {
		bundle := s.Compose(core.NewNoMatch(0.4), "ignored")
		assert.Equal(t, s.fallbacks[0], bundle.Primary)
		assert.Equal(t, s.followUps[0], bundle.FollowUp)
	})

	t.Run("unscored miss also falls back", func(t *testing.T) {
		bundle := s.Compose(core.NewNoMatchUnscored(), "")
		assert.Equal(t, s.fallbacks[0], bundle.Primary)
	})
}
