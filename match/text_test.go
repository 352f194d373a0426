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

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeAndFilter(t *testing.T) {
	t.Run("removes stop words", func(t *testing.T) {
		terms := tokenizeAndFilter("what is the deadline")
		assert.Equal(t, []string{"deadlin"}, terms)
	})

	t.Run("trims punctuation and lowercases", func(t *testing.T) {
		terms := tokenizeAndFilter("Library Hours?")
		assert.Equal(t, []string{"librari", "hour"}, terms)
	})

	t.Run("stems inflected forms to a common base", func(t *testing.T) {
		assert.Equal(t, tokenizeAndFilter("running"), tokenizeAndFilter("runs"))
	})

	t.Run("empty input yields no terms", func(t *testing.T) {
		assert.Empty(t, tokenizeAndFilter(""))
		assert.Empty(t, tokenizeAndFilter("   "))
	})

	t.Run("all stop words yields no terms", func(t *testing.T) {
		assert.Empty(t, tokenizeAndFilter("what is the"))
	})
}

func TestTermSet(t *testing.T) {
	t.Run("deduplicates repeated terms", func(t *testing.T) {
		set := termSet("library library LIBRARY")
		assert.Len(t, set, 1)
		assert.True(t, set["librari"])
	})
}

func TestOverlapCount(t *testing.T) {
	t.Run("counts shared terms", func(t *testing.T) {
		a := termSet("deadline to register for courses")
		b := termSet("course registration deadline")
		// "deadlin" and "cours" overlap; porter keeps register/registration apart
		assert.Equal(t, 2, overlapCount(a, b))
	})

	t.Run("disjoint sets overlap zero", func(t *testing.T) {
		assert.Equal(t, 0, overlapCount(termSet("library hours"), termSet("parking permit")))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := termSet("one two three")
		b := termSet("two three four five")
		assert.Equal(t, overlapCount(a, b), overlapCount(b, a))
	})
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "what time is it?", normalizeText("  What Time Is It?  "))
	assert.Equal(t, "", normalizeText("   "))
}
