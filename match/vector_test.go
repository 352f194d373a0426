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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("produces unit length", func(t *testing.T) {
		v := normalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)

		var norm float64
		for _, val := range v {
			norm += float64(val) * float64(val)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := normalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{3, 4}
		normalizeVector(in)
		assert.Equal(t, []float32{3, 4}, in)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, normalizeVector(nil))
	})
}

func TestDotProduct(t *testing.T) {
	t.Run("unit vectors give cosine", func(t *testing.T) {
		a := normalizeVector([]float32{1, 0})
		b := normalizeVector([]float32{1, 1})
		assert.InDelta(t, math.Sqrt2/2, float64(dotProduct(a, b)), 1e-6)
	})

	t.Run("mismatched lengths score zero", func(t *testing.T) {
		assert.Equal(t, float32(0), dotProduct([]float32{1, 2}, []float32{1}))
	})

	t.Run("identical unit vectors score one", func(t *testing.T) {
		v := normalizeVector([]float32{0.5, 0.25, 0.1})
		assert.InDelta(t, 1.0, float64(dotProduct(v, v)), 1e-6)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, float64(dotProduct([]float32{1, 0}, []float32{0, 1})), 1e-6)
	})

	t.Run("opposite vectors score negative one", func(t *testing.T) {
		a := normalizeVector([]float32{1, 2})
		b := normalizeVector([]float32{-1, -2})
		assert.InDelta(t, -1.0, float64(dotProduct(a, b)), 1e-6)
	})
}
