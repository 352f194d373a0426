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


// Package match turns a raw text query and a knowledge base into a ranked
// decision: the best-matching entry, or a fallback when nothing clears the
// confidence threshold.
//
// Scoring is pluggable through the Strategy interface:
//
//   - SemanticStrategy: cosine similarity between the query embedding and
//     precomputed question embeddings, range [-1, 1]
//   - LexicalStrategy: raw count of shared stemmed terms after stop-word
//     filtering, a non-negative integer
//   - HybridStrategy: a weighted blend of both, degrading to lexical-only
//     when the embedder is unavailable
//
// The Engine selects the highest-scoring entry, breaking ties toward the
// lowest entry ID, and applies a strategy-specific threshold with a strict
// greater-than comparison. Engine state is an atomically swapped snapshot,
// so a knowledge base reload never exposes a half-updated view to
// concurrent queries.
package match
