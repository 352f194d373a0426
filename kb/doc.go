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


// Package kb loads and holds the knowledge base of question/answer pairs.
//
// The document format is a JSON object with a "questions" array:
//
//	{"questions": [{"question": "...", "answer": "..."}, ...]}
//
// A load validates every entry and fails as a whole on the first problem,
// wrapping ErrSchema. The resulting Store is immutable: entries keep their
// insertion-order IDs for the lifetime of the store, and a reload always
// builds a fresh store rather than patching an existing one. This makes
// read-only sharing of a Store across concurrent queries safe without
// locking.
package kb
