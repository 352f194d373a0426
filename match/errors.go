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

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStrategyRequired is returned when a scoring strategy is not provided.
	ErrStrategyRequired = errors.New("scoring strategy required")

	// ErrEntryOutOfRange is returned when a score is requested for an entry ID
	// outside the entries the strategy was built over.
	ErrEntryOutOfRange = errors.New("entry ID out of range")

	// ErrAlphaOutOfRange is returned when a hybrid blend weight is outside [0, 1].
	ErrAlphaOutOfRange = errors.New("alpha must be between 0 and 1")
)
