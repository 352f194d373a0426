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


package kb

import "errors"

var (
	// ErrSchema indicates the knowledge base document is missing, unparsable,
	// or contains an entry with a blank question or answer. A load that fails
	// with ErrSchema produces no store at all; a partially loaded knowledge
	// base is worse than none.
	ErrSchema = errors.New("knowledge base schema invalid")

	// ErrNoEntries indicates the document parsed cleanly but contains zero
	// entries. Wrapped by ErrSchema on load.
	ErrNoEntries = errors.New("knowledge base has no entries")
)
