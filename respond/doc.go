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

// Package respond composes the user-facing side of a conversation turn.
//
// The Selector owns three message sets: greetings for opening a session,
// fallback lines for queries the knowledge base could not answer, and
// follow-up prompts appended to every response. Matched answers pass through
// verbatim; everything else is drawn uniformly at random from its set. The
// pick function is injectable so tests can pin the selection.
package respond
