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


// Package storage defines the embedding cache abstraction and the binary
// serialization used by its backends.
//
// Embedding the knowledge base is the slow part of startup when the embedder
// is a remote service. The VectorCache keeps question vectors across process
// runs, keyed by a content hash of model name and question text, so only
// new or edited questions are re-embedded. Records are encoded with the
// MUS binary format.
//
// The storage/badger sub-package provides the BadgerDB implementation.
package storage
