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


// Package storage provides the storage abstraction layer for sift.
//
// This package defines the interfaces that decouple storage implementation
// from ranking logic. It allows different storage backends (BadgerDB,
// in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo, err := badger.NewProfileStore(backend)  // returns storage.ProfileRepository
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Architecture
//
//   - ProfileRepository: durable profile storage keyed by identity
//   - VectorIndex: one persistent vector collection per view, upsert by
//     identity, nearest-neighbor queries
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access from
// multiple goroutines. Upserts to distinct identities are independent;
// concurrent upserts to the same identity resolve last-write-wins.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
