// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package trie

// Store is the node store contract (C3): a content-addressed key-value
// abstraction mapping a node digest to its node. The engine depends only on
// this interface, never on a concrete backing — see package store for an
// in-memory and a Badger-backed implementation.
type Store interface {
	// Get returns the node stored under digest, or ok=false if no such
	// entry exists.
	Get(digest Digest) (node Node, ok bool, err error)
	// Put stores node under digest. It is idempotent: overwriting the
	// same digest with an identical node is a no-op. Put refuses a node
	// whose hash has not been computed (ErrHashMissing).
	Put(digest Digest, node Node) error
	// Close releases any resources held by the store.
	Close() error
}
