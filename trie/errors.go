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

import "errors"

// Error kinds (§7). All of them are surfaced to the caller; the engine never
// retries. DuplicateLeaf is the only one callers can expect to recover from
// by layering an upsert path on top of Insert. MissingNode and
// InvalidBranch indicate store corruption and should be treated as fatal.
var (
	// ErrDuplicateLeaf is returned when Insert is called with a key already
	// present under the given root, whether or not the payload matches.
	ErrDuplicateLeaf = errors.New("duplicate leaf")
	// ErrInvalidChild is returned when traversal expected a child digest
	// where invariant B1 requires one present, and found none.
	ErrInvalidChild = errors.New("invalid child")
	// ErrInvalidParent is returned when a path entry expected to be a
	// Branch or Root turned out to be a Leaf.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrInvalidBranch is returned when a Branch with fewer than two
	// children is observed, violating invariant B1.
	ErrInvalidBranch = errors.New("invalid branch")
	// ErrMissingNode is returned when the store has no entry for a digest
	// reachable from a Root.
	ErrMissingNode = errors.New("missing node")
	// ErrCodecError is returned when encoding or decoding a node fails.
	ErrCodecError = errors.New("codec error")
	// ErrHashMissing is returned when a node lacking a computed hash is
	// asked to be stored.
	ErrHashMissing = errors.New("hash missing")
)
