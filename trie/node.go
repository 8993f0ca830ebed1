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

// Kind tags which of the three node variants a Node is. It precedes every
// node's canonical encoding as a single byte (§4.2).
type Kind byte

const (
	// KindRoot tags the distinguished top of a trie version.
	KindRoot Kind = 0
	// KindBranch tags an internal node that splits a subtree at one bit.
	KindBranch Kind = 1
	// KindLeaf tags a terminal node holding a key and its payload.
	KindLeaf Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is the tagged union at the heart of the trie: every stored node is
// exactly one of Root, Branch, or Leaf. Child references are held as
// digests, never as owning pointers into a live object graph — dereferencing
// a child always goes through a Store (C3).
//
// Do not implement Node with additional concrete types: every call site in
// this package exhaustively switches over *Root, *Branch, and *Leaf, and the
// three variants differ materially in the fields they carry and the
// algorithms that consume them.
type Node interface {
	// Kind reports which variant this node is.
	Kind() Kind
	// Hash returns the node's cached digest and whether it has been
	// computed yet. A freshly constructed node has no hash until Rehash is
	// called on it.
	Hash() (Digest, bool)
	// Rehash clears any stale hash, recomputes it from the node's current
	// content via the canonical encoding (C2) and H (C1), caches it, and
	// returns it.
	Rehash() Digest
}
