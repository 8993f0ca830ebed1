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

// Root is the distinguished top of a trie version. It has at most two
// children: left covers every key whose first bit is 0, right covers every
// key whose first bit is 1. Successive trie versions are successive, distinct
// Root digests; the old Root and everything reachable from it is never
// mutated.
type Root struct {
	hash  Digest
	dirty bool

	left  *Digest
	right *Digest
}

// NewRoot creates an empty Root with no children.
func NewRoot() *Root {
	return &Root{dirty: true}
}

// Kind implements Node.
func (r *Root) Kind() Kind {
	return KindRoot
}

// Left returns the digest of the left child, or nil if that side is empty.
func (r *Root) Left() *Digest {
	return r.left
}

// Right returns the digest of the right child, or nil if that side is empty.
func (r *Root) Right() *Digest {
	return r.right
}

// Child returns the digest of the child on the given slot (0 = left,
// 1 = right), or nil if that side is empty.
func (r *Root) Child(slot byte) *Digest {
	if slot == 0 {
		return r.left
	}
	return r.right
}

// SetChild installs the digest of the child on the given slot.
func (r *Root) SetChild(slot byte, digest Digest) {
	d := digest
	if slot == 0 {
		r.left = &d
	} else {
		r.right = &d
	}
	r.dirty = true
}

// Clone returns a copy of r that the caller may mutate (via SetChild and
// Rehash) without affecting r itself or anything else holding a reference to
// it — in particular a copy fetched from a store's read cache, which must
// never be mutated in place.
func (r *Root) Clone() *Root {
	c := *r
	return &c
}

// Hash implements Node.
func (r *Root) Hash() (Digest, bool) {
	return r.hash, !r.dirty
}

// Rehash implements Node.
func (r *Root) Rehash() Digest {
	r.dirty = true
	r.hash = H(encodeRoot(r))
	r.dirty = false
	return r.hash
}
