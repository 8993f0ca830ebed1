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

// Leaf is a terminal node holding a full 256-bit key and an opaque payload.
// A Leaf always carries its full key; path compression is entirely the
// Branch's responsibility (its split position), so there is no need for a
// Leaf-side prefix field (see DESIGN.md, "Open questions").
type Leaf struct {
	hash  Digest
	dirty bool

	key     Key
	payload []byte
}

// NewLeaf creates a Leaf for the given key and payload. The payload may be
// empty; a nil payload is stored as an empty, non-nil slice.
func NewLeaf(key Key, payload []byte) *Leaf {
	if payload == nil {
		payload = []byte{}
	}
	return &Leaf{
		dirty:   true,
		key:     key,
		payload: payload,
	}
}

// Kind implements Node.
func (l *Leaf) Kind() Kind {
	return KindLeaf
}

// Key returns the leaf's full key.
func (l *Leaf) Key() Key {
	return l.key
}

// Payload returns the leaf's opaque payload bytes. Callers must not mutate
// the returned slice.
func (l *Leaf) Payload() []byte {
	return l.payload
}

// Clone returns a copy of l, with its own backing array for the payload, so
// the caller may mutate it freely without affecting l.
func (l *Leaf) Clone() *Leaf {
	c := *l
	c.payload = append([]byte(nil), l.payload...)
	return &c
}

// Hash implements Node.
func (l *Leaf) Hash() (Digest, bool) {
	return l.hash, !l.dirty
}

// Rehash implements Node.
func (l *Leaf) Rehash() Digest {
	l.dirty = true
	l.hash = l.contentHash()
	l.dirty = false
	return l.hash
}

// contentHash computes the leaf's digest from its current key and payload
// without touching its cached hash or dirty flag, so that callers comparing
// a candidate leaf against a stored one (Check) never mutate the candidate.
func (l *Leaf) contentHash() Digest {
	return H(encodeLeaf(l))
}
