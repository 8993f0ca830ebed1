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

import "crypto/sha256"

// DigestSize is the length, in bytes, of a node digest.
const DigestSize = 32

// Digest is a 32-byte cryptographic hash, used both as the identity of a
// stored node and as the output of H.
type Digest [DigestSize]byte

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// H is the hashing primitive (C1). It maps an arbitrary byte sequence to a
// 32-byte digest using SHA-256. The canonical encoding of every node variant
// already disambiguates the variant via a leading tag byte, so a bare hash of
// the encoding is collision-safe under SHA-256's standard assumptions; no
// keyed hashing or extra domain separation is applied here.
func H(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}
