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

package helpers

import (
	"encoding/binary"

	"github.com/optakt/authtrie/trie"
)

// Generator is a linear congruential pseudo-random number generator,
// turning a small seed into the deterministic, reproducible stream of keys
// and payloads the bulk-insert stress scenarios need without pulling in
// crypto/rand.
type Generator struct {
	seed  uint64
	draws uint64
}

// NewGenerator creates a Generator with a fixed, reproducible seed.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next pseudo-random 16-bit value in the sequence.
func (g *Generator) Next() uint16 {
	g.seed = (g.seed*1140671485 + 12820163) % 65536
	return uint16(g.seed)
}

// Key produces a pseudo-random 256-bit key, one bit value (0 or 1) per byte
// per trie.Key's layout. Each bit is derived by hashing the generator's next
// draw together with a monotonically increasing draw counter, rather than
// read directly off a fixed low-order bit of the draw. Two problems with the
// naive approach rule it out: the low-order bits of a linear congruential
// generator with a power-of-two modulus cycle with very short periods (the
// least-significant bit alternates with period 2 regardless of seed, so it
// carries no real entropy), and the generator's full 16-bit state has a
// period of only 65536, far smaller than the number of bits one key (let
// alone thousands of keys) consumes — without a counter that never wraps,
// keys produced a full state-cycle apart would be bit-for-bit identical.
func (g *Generator) Key() trie.Key {
	var key trie.Key
	for i := 0; i < trie.KeyBits; i++ {
		g.draws++
		var buf [10]byte
		binary.BigEndian.PutUint16(buf[:2], g.Next())
		binary.BigEndian.PutUint64(buf[2:], g.draws)
		digest := trie.H(buf[:])
		key[i] = digest[0] & 1
	}
	return key
}

// Payload produces a pseudo-random payload of the given length.
func (g *Generator) Payload(length int) []byte {
	payload := make([]byte, length)
	for i := range payload {
		payload[i] = byte(g.Next())
	}
	return payload
}

// SampleEntries generates count random key/payload entries suitable for
// BatchInsert.
func (g *Generator) SampleEntries(count, payloadSize int) []trie.Entry {
	entries := make([]trie.Entry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, trie.Entry{
			Key:     g.Key(),
			Payload: g.Payload(payloadSize),
		})
	}
	return entries
}
