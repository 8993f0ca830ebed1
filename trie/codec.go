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

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Canonical wire layout (§4.2). A 1-byte tag precedes every node's payload so
// that decoding never has to guess the variant. Absent children are a single
// 0 presence byte; present ones are a presence byte of 1 followed by the
// 32-byte digest. All lengths are 4-byte big-endian. The node's own hash
// field is never part of its preimage: Encode never reads it. Every
// encoding is self-delimiting, so a sequence of encoded nodes can be parsed
// back-to-back without an outer length prefix (used by the proof wire
// format, §6).
const (
	presenceAbsent  = 0
	presencePresent = 1
)

// Encode produces the canonical preimage bytes for a node, dispatching on
// its concrete variant. The hash field of n is not read.
func Encode(n Node) ([]byte, error) {
	switch v := n.(type) {
	case *Root:
		return encodeRoot(v), nil
	case *Branch:
		return encodeBranch(v), nil
	case *Leaf:
		return encodeLeaf(v), nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %T", ErrCodecError, n)
	}
}

func encodeRoot(r *Root) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteByte(byte(KindRoot))
	writeOptionalDigest(buf, r.left)
	writeOptionalDigest(buf, r.right)
	return append([]byte(nil), buf.Bytes()...)
}

func encodeBranch(b *Branch) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteByte(byte(KindBranch))
	writeLengthPrefixed(buf, []byte{b.split})
	buf.Write(b.left[:])
	buf.Write(b.right[:])
	return append([]byte(nil), buf.Bytes()...)
}

func encodeLeaf(l *Leaf) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteByte(byte(KindLeaf))
	writeLengthPrefixed(buf, l.key[:])
	writeLengthPrefixed(buf, l.payload)
	return append([]byte(nil), buf.Bytes()...)
}

func writeOptionalDigest(buf *bytes.Buffer, d *Digest) {
	if d == nil {
		buf.WriteByte(presenceAbsent)
		return
	}
	buf.WriteByte(presencePresent)
	buf.Write(d[:])
}

func writeLengthPrefixed(buf *bytes.Buffer, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.Write(data)
}

// Decode parses the canonical encoding of exactly one node, dispatching on
// its tag byte, and fails if any bytes remain afterwards. The returned
// node's hash is left uncomputed; callers that trust the bytes came from a
// digest-addressed store should rehash and compare against the digest they
// fetched under if they want to verify content-addressing (B2) themselves.
func Decode(data []byte) (Node, error) {
	node, rest, err := parseNode(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after node", ErrCodecError)
	}
	return node, nil
}

// parseNode parses exactly one node's canonical encoding from the front of
// data and returns the unconsumed remainder, allowing callers (the proof
// wire format, in particular) to decode several nodes back-to-back.
func parseNode(data []byte) (Node, []byte, error) {
	if len(data) < 1 {
		return nil, nil, fmt.Errorf("%w: empty buffer", ErrCodecError)
	}
	switch Kind(data[0]) {
	case KindRoot:
		return parseRoot(data[1:])
	case KindBranch:
		return parseBranch(data[1:])
	case KindLeaf:
		return parseLeaf(data[1:])
	default:
		return nil, nil, fmt.Errorf("%w: unknown tag %d", ErrCodecError, data[0])
	}
}

func parseRoot(data []byte) (Node, []byte, error) {
	left, rest, err := readOptionalDigest(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: root left child: %v", ErrCodecError, err)
	}

	right, rest, err := readOptionalDigest(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: root right child: %v", ErrCodecError, err)
	}

	return &Root{dirty: true, left: left, right: right}, rest, nil
}

func parseBranch(data []byte) (Node, []byte, error) {
	split, rest, err := readLengthPrefixed(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: branch split position: %v", ErrCodecError, err)
	}
	if len(split) != 1 {
		return nil, nil, fmt.Errorf("%w: branch split position must be 1 byte, got %d", ErrCodecError, len(split))
	}
	if len(rest) < 2*DigestSize {
		return nil, nil, fmt.Errorf("%w: branch children: want %d bytes, got %d", ErrCodecError, 2*DigestSize, len(rest))
	}

	b := &Branch{dirty: true, split: split[0]}
	copy(b.left[:], rest[:DigestSize])
	copy(b.right[:], rest[DigestSize:2*DigestSize])
	return b, rest[2*DigestSize:], nil
}

func parseLeaf(data []byte) (Node, []byte, error) {
	key, rest, err := readLengthPrefixed(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: leaf key: %v", ErrCodecError, err)
	}
	if len(key) != KeyBits {
		return nil, nil, fmt.Errorf("%w: leaf key must be %d bytes, got %d", ErrCodecError, KeyBits, len(key))
	}

	payload, rest, err := readLengthPrefixed(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: leaf payload: %v", ErrCodecError, err)
	}

	l := &Leaf{dirty: true, payload: payload}
	copy(l.key[:], key)
	return l, rest, nil
}

func readOptionalDigest(data []byte) (*Digest, []byte, error) {
	if len(data) < 1 {
		return nil, nil, fmt.Errorf("missing presence flag")
	}
	presence, rest := data[0], data[1:]
	switch presence {
	case presenceAbsent:
		return nil, rest, nil
	case presencePresent:
		if len(rest) < DigestSize {
			return nil, nil, fmt.Errorf("want %d digest bytes, got %d", DigestSize, len(rest))
		}
		var d Digest
		copy(d[:], rest[:DigestSize])
		return &d, rest[DigestSize:], nil
	default:
		return nil, nil, fmt.Errorf("invalid presence flag %d", presence)
	}
}

func readLengthPrefixed(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("want 4 length bytes, got %d", len(data))
	}
	length := binary.BigEndian.Uint32(data[:4])
	rest := data[4:]
	if uint32(len(rest)) < length {
		return nil, nil, fmt.Errorf("want %d bytes, got %d", length, len(rest))
	}
	return rest[:length], rest[length:], nil
}
