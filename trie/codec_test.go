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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodec_RootRoundTrip_NoChildren(t *testing.T) {
	root := NewRoot()

	data, err := Encode(root)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*Root)
	require.True(t, ok)
	require.Nil(t, got.Left())
	require.Nil(t, got.Right())
}

func TestCodec_RootRoundTrip_BothChildren(t *testing.T) {
	root := NewRoot()
	root.SetChild(0, H([]byte("left")))
	root.SetChild(1, H([]byte("right")))

	data, err := Encode(root)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*Root)
	require.True(t, ok)
	require.Equal(t, H([]byte("left")), *got.Left())
	require.Equal(t, H([]byte("right")), *got.Right())
}

func TestCodec_BranchRoundTrip(t *testing.T) {
	left := H([]byte("left"))
	right := H([]byte("right"))
	branch := NewBranch(42, left, right)

	data, err := Encode(branch)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*Branch)
	require.True(t, ok)
	require.Equal(t, byte(42), got.Split())
	require.Equal(t, left, got.Left())
	require.Equal(t, right, got.Right())
}

func TestCodec_LeafRoundTrip(t *testing.T) {
	var key Key
	key[3] = 1
	leaf := NewLeaf(key, []byte("payload"))

	data, err := Encode(leaf)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*Leaf)
	require.True(t, ok)
	require.Equal(t, key, got.Key())
	require.Equal(t, []byte("payload"), got.Payload())
}

func TestCodec_LeafRoundTrip_EmptyPayload(t *testing.T) {
	var key Key
	leaf := NewLeaf(key, nil)

	data, err := Encode(leaf)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*Leaf)
	require.True(t, ok)
	require.Empty(t, got.Payload())
}

func TestCodec_Decode_RejectsTrailingBytes(t *testing.T) {
	leaf := NewLeaf(Key{}, []byte("x"))
	data, err := Encode(leaf)
	require.NoError(t, err)

	_, err = Decode(append(data, 0x00))
	require.ErrorIs(t, err, ErrCodecError)
}

func TestCodec_Decode_RejectsUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0xFF})
	require.ErrorIs(t, err, ErrCodecError)
}

func TestCodec_Decode_RejectsEmptyBuffer(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrCodecError)
}

func TestCodec_HashExcludesCachedHashField(t *testing.T) {
	// A leaf must encode identically before and after its cached hash field
	// is computed, since the hash field is never part of the preimage.
	leaf := NewLeaf(Key{}, []byte("x"))
	before, err := Encode(leaf)
	require.NoError(t, err)

	leaf.Rehash()
	after, err := Encode(leaf)
	require.NoError(t, err)

	require.Equal(t, before, after)
}
