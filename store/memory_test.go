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

package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optakt/authtrie/store"
	"github.com/optakt/authtrie/trie"
)

func TestMemoryStore_PutGetRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	leaf := trie.NewLeaf(trie.Key{}, []byte("payload"))
	digest := leaf.Rehash()

	err := s.Put(digest, leaf)
	require.NoError(t, err)

	got, ok, err := s.Get(digest)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, leaf, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	_, ok, err := s.Get(trie.Digest{})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_PutRejectsUnhashedNode(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	leaf := trie.NewLeaf(trie.Key{}, nil)
	err := s.Put(trie.Digest{}, leaf)
	require.Error(t, err)
}

func TestMemoryStore_PutRejectsDigestMismatch(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	leaf := trie.NewLeaf(trie.Key{}, []byte("payload"))
	leaf.Rehash()

	err := s.Put(trie.H([]byte("wrong digest")), leaf)
	require.Error(t, err)
}

func TestMemoryStore_PutIsIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	leaf := trie.NewLeaf(trie.Key{}, []byte("payload"))
	digest := leaf.Rehash()

	require.NoError(t, s.Put(digest, leaf))
	require.NoError(t, s.Put(digest, leaf))

	got, ok, err := s.Get(digest)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, leaf, got)
}
