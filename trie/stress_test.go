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

//go:build integration

package trie_test

import (
	"os"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/optakt/authtrie/internal/helpers"
	"github.com/optakt/authtrie/store"
	"github.com/optakt/authtrie/trie"
)

const (
	defaultInsertTransactionCount     = 10_000
	defaultStressTestTransactionCount = 1_000
)

func envCount(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// TestStress_BulkInsert covers §8 scenario 4 (P2) at the scale named by
// INSERT_TRANSACTION_COUNT: every inserted leaf must check true against the
// final root.
func TestStress_BulkInsert(t *testing.T) {
	count := envCount("INSERT_TRANSACTION_COUNT", defaultInsertTransactionCount)

	store := helpers.InMemoryStore(t)
	defer store.Close()

	engine := trie.NewEngine(zerolog.Nop(), store)
	gen := helpers.NewGenerator()
	entries := gen.SampleEntries(count, 32)

	var root *trie.Root
	var err error
	for _, entry := range entries {
		root, err = engine.Insert(trie.NewLeaf(entry.Key, entry.Payload), root)
		require.NoError(t, err)
	}

	for _, entry := range entries {
		ok, err := engine.Check(trie.NewLeaf(entry.Key, entry.Payload), root)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

// TestStress_ProofLoop covers P4 at the scale named by
// STRESS_TEST_TRANSACTION_COUNT: a proof is produced and verified for every
// inserted leaf against the final root.
func TestStress_ProofLoop(t *testing.T) {
	count := envCount("STRESS_TEST_TRANSACTION_COUNT", defaultStressTestTransactionCount)

	store := helpers.InMemoryStore(t)
	defer store.Close()

	engine := trie.NewEngine(zerolog.Nop(), store)
	gen := helpers.NewGenerator()
	entries := gen.SampleEntries(count, 32)

	var root *trie.Root
	var err error
	for _, entry := range entries {
		root, err = engine.Insert(trie.NewLeaf(entry.Key, entry.Payload), root)
		require.NoError(t, err)
	}
	rootHash := root.Rehash()

	for _, entry := range entries {
		proof, err := engine.Prove(entry.Key, root)
		require.NoError(t, err)
		require.NoError(t, trie.Verify(proof, rootHash))
	}
}

// TestStress_BadgerBackedBulkInsert re-runs the bulk-insert scenario against
// the on-disk Badger backing rooted at PATH_TO_DB, exercising the decode/
// rehash integrity check on every store miss rather than the in-memory map's
// pass-through Get.
func TestStress_BadgerBackedBulkInsert(t *testing.T) {
	count := envCount("INSERT_TRANSACTION_COUNT", defaultInsertTransactionCount)

	path := os.Getenv("PATH_TO_DB")
	if path == "" {
		path = t.TempDir()
	}

	db, err := store.NewBadgerStore(zerolog.Nop(), store.WithStoragePath(path))
	require.NoError(t, err)
	defer db.Close()

	engine := trie.NewEngine(zerolog.Nop(), db)
	gen := helpers.NewGenerator()
	entries := gen.SampleEntries(count, 32)

	var root *trie.Root
	for _, entry := range entries {
		root, err = engine.Insert(trie.NewLeaf(entry.Key, entry.Payload), root)
		require.NoError(t, err)
	}

	for _, entry := range entries {
		ok, err := engine.Check(trie.NewLeaf(entry.Key, entry.Payload), root)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
