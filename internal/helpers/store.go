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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/optakt/authtrie/store"
)

// InMemoryStore returns a fresh in-memory node store for tests.
func InMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	return store.NewMemoryStore()
}

// BadgerStore returns a Badger-backed node store rooted at a temporary
// directory that testing.T cleans up automatically, grounded on the
// teacher's helpers.InMemoryDB (testing/helpers/badger.go), adapted from a
// raw *badger.DB to our own store.BadgerStore.
func BadgerStore(t *testing.T) *store.BadgerStore {
	t.Helper()

	dir := t.TempDir()
	s, err := store.NewBadgerStore(zerolog.Nop(), store.WithStoragePath(dir))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}
