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

package store

import (
	"fmt"
	"sync"

	"github.com/optakt/authtrie/trie"
)

// MemoryStore is an in-memory Store backed by a plain map. It never performs
// I/O, and read access is safe for concurrent use by multiple goroutines as
// long as writes are quiesced (§5).
type MemoryStore struct {
	mutex sync.RWMutex
	nodes map[trie.Digest]trie.Node
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[trie.Digest]trie.Node),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(digest trie.Digest) (trie.Node, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	node, ok := m.nodes[digest]
	return node, ok, nil
}

// Put implements Store.
func (m *MemoryStore) Put(digest trie.Digest, node trie.Node) error {
	hash, ok := node.Hash()
	if !ok {
		return fmt.Errorf("could not store node %x: %w", digest[:], trie.ErrHashMissing)
	}
	if hash != digest {
		return fmt.Errorf("could not store node: digest %x does not match node hash %x", digest[:], hash[:])
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Put is idempotent: writing the same digest again is a no-op, whether
	// or not the caller bothers to check first.
	if _, exists := m.nodes[digest]; exists {
		return nil
	}
	m.nodes[digest] = node
	return nil
}

// Close implements Store. It is a no-op for the in-memory backing.
func (m *MemoryStore) Close() error {
	return nil
}
