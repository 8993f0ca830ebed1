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
	"fmt"
	"sync"
)

// mapStoreForTest is a minimal Store used only by this package's own tests.
// The real backings live in package store, which imports package trie and
// so cannot be imported back from here without a cycle.
type mapStoreForTest struct {
	mutex sync.Mutex
	nodes map[Digest]Node
}

// NewMemoryStoreForTest creates an empty mapStoreForTest.
func NewMemoryStoreForTest() *mapStoreForTest {
	return &mapStoreForTest{nodes: make(map[Digest]Node)}
}

func (s *mapStoreForTest) Get(digest Digest) (Node, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	node, ok := s.nodes[digest]
	return node, ok, nil
}

func (s *mapStoreForTest) Put(digest Digest, node Node) error {
	hash, ok := node.Hash()
	if !ok {
		return fmt.Errorf("store node %x: %w", digest[:], ErrHashMissing)
	}
	if hash != digest {
		return fmt.Errorf("store node %x: hash mismatch %x", digest[:], hash[:])
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nodes[digest] = node
	return nil
}

func (s *mapStoreForTest) Close() error {
	return nil
}

// forceDelete removes a node directly, bypassing the store's normal
// additive-only contract, to simulate the corruption/partial-write
// scenarios that should surface as ErrMissingNode.
func (s *mapStoreForTest) forceDelete(digest Digest) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.nodes, digest)
}
