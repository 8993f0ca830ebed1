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

package mocks

import "github.com/optakt/authtrie/trie"

// Store is a hand-written fake satisfying trie.Store, with per-method
// ...Func fields rather than a generated mock, so that tests can override
// exactly the behaviour they care about and leave the rest at a sane
// default.
type Store struct {
	GetFunc   func(digest trie.Digest) (trie.Node, bool, error)
	PutFunc   func(digest trie.Digest, node trie.Node) error
	CloseFunc func() error
}

// BaselineStore returns a Store backed by a plain map, good enough for
// tests that only care about a handful of calls and want to override one
// of them.
func BaselineStore() *Store {
	nodes := make(map[trie.Digest]trie.Node)
	s := Store{
		GetFunc: func(digest trie.Digest) (trie.Node, bool, error) {
			node, ok := nodes[digest]
			return node, ok, nil
		},
		PutFunc: func(digest trie.Digest, node trie.Node) error {
			nodes[digest] = node
			return nil
		},
		CloseFunc: func() error {
			return nil
		},
	}
	return &s
}

func (s *Store) Get(digest trie.Digest) (trie.Node, bool, error) {
	return s.GetFunc(digest)
}

func (s *Store) Put(digest trie.Digest, node trie.Node) error {
	return s.PutFunc(digest, node)
}

func (s *Store) Close() error {
	return s.CloseFunc()
}
