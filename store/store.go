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

// Package store provides the node store backings (C3) for package trie: an
// in-memory map (MemoryStore) and a Badger-backed, LRU-cached on-disk
// backing (BadgerStore). Both satisfy trie.Store; the engine in package
// trie never imports this package, only the interface it implements.
package store

import "github.com/optakt/authtrie/trie"

// Store is an alias for trie.Store, so that callers wiring up a backing do
// not need to import package trie just to name the interface.
type Store = trie.Store
