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

	"github.com/optakt/authtrie/trie"
)

// Default configuration values for the Badger-backed store.
//
// DefaultCacheSize is sized against the trie's own shape rather than picked
// arbitrarily: every Insert or Prove touches one node per bit of the key on
// its way down from the root, so a single operation can pull up to
// trie.KeyBits nodes through the cache. A cache far smaller than that
// thrashes on every call, turning most of the leaf-ward descent into Badger
// reads; a cache of a million nodes keeps many full root-to-leaf paths
// resident at once even for tries with a large working set.
const (
	DefaultStoragePath = "./nodes"
	DefaultCacheSize   = 1_000_000
)

// minCacheSize is the smallest cache size that can hold one full
// root-to-leaf path. A BadgerStore configured below this bound still
// functions, but every Insert evicts and re-fetches ancestors of the node it
// just touched, defeating the point of fronting Badger with a cache at all.
const minCacheSize = trie.KeyBits

// Config configures a BadgerStore.
type Config struct {
	StoragePath string
	CacheSize   int
}

// Option is a function that modifies a configuration.
type Option func(*Config)

// DefaultConfig is the store's default configuration.
var DefaultConfig = Config{
	StoragePath: DefaultStoragePath,
	CacheSize:   DefaultCacheSize,
}

// Validate reports whether the configuration can back a BadgerStore.
// CacheSize below minCacheSize is accepted but logged as a warning by the
// caller, since it does not break correctness, only defeats the cache's
// purpose; CacheSize at or below zero and an empty StoragePath are rejected
// outright, since golang-lru refuses a non-positive size and Badger has no
// sensible default for an unset directory.
func (c Config) Validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// WithCacheSize specifies the maximum number of nodes kept in the in-memory
// read-through cache in front of the persistent backing. Values below
// trie.KeyBits are valid but defeat the cache's purpose (see
// DefaultCacheSize) and are worth avoiding outside of tests.
func WithCacheSize(size int) Option {
	return func(config *Config) {
		config.CacheSize = size
	}
}

// WithStoragePath specifies the path at which to persist nodes on disk.
func WithStoragePath(path string) Option {
	return func(config *Config) {
		config.StoragePath = path
	}
}
