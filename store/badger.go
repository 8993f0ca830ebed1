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
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v2"
	multierror "github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/optakt/authtrie/trie"
)

// BadgerStore is a Store backed by an on-disk Badger database, fronted by an
// in-memory LRU read cache. Every Put commits synchronously before
// returning: there is no background flush goroutine to wait on, and no
// operation is cancellable once started.
type BadgerStore struct {
	log zerolog.Logger

	db    *badger.DB
	cache *lru.Cache
	mutex sync.Mutex
}

// NewBadgerStore opens (or creates) a Badger database at the configured
// storage path and wraps it with a read-through LRU cache of the configured
// size.
func NewBadgerStore(log zerolog.Logger, opts ...Option) (*BadgerStore, error) {
	logger := log.With().Str("component", "node_store").Logger()

	config := DefaultConfig
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node store configuration: %w", err)
	}
	if config.CacheSize < minCacheSize {
		logger.Warn().Int("cache_size", config.CacheSize).Int("min_recommended", minCacheSize).
			Msg("cache size is smaller than one root-to-leaf path; every insert will thrash the cache")
	}

	badgerOpts := badger.DefaultOptions(config.StoragePath)
	badgerOpts.Logger = nil
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("could not open node store: %w", err)
	}

	cache, err := lru.New(config.CacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create node cache: %w", err)
	}

	s := BadgerStore{
		log:   logger,
		db:    db,
		cache: cache,
	}

	return &s, nil
}

// Get implements Store.
func (s *BadgerStore) Get(digest trie.Digest) (trie.Node, bool, error) {
	if cached, ok := s.cache.Get(digest); ok {
		return cached.(trie.Node), true, nil
	}

	var data []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(digest[:])
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not read node %x: %w", digest[:], err)
	}

	node, err := trie.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("could not decode node %x: %w", digest[:], err)
	}

	// Decode never populates the hash field, since it is not part of the
	// encoding. Rehashing here both restores it for the rest of the engine
	// to use and doubles as a content-addressing check (P6): a store that
	// somehow lost or corrupted bytes on disk surfaces as a mismatch here
	// rather than silently propagating a wrong digest upward.
	rehashed := node.Rehash()
	if rehashed != digest {
		s.log.Error().Hex("digest", digest[:]).Hex("recomputed", rehashed[:]).Msg("content-addressing check failed on read")
		return nil, false, fmt.Errorf("could not verify node %x: recomputed hash %x: %w", digest[:], rehashed[:], trie.ErrMissingNode)
	}

	s.cache.Add(digest, node)

	return node, true, nil
}

// Put implements Store.
func (s *BadgerStore) Put(digest trie.Digest, node trie.Node) error {
	hash, ok := node.Hash()
	if !ok {
		return fmt.Errorf("could not store node %x: %w", digest[:], trie.ErrHashMissing)
	}
	if hash != digest {
		return fmt.Errorf("could not store node: digest %x does not match node hash %x", digest[:], hash[:])
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.cache.Get(digest); ok {
		return nil
	}

	data, err := trie.Encode(node)
	if err != nil {
		return fmt.Errorf("could not encode node %x: %w", digest[:], err)
	}

	err = s.db.Update(func(tx *badger.Txn) error {
		_, err := tx.Get(digest[:])
		if err == nil {
			// Already present on disk: idempotent no-op.
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return tx.Set(digest[:], data)
	})
	if err != nil {
		return fmt.Errorf("could not persist node %x: %w", digest[:], err)
	}

	s.cache.Add(digest, node)
	s.log.Debug().Hex("digest", digest[:]).Str("kind", node.Kind().String()).Msg("stored node")

	return nil
}

// Close implements Store. It shuts down the underlying Badger database,
// aggregating any failures with go-multierror.
func (s *BadgerStore) Close() error {
	var result *multierror.Error

	if err := s.db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("could not close node store: %w", err))
	}

	return result.ErrorOrNil()
}
