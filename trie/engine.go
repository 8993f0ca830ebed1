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

	"github.com/gammazero/deque"
	"github.com/rs/zerolog"
)

// Engine implements Insert and Check (C4) against a Store. It holds no trie
// state of its own beyond the store and a logger; every operation takes the
// Root it operates on (and Insert returns a new one), so callers are free to
// hold many Roots from many Engine calls concurrently.
type Engine struct {
	log   zerolog.Logger
	store Store
}

// NewEngine creates an Engine against the given store.
func NewEngine(log zerolog.Logger, store Store) *Engine {
	return &Engine{
		log:   log.With().Str("component", "trie_engine").Logger(),
		store: store,
	}
}

// childSetter is satisfied by *Root and *Branch: the two node kinds that can
// sit above a modified subtree during Insert and therefore need their child
// slot patched and their hash recomputed on the way back up. *Leaf is
// deliberately excluded — a Leaf is always the bottom of the path, never an
// ancestor.
type childSetter interface {
	Node
	SetChild(slot byte, digest Digest)
}

// pathEntry is one frame of the descent: the ancestor node (already cloned,
// safe to mutate) and the slot within it that leads to the next frame down.
type pathEntry struct {
	node childSetter
	slot byte
}

// Insert adds leaf under root and returns the new Root, without mutating
// root or anything reachable from it. It computes leaf's hash as a side
// effect, satisfying precondition B3 for the caller. It fails with
// ErrDuplicateLeaf if a leaf with the same key is already present under
// root, whether or not its payload matches (§4.3).
func (e *Engine) Insert(leaf *Leaf, root *Root) (*Root, error) {
	if root == nil {
		root = NewRoot()
	}
	leaf.Rehash()

	log := e.log.With().Hex("leaf_key", leaf.key[:8]).Logger()

	slot := leaf.key.Bit(0)
	child := root.Child(slot)

	// Nothing on this side of the root yet: the leaf becomes the child
	// directly, no Branch is created (§4.3, "first insert on a side").
	if child == nil {
		leafDigest, _ := leaf.Hash()
		if err := e.store.Put(leafDigest, leaf); err != nil {
			return nil, fmt.Errorf("could not store leaf: %w", err)
		}

		newRoot := root.Clone()
		newRoot.SetChild(slot, leafDigest)
		rootDigest := newRoot.Rehash()
		if err := e.store.Put(rootDigest, newRoot); err != nil {
			return nil, fmt.Errorf("could not store root: %w", err)
		}

		log.Debug().Msg("inserted first leaf on empty side")

		return newRoot, nil
	}

	path := deque.New(KeyBits)
	path.PushBack(pathEntry{node: root.Clone(), slot: slot})

	digest := *child
	for {
		node, ok, err := e.store.Get(digest)
		if err != nil {
			return nil, fmt.Errorf("could not descend to node %x: %w", digest[:], err)
		}
		if !ok {
			log.Error().Hex("digest", digest[:]).Msg("node reachable from root missing in store")
			return nil, fmt.Errorf("descend to %x: %w", digest[:], ErrMissingNode)
		}

		switch n := node.(type) {
		case *Branch:
			s := leaf.key.Bit(n.Split())
			path.PushBack(pathEntry{node: n.Clone(), slot: s})
			digest = n.Child(s)
			continue

		case *Leaf:
			if n.key.Equal(leaf.key) {
				return nil, fmt.Errorf("insert leaf %x: %w", leaf.key[:8], ErrDuplicateLeaf)
			}

			split := firstDivergingBit(leaf.key, n.key)
			if split < 0 {
				// Unreachable: Equal above already covers identical keys.
				return nil, fmt.Errorf("insert leaf %x: %w", leaf.key[:8], ErrDuplicateLeaf)
			}

			leafDigest, _ := leaf.Hash()
			// digest is already the existing leaf's own digest: it is the
			// value we fetched n under at the top of this loop iteration.
			// The Store contract does not require Get to return a node with
			// its hash cached, so we use the digest we already know rather
			// than re-deriving it from n.
			existingDigest := digest

			// Every key below a Branch agrees on all bits before its split,
			// so a new key diverging from n before the split of a Branch on
			// the path diverges from that Branch's whole subtree there: the
			// new Branch goes above it. This keeps splits strictly
			// increasing from the Root down, so the trie's shape does not
			// depend on insertion order (B4).
			for {
				above, ok := path.Back().(pathEntry).node.(*Branch)
				if !ok || int(above.Split()) < split {
					break
				}
				path.PopBack()
				existingDigest = above.Rehash()
			}

			var branch *Branch
			if leaf.key.Bit(split) == 0 {
				branch = NewBranch(byte(split), leafDigest, existingDigest)
			} else {
				branch = NewBranch(byte(split), existingDigest, leafDigest)
			}
			branchDigest := branch.Rehash()

			if err := e.store.Put(leafDigest, leaf); err != nil {
				return nil, fmt.Errorf("could not store leaf: %w", err)
			}
			if err := e.store.Put(branchDigest, branch); err != nil {
				return nil, fmt.Errorf("could not store branch: %w", err)
			}

			log.Debug().Int("split", split).Msg("forked new branch at divergence point")

			return e.rehashPath(path, branchDigest)

		default:
			return nil, fmt.Errorf("insert leaf %x: unexpected node kind %s in descent: %w", leaf.key[:8], node.Kind(), ErrInvalidParent)
		}
	}
}

// rehashPath walks the modified_path stack bottom-up (§4.3), patching each
// ancestor's child slot to the digest produced below it, rehashing, and
// storing it, until the Root at the bottom of the stack is reached.
func (e *Engine) rehashPath(path *deque.Deque, childDigest Digest) (*Root, error) {
	digest := childDigest
	var last childSetter

	for path.Len() > 0 {
		entry := path.PopBack().(pathEntry)
		entry.node.SetChild(entry.slot, digest)
		digest = entry.node.Rehash()
		if err := e.store.Put(digest, entry.node); err != nil {
			return nil, fmt.Errorf("could not store node %x: %w", digest[:], err)
		}
		last = entry.node
	}

	root, ok := last.(*Root)
	if !ok {
		return nil, fmt.Errorf("rehash path did not terminate at a root: %w", ErrInvalidParent)
	}

	return root, nil
}

// Check reports whether a leaf with the same key and payload as leaf is
// already reachable from root. It never mutates leaf, root, or the store;
// it is safe to call concurrently with Insert calls against other roots, or
// with other Check calls against this one (§4.3, §5).
func (e *Engine) Check(leaf *Leaf, root *Root) (bool, error) {
	if root == nil {
		return false, nil
	}

	want := leaf.contentHash()

	slot := leaf.key.Bit(0)
	child := root.Child(slot)
	if child == nil {
		return false, nil
	}

	digest := *child
	for {
		node, ok, err := e.store.Get(digest)
		if err != nil {
			return false, fmt.Errorf("could not descend to node %x: %w", digest[:], err)
		}
		if !ok {
			e.log.Error().Hex("digest", digest[:]).Msg("node reachable from root missing in store")
			return false, fmt.Errorf("descend to %x: %w", digest[:], ErrMissingNode)
		}

		switch n := node.(type) {
		case *Branch:
			digest = n.Child(leaf.key.Bit(n.Split()))
		case *Leaf:
			got, _ := n.Hash()
			return got == want, nil
		default:
			return false, fmt.Errorf("check: unexpected node kind %s in descent: %w", node.Kind(), ErrInvalidParent)
		}
	}
}
