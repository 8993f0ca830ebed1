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
	"bytes"
	"fmt"
	"sort"
)

// Entry is one key/payload pair to be inserted by BatchInsert.
type Entry struct {
	Key     Key
	Payload []byte
}

// sortByKey orders a batch of entries by key: inserting in key order keeps
// successive descents close to each other, so the store's read cache stays
// hot across the whole batch instead of thrashing between unrelated
// subtrees.
type sortByKey []Entry

func (s sortByKey) Len() int      { return len(s) }
func (s sortByKey) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s sortByKey) Less(i, j int) bool {
	return bytes.Compare(s[i].Key[:], s[j].Key[:]) < 0
}

// BatchInsert inserts every entry in turn, starting from root, and returns
// the final Root once all of them have landed. It sorts entries by key
// first (B4: per-leaf outcome does not depend on insertion order, so this
// is a pure throughput optimization, not a semantic one) and fails on the
// first error, identifying the entry that caused it by its position in key
// order.
func (e *Engine) BatchInsert(entries []Entry, root *Root) (*Root, error) {
	ordered := make(sortByKey, len(entries))
	copy(ordered, entries)
	sort.Sort(ordered)

	current := root
	for i, entry := range ordered {
		leaf := NewLeaf(entry.Key, entry.Payload)
		next, err := e.Insert(leaf, current)
		if err != nil {
			return nil, fmt.Errorf("batch insert: entry %d: %w", i, err)
		}
		current = next
	}

	return current, nil
}
