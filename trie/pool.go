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
	"sync"
)

// bufferPool recycles the scratch buffers behind every node encoding to cut
// GC pressure on the hot path. It pools byte buffers rather than node
// structs: every encoded node is immediately handed to a Store that keeps
// the node object itself as its cache entry (see store.MemoryStore,
// store.BadgerStore), which makes the node structs themselves unsafe to
// recycle, but the scratch buffer used to build their preimage is discarded
// the moment Encode returns and is safe to reuse.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	bufferPool.Put(buf)
}
