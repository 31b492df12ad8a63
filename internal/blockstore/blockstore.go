// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package blockstore holds the flat, zero-initialized byte arena that
// backs every regular file's contents. Block id 0 is addressable here like
// any other block, but the engine never stores data in it: it is the hole
// sentinel understood by the inode layer.
package blockstore

import "fmt"

// BlockSize is the fixed size, in bytes, of a single block.
const BlockSize = 512

// InitialBlockCount is the number of blocks the store is sized to hold at
// construction time.
const InitialBlockCount = 1024

// Store is a contiguous byte arena addressed in BlockSize-sized pages.
// Block id b covers bytes [b*BlockSize, (b+1)*BlockSize), starting at id 0;
// callers reserve id 0 as the hole sentinel by convention.
type Store struct {
	bytes []byte
}

// New returns a store sized for initialBlockCount blocks (ids
// [0, initialBlockCount), all zero-filled), matching the block allocator's
// preallocated free range.
func New(initialBlockCount uint64) *Store {
	return &Store{
		bytes: make([]byte, initialBlockCount*BlockSize),
	}
}

// BlockCount returns the number of blocks currently addressable.
func (s *Store) BlockCount() uint64 {
	return uint64(len(s.bytes)) / BlockSize
}

// EnsureCapacity grows the arena, if necessary, so that block id is
// addressable. Callers invoke this exactly when their id allocator reports
// a "grown" acquire.
func (s *Store) EnsureCapacity(id uint64) {
	needed := (id + 1) * BlockSize
	if uint64(len(s.bytes)) >= needed {
		return
	}
	s.bytes = append(s.bytes, make([]byte, needed-uint64(len(s.bytes)))...)
}

func (s *Store) bounds(id uint64, offset, n int) (from, to int) {
	from = int(id)*BlockSize + offset
	to = from + n
	if from < 0 || to > len(s.bytes) {
		panic(fmt.Sprintf("blockstore: range [%d,%d) out of bounds (len %d)", from, to, len(s.bytes)))
	}
	return
}

// ReadAt copies n bytes starting at offset within block id into a freshly
// allocated slice.
func (s *Store) ReadAt(id uint64, offset, n int) []byte {
	from, to := s.bounds(id, offset, n)
	out := make([]byte, n)
	copy(out, s.bytes[from:to])
	return out
}

// WriteAt copies data into block id starting at offset. len(data) must not
// carry the write past the block boundary; callers are responsible for
// chunking writes at BlockSize boundaries (see the engine's write loop).
func (s *Store) WriteAt(id uint64, offset int, data []byte) {
	from, to := s.bounds(id, offset, len(data))
	copy(s.bytes[from:to], data)
}

// ZeroFill zeroes n bytes starting at offset within block id.
func (s *Store) ZeroFill(id uint64, offset, n int) {
	from, to := s.bounds(id, offset, n)
	for i := from; i < to; i++ {
		s.bytes[i] = 0
	}
}
