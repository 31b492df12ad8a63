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

// Package idalloc implements the reusable, ordered integer id pool that
// backs both the inode arena and the block store: a set of returned ids
// plus a monotonic high-water mark, with acquire always preferring the
// smallest free id before minting a new one.
package idalloc

import (
	"fmt"

	"github.com/google/btree"
)

const btreeDegree = 32

// id is the btree.Item wrapper around a plain uint64, ordered numerically.
type id uint64

func (a id) Less(than btree.Item) bool {
	return a < than.(id)
}

// Pool hands out non-negative integer ids starting at min, preferring the
// smallest previously-released id over minting a new one.
//
// A Pool is not safe for concurrent use without external locking; callers
// embed it behind the same syncutil.InvariantMutex that guards the
// aggregate it backs.
type Pool struct {
	min  uint64
	free *btree.BTree

	// high is the next id to mint once the free set is empty. It starts at
	// min+preallocate: the preallocated range counts as already minted.
	//
	// INVARIANT: high >= min
	high uint64
}

// New returns a pool whose ids start at min, with the range
// [min, min+preallocate) already present in the free set.
func New(min uint64, preallocate uint64) *Pool {
	p := &Pool{
		min:  min,
		free: btree.New(btreeDegree),
		high: min + preallocate,
	}

	for i := uint64(0); i < preallocate; i++ {
		p.free.ReplaceOrInsert(id(min + i))
	}

	return p
}

// Acquire returns the smallest free id, or a freshly-minted one if the free
// set is empty. grew is true exactly when the returned id is the pre-call
// high-water mark; ids taken from the free set, including the preallocated
// range, come back with grew false.
func (p *Pool) Acquire() (acquired uint64, grew bool) {
	if item := p.free.DeleteMin(); item != nil {
		acquired = uint64(item.(id))
		return
	}

	acquired = p.high
	p.high++
	grew = true

	return
}

// Release returns id to the free set. It is idempotent: releasing an id
// that is already free is a silent no-op by set semantics. No validation is
// done: an id outside [min, High()) is inserted as well, which
// CheckInvariants then reports. Callers are responsible for not releasing an id that is still
// referenced elsewhere (inode table invariant 4 in the design doc).
func (p *Pool) Release(released uint64) {
	p.free.ReplaceOrInsert(id(released))
}

// High returns the next id the pool will mint once its free set is empty
// (min+preallocate for a fresh pool). Exposed for
// invariant checks and diagnostics only.
func (p *Pool) High() uint64 {
	return p.high
}

// FreeLen returns the number of ids currently available for reuse.
func (p *Pool) FreeLen() int {
	return p.free.Len()
}

// CheckInvariants panics if the pool's internal bookkeeping is
// inconsistent. Intended to be wired into a syncutil.InvariantMutex by
// callers, matching the teacher's checkInvariants convention.
func (p *Pool) CheckInvariants() {
	if p.high < p.min {
		panic(fmt.Sprintf("idalloc: high %d below min %d", p.high, p.min))
	}

	var bad uint64
	var sawBad bool
	p.free.Ascend(func(item btree.Item) bool {
		v := uint64(item.(id))
		if v < p.min || v >= p.high {
			bad, sawBad = v, true
			return false
		}
		return true
	})

	if sawBad {
		panic(fmt.Sprintf("idalloc: free id %d outside [%d, %d)", bad, p.min, p.high))
	}
}
