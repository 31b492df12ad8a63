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

package blockstore_test

import (
	"testing"

	"github.com/jacobsa/memvfs/internal/blockstore"
	. "github.com/jacobsa/ogletest"
)

func TestBlockStore(t *testing.T) { RunTests(t) }

type BlockStoreTest struct {
	store *blockstore.Store
}

func init() { RegisterTestSuite(&BlockStoreTest{}) }

func (t *BlockStoreTest) SetUp(ti *TestInfo) {
	t.store = blockstore.New(4)
}

func (t *BlockStoreTest) NewStoreIsZeroed() {
	ExpectEq(4, t.store.BlockCount())
	got := t.store.ReadAt(0, 0, blockstore.BlockSize)
	for i, b := range got {
		AssertEq(0, b, "byte %d", i)
	}
}

func (t *BlockStoreTest) WriteThenReadRoundTrips() {
	t.store.WriteAt(2, 10, []byte("hello"))
	got := t.store.ReadAt(2, 10, 5)
	ExpectEq("hello", string(got))
}

func (t *BlockStoreTest) WritesAreBlockLocal() {
	t.store.WriteAt(1, blockstore.BlockSize-1, []byte{0xAB})
	other := t.store.ReadAt(2, 0, 1)
	ExpectEq(0, other[0])
}

func (t *BlockStoreTest) EnsureCapacityGrowsByAtLeastOneBlock() {
	before := t.store.BlockCount()
	t.store.EnsureCapacity(before) // next never-used id
	ExpectEq(before+1, t.store.BlockCount())

	// Addressable now.
	t.store.WriteAt(before, 0, []byte("x"))
	got := t.store.ReadAt(before, 0, 1)
	ExpectEq("x", string(got))
}

func (t *BlockStoreTest) ZeroFillClearsRange() {
	t.store.WriteAt(0, 0, []byte("abcdef"))
	t.store.ZeroFill(0, 2, 3)
	got := t.store.ReadAt(0, 0, 6)
	ExpectEq("ab\x00\x00\x00f", string(got))
}
