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

package idalloc_test

import (
	"testing"

	"github.com/jacobsa/memvfs/internal/idalloc"
	. "github.com/jacobsa/ogletest"
)

func TestIdAlloc(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type IdAllocTest struct {
}

func init() { RegisterTestSuite(&IdAllocTest{}) }

////////////////////////////////////////////////////////////////////////
// Test functions
////////////////////////////////////////////////////////////////////////

func (t *IdAllocTest) GrowsWhenFreeSetIsEmpty() {
	p := idalloc.New(1, 0)

	id, grew := p.Acquire()
	ExpectEq(1, id)
	ExpectTrue(grew)

	id, grew = p.Acquire()
	ExpectEq(2, id)
	ExpectTrue(grew)
}

func (t *IdAllocTest) PreallocatedRangeIsConsumedFirst() {
	p := idalloc.New(1, 3)

	for _, want := range []uint64{1, 2, 3} {
		id, grew := p.Acquire()
		ExpectEq(want, id)
		ExpectFalse(grew)
	}

	id, grew := p.Acquire()
	ExpectEq(4, id)
	ExpectTrue(grew)
}

func (t *IdAllocTest) ReleasedIdsComeBackInAscendingOrder() {
	p := idalloc.New(1, 0)

	a, _ := p.Acquire()
	b, _ := p.Acquire()
	c, _ := p.Acquire()
	ExpectEq(1, a)
	ExpectEq(2, b)
	ExpectEq(3, c)

	p.Release(c)
	p.Release(a)

	id, grew := p.Acquire()
	ExpectEq(1, id)
	ExpectFalse(grew)

	id, grew = p.Acquire()
	ExpectEq(3, id)
	ExpectFalse(grew)

	// Free set is empty again; next acquire must grow.
	id, grew = p.Acquire()
	ExpectEq(4, id)
	ExpectTrue(grew)
}

func (t *IdAllocTest) DoubleReleaseIsANoOp() {
	p := idalloc.New(1, 0)

	id, _ := p.Acquire()
	p.Release(id)
	p.Release(id)

	ExpectEq(1, p.FreeLen())

	got, grew := p.Acquire()
	ExpectEq(id, got)
	ExpectFalse(grew)
}

func (t *IdAllocTest) HighStartsAtMinPlusPreallocate() {
	p := idalloc.New(5, 10)
	ExpectEq(15, p.High())
}

func (t *IdAllocTest) CheckInvariantsPassesForFreshPool() {
	p := idalloc.New(1, 1024)
	p.CheckInvariants()
	ExpectEq(1024, p.FreeLen())
}
