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

// Package inode implements the arena of file descriptors (regular files,
// directories, symlinks) that the VFS operation engine mutates. It knows
// nothing about pathnames; it is indexed purely by integer id.
package inode

import (
	"fmt"

	"github.com/jacobsa/memvfs/internal/blockstore"
	"github.com/jacobsa/memvfs/internal/idalloc"
)

// RootID is the id of the filesystem root, created eagerly and never
// freed.
const RootID uint64 = 0

// Kind is the tagged-variant discriminant for an inode.
type Kind int

const (
	// KindRegular is a file with a block-indexed byte sequence.
	KindRegular Kind = iota
	// KindDirectory is a name -> id mapping, always containing "." and "..".
	KindDirectory
	// KindSymlink is an uninterpreted target string.
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symbolic link"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Inode is one file descriptor in the arena: a regular file, a directory,
// or a symlink, plus the scalar fields common to all three.
//
// INVARIANT: Kind == KindDirectory <=> Entries != nil
// INVARIANT: Kind == KindRegular <=> BlockRefs != nil (possibly empty)
// INVARIANT: Kind == KindSymlink <=> Entries == nil && BlockRefs == nil
// INVARIANT: Links >= 0 && Refs >= 0
type Inode struct {
	Kind Kind

	// Size is the logical byte length. Always 0 for directories and
	// symlinks.
	Size uint64

	// Links is the hard-link count.
	Links int

	// Refs is the count of open handles referencing this inode.
	Refs int

	// Entries holds a directory's children, name -> inode id. Always
	// contains "." and "..".
	Entries map[string]uint64

	// BlockRefs holds a regular file's block ids, indexed by logical block
	// number. A 0 entry is a hole.
	BlockRefs []uint64

	// Target holds a symlink's raw, unresolved target path.
	Target string
}

func newRegular() *Inode {
	return &Inode{Kind: KindRegular, BlockRefs: []uint64{}, Links: 1}
}

// newDirectory starts Links at 2: one for the directory's own "." entry,
// one for the name its caller is about to insert into the parent (or, for
// the root, the name it would have had). Each child directory created
// later adds one more, via its own ".." entry — see Mkdir — giving the
// UNIX invariant links = 2 + number of child directories.
func newDirectory(selfID, parentID uint64) *Inode {
	return &Inode{
		Kind:  KindDirectory,
		Links: 2,
		Entries: map[string]uint64{
			".":  selfID,
			"..": parentID,
		},
	}
}

func newSymlink(target string) *Inode {
	return &Inode{Kind: KindSymlink, Target: target, Links: 1}
}

// Table is the random-access arena of inodes, keyed by integer id and
// backed by a reusable id pool (idalloc.Pool, min=1; id 0 is the root,
// minted outside the pool at construction and never freed).
type Table struct {
	slots []*Inode
	ids   *idalloc.Pool
}

// NewTable returns a table with the root directory already present at
// RootID, self- and parent-linked to itself.
func NewTable() *Table {
	t := &Table{
		slots: []*Inode{newDirectory(RootID, RootID)},
		ids:   idalloc.New(RootID+1, 0),
	}
	return t
}

// Get returns the inode for id, or (nil, false) if id is not live.
func (t *Table) Get(id uint64) (*Inode, bool) {
	if id >= uint64(len(t.slots)) {
		return nil, false
	}
	in := t.slots[id]
	return in, in != nil
}

// MustGet returns the inode for id, panicking if it is not live. Engine
// code uses this once a caller has already established, via a successful
// resolve, that id names a live inode.
func (t *Table) MustGet(id uint64) *Inode {
	in, ok := t.Get(id)
	if !ok {
		panic(fmt.Sprintf("inode: unknown id %d", id))
	}
	return in
}

// AllocRegular mints a new regular-file inode and returns its id.
func (t *Table) AllocRegular() uint64 {
	return t.alloc(newRegular())
}

// AllocDirectory mints a new directory inode, self-linked to its own
// (not-yet-known) id and parent-linked to parentID.
func (t *Table) AllocDirectory(parentID uint64) uint64 {
	id, grew := t.ids.Acquire()
	in := newDirectory(id, parentID)
	t.place(id, grew, in)
	return id
}

// AllocSymlink mints a new symlink inode holding the given raw target.
func (t *Table) AllocSymlink(target string) uint64 {
	return t.alloc(newSymlink(target))
}

func (t *Table) alloc(in *Inode) uint64 {
	id, grew := t.ids.Acquire()
	t.place(id, grew, in)
	return id
}

func (t *Table) place(id uint64, grew bool, in *Inode) {
	if grew {
		for uint64(len(t.slots)) <= id {
			t.slots = append(t.slots, nil)
		}
	}
	t.slots[id] = in
}

// Free releases id's slot and returns it to the id pool, but only if both
// Links and Refs are zero; otherwise it is a no-op and ok is false. For a
// regular file, the caller-supplied release func is invoked once per
// non-zero block id so the caller can return them to its own block
// allocator; Free never touches the block allocator itself.
func (t *Table) Free(id uint64, releaseBlock func(blockID uint64)) (ok bool) {
	in, found := t.Get(id)
	if !found {
		panic(fmt.Sprintf("inode: Free of unknown id %d", id))
	}
	if in.Links != 0 || in.Refs != 0 {
		return false
	}

	if in.Kind == KindRegular && releaseBlock != nil {
		for _, b := range in.BlockRefs {
			if b != 0 {
				releaseBlock(b)
			}
		}
	}

	t.slots[id] = nil
	t.ids.Release(id)
	return true
}

// CheckInvariants panics if the table's bookkeeping violates the
// documented invariants. Wired into a syncutil.InvariantMutex by the
// owning VFS.
func (t *Table) CheckInvariants() {
	root, ok := t.Get(RootID)
	if !ok || root.Kind != KindDirectory {
		panic("inode: root is missing or not a directory")
	}
	if root.Entries["."] != RootID || root.Entries[".."] != RootID {
		panic("inode: root is not self- and parent-linked to itself")
	}

	for id, in := range t.slots {
		if in == nil {
			continue
		}
		if in.Links < 0 || in.Refs < 0 {
			panic(fmt.Sprintf("inode: id %d has negative links/refs", id))
		}
		switch in.Kind {
		case KindDirectory:
			if in.Entries == nil {
				panic(fmt.Sprintf("inode: directory %d has nil entries", id))
			}
			if sid, ok := in.Entries["."]; !ok || sid != uint64(id) {
				panic(fmt.Sprintf("inode: directory %d missing correct '.' entry", id))
			}
		case KindRegular:
			wantBlocks := (in.Size + blockstore.BlockSize - 1) / blockstore.BlockSize
			if uint64(len(in.BlockRefs)) != wantBlocks {
				panic(fmt.Sprintf(
					"inode: regular %d has %d blocks for size %d (want %d)",
					id, len(in.BlockRefs), in.Size, wantBlocks))
			}
		}
	}
}
