// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"fmt"

	"github.com/jacobsa/memvfs/internal/blockstore"
	"github.com/jacobsa/memvfs/internal/idalloc"
	"github.com/jacobsa/memvfs/internal/inode"
	"github.com/jacobsa/memvfs/internal/vfslog"
	"github.com/jacobsa/reqtrace"
	"github.com/jacobsa/syncutil"
	"golang.org/x/net/context"
)

// openFile is one entry in the open-handle table: the inode it refers to
// and a byte cursor into it.
//
// INVARIANT: cursor <= size(inode)
type openFile struct {
	inodeID uint64
	cursor  uint64
}

// VFS is a single-owner, in-memory, UNIX-flavored namespace: an inode
// arena, a block store, and a path resolver, wrapped in the public
// operation engine (see ops_*.go).
//
// VFS is not safe for concurrent use. Its internal syncutil.InvariantMutex
// exists to assert the package's documented invariants after every
// mutating call in debug/test builds, the same role memFS.mu plays in the
// teacher's samples/memfs — not to make concurrent callers safe. A server
// wrapping a VFS in multiple goroutines must serialize its own calls.
type VFS struct {
	mu syncutil.InvariantMutex

	inodes   *inode.Table
	blocks   *blockstore.Store
	blockIDs *idalloc.Pool

	open   map[uint64]*openFile
	openID *idalloc.Pool

	// cwdID and cwd are cached together; cwd is always the canonical
	// (realpath'd) textual form of the directory cwdID names, or "/" if
	// cwdID's directory has been removed out from under the shell (see
	// Rmdir).
	cwdID uint64
	cwd   string
}

// New returns an empty VFS with the default 1024-block arena.
func New() *VFS {
	return NewWithBlockCount(blockstore.InitialBlockCount)
}

// NewWithBlockCount returns an empty VFS whose block store is sized to
// hold blockCount blocks from the start (block id 0 is always the hole
// sentinel, so the block allocator's free range is [1, blockCount)).
func NewWithBlockCount(blockCount uint64) *VFS {
	v := &VFS{
		inodes:   inode.NewTable(),
		blocks:   blockstore.New(blockCount),
		blockIDs: idalloc.New(1, blockCount-1),
		open:     make(map[uint64]*openFile),
		openID:   idalloc.New(0, 0),
		cwdID:    inode.RootID,
		cwd:      "/",
	}
	v.mu = syncutil.NewInvariantMutex(v.checkInvariants)
	return v
}

func (v *VFS) checkInvariants() {
	v.inodes.CheckInvariants()
	v.blockIDs.CheckInvariants()
	v.openID.CheckInvariants()

	for oid, h := range v.open {
		in, ok := v.inodes.Get(h.inodeID)
		if !ok {
			panic(fmt.Sprintf("vfs: open handle %d refers to freed inode %d", oid, h.inodeID))
		}
		if h.cursor > in.Size {
			panic(fmt.Sprintf("vfs: open handle %d cursor %d exceeds size %d", oid, h.cursor, in.Size))
		}
	}
}

// acquireBlock returns a block id ready to be written to, growing the
// block store first if the allocator minted a never-used id.
func (v *VFS) acquireBlock() uint64 {
	id, grew := v.blockIDs.Acquire()
	if grew {
		v.blocks.EnsureCapacity(id)
	}
	return id
}

// freeInode runs the inode-table free-on-both-zero rule, returning any
// newly-freed block ids to the block allocator.
func (v *VFS) freeInode(id uint64) {
	v.inodes.Free(id, v.blockIDs.Release)
}

// begin marks the start of a public operation, the way common_op.go's
// wrapping of fuseops calls starts a reqtrace span around each op. The
// returned finish func must be deferred with the op's named error result;
// it closes the span and leaves a one-line trace in vfslog.
func (v *VFS) begin(name string) (finish func(errp *error)) {
	_, report := reqtrace.StartSpan(context.Background(), name)
	return func(errp *error) {
		report(*errp)
		if *errp != nil {
			vfslog.Get().Printf("-> (%s) error: %v", name, *errp)
		} else {
			vfslog.Get().Printf("-> (%s) ok", name)
		}
	}
}
