// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"strconv"

	"github.com/jacobsa/memvfs/internal/blockstore"
	"github.com/jacobsa/memvfs/internal/inode"
)

// Open resolves path, which must name a regular file, and returns a fresh
// open-handle id positioned at offset 0.
func (v *VFS) Open(path string) (fd uint64, err error) {
	defer v.begin("Open")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return 0, err
	}
	if r.in.Kind != inode.KindRegular {
		return 0, wrapErr("open", path, ErrOperationNotPermitted)
	}

	fd, _ = v.openID.Acquire()
	v.open[fd] = &openFile{inodeID: r.id}
	r.in.Refs++
	return fd, nil
}

// Close releases the open handle fd, decrementing its inode's ref count
// and freeing the inode if it is now both unlinked and unreferenced.
func (v *VFS) Close(fd uint64) (err error) {
	defer v.begin("Close")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	h, ok := v.open[fd]
	if !ok {
		return wrapErr("close", fdName(fd), ErrBadFileDescriptor)
	}

	delete(v.open, fd)
	v.openID.Release(fd)

	in := v.inodes.MustGet(h.inodeID)
	in.Refs--
	v.freeInode(h.inodeID)
	return nil
}

// Seek sets fd's cursor to offset, which must not exceed the file's
// current size. A cursor left stale above size by a prior truncate is
// clamped down to size before the comparison.
func (v *VFS) Seek(fd uint64, offset uint64) (err error) {
	defer v.begin("Seek")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	h, in, err := v.lookupOpen("seek", fd)
	if err != nil {
		return err
	}

	if h.cursor > in.Size {
		h.cursor = in.Size
	}
	if offset > in.Size {
		return wrapErr("seek", fdName(fd), ErrInvalidOffset)
	}

	h.cursor = offset
	return nil
}

// Write copies data into fd's file starting at its current cursor,
// extending the file and allocating fresh blocks as needed, and returns
// the number of bytes written (always len(data)).
func (v *VFS) Write(fd uint64, data []byte) (n int, err error) {
	defer v.begin("Write")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	h, in, err := v.lookupOpen("write", fd)
	if err != nil {
		return 0, err
	}
	if h.cursor > in.Size {
		h.cursor = in.Size
	}

	remaining := data
	for len(remaining) > 0 {
		i := h.cursor / blockstore.BlockSize
		blockID := v.blockForWrite(in, i)

		inBlockOffset := int(h.cursor % blockstore.BlockSize)
		chunk := remaining
		if room := blockstore.BlockSize - inBlockOffset; len(chunk) > room {
			chunk = chunk[:room]
		}

		v.blocks.WriteAt(blockID, inBlockOffset, chunk)
		h.cursor += uint64(len(chunk))
		remaining = remaining[len(chunk):]
	}

	if h.cursor > in.Size {
		in.Size = h.cursor
	}
	return len(data), nil
}

// blockForWrite returns the block id backing logical block i of in,
// allocating and growing the block store if i is a hole or past the end
// of block_refs.
func (v *VFS) blockForWrite(in *inode.Inode, i uint64) uint64 {
	for uint64(len(in.BlockRefs)) <= i {
		in.BlockRefs = append(in.BlockRefs, 0)
	}
	if in.BlockRefs[i] == 0 {
		in.BlockRefs[i] = v.acquireBlock()
	}
	return in.BlockRefs[i]
}

// Read copies up to n bytes from fd's file starting at its current
// cursor, advancing the cursor by the number of bytes actually read.
func (v *VFS) Read(fd uint64, n int) (data []byte, err error) {
	defer v.begin("Read")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	h, in, err := v.lookupOpen("read", fd)
	if err != nil {
		return nil, err
	}
	if h.cursor > in.Size {
		h.cursor = in.Size
	}

	avail := in.Size - h.cursor
	want := uint64(n)
	if want > avail {
		want = avail
	}

	data = make([]byte, 0, want)
	for uint64(len(data)) < want {
		i := h.cursor / blockstore.BlockSize
		inBlockOffset := int(h.cursor % blockstore.BlockSize)

		chunkLen := int(want) - len(data)
		if room := blockstore.BlockSize - inBlockOffset; chunkLen > room {
			chunkLen = room
		}

		var blockID uint64
		if i < uint64(len(in.BlockRefs)) {
			blockID = in.BlockRefs[i]
		}

		if blockID == 0 {
			data = append(data, make([]byte, chunkLen)...)
		} else {
			data = append(data, v.blocks.ReadAt(blockID, inBlockOffset, chunkLen)...)
		}
		h.cursor += uint64(chunkLen)
	}
	return data, nil
}

// Truncate resizes path's regular file to newSize, releasing trailing
// blocks on shrink and zero-filling the grown tail on grow, then clamps
// every open handle's cursor to the new size.
func (v *VFS) Truncate(path string, newSize uint64) (err error) {
	defer v.begin("Truncate")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return err
	}
	if r.in.Kind != inode.KindRegular {
		return wrapErr("truncate", path, ErrOperationNotPermitted)
	}

	in := r.in
	oldSize := in.Size

	if newSize < oldSize {
		k := (newSize + blockstore.BlockSize - 1) / blockstore.BlockSize
		for _, b := range in.BlockRefs[k:] {
			if b != 0 {
				v.blockIDs.Release(b)
			}
		}
		in.BlockRefs = in.BlockRefs[:k]
	} else if newSize > oldSize {
		wantBlocks := (newSize + blockstore.BlockSize - 1) / blockstore.BlockSize
		for uint64(len(in.BlockRefs)) < wantBlocks {
			in.BlockRefs = append(in.BlockRefs, 0)
		}

		tailBlock := oldSize / blockstore.BlockSize
		if oldSize%blockstore.BlockSize != 0 && tailBlock < uint64(len(in.BlockRefs)) {
			if blockID := in.BlockRefs[tailBlock]; blockID != 0 {
				from := int(oldSize % blockstore.BlockSize)
				to := blockstore.BlockSize
				if limit := int(newSize - tailBlock*blockstore.BlockSize); limit < to {
					to = limit
				}
				if to > from {
					v.blocks.ZeroFill(blockID, from, to-from)
				}
			}
		}
	}

	in.Size = newSize

	for _, h := range v.open {
		if h.inodeID == r.id && h.cursor > newSize {
			h.cursor = newSize
		}
	}
	return nil
}

func (v *VFS) lookupOpen(op string, fd uint64) (*openFile, *inode.Inode, error) {
	h, ok := v.open[fd]
	if !ok {
		return nil, nil, wrapErr(op, fdName(fd), ErrBadFileDescriptor)
	}
	return h, v.inodes.MustGet(h.inodeID), nil
}

func fdName(fd uint64) string {
	return "fd " + strconv.FormatUint(fd, 10)
}
