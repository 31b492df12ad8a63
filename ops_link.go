// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"strings"

	"github.com/jacobsa/memvfs/internal/inode"
)

// Create creates an empty regular file at path. Creating a path that
// already names an entry is a silent success, unlike Mkdir; an empty
// basename is an error (see DESIGN.md's resolution of spec.md §9's open
// question on this point).
func (v *VFS) Create(path string) (err error) {
	defer v.begin("Create")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(splitSegments(path)) == 0 {
		return wrapErr("create", path, ErrInvalidName)
	}
	base := Basename(path)

	parent, err := v.resolveDir(Dirname(path))
	if err != nil {
		return err
	}

	if _, exists := parent.in.Entries[base]; exists {
		return nil
	}

	newID := v.inodes.AllocRegular()
	parent.in.Entries[base] = newID
	return nil
}

// Symlink creates a symlink at path holding the raw, unresolved target
// string. The target is not inspected or resolved at creation time.
func (v *VFS) Symlink(target, path string) (err error) {
	defer v.begin("Symlink")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(splitSegments(path)) == 0 {
		return wrapErr("symlink", path, ErrInvalidName)
	}
	base := Basename(path)

	parent, err := v.resolveDir(Dirname(path))
	if err != nil {
		return err
	}

	if _, exists := parent.in.Entries[base]; exists {
		return wrapErr("symlink", path, ErrExists)
	}

	newID := v.inodes.AllocSymlink(target)
	parent.in.Entries[base] = newID
	return nil
}

// Link creates a new hard link at dst pointing at the same inode as src.
// Hard-linking a directory is forbidden.
func (v *VFS) Link(src, dst string) (err error) {
	defer v.begin("Link")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	srcR, err := v.resolve(src)
	if err != nil {
		return err
	}
	if srcR.in.Kind == inode.KindDirectory {
		return wrapErr("link", src, ErrOperationNotPermitted)
	}

	if len(splitSegments(dst)) == 0 {
		return wrapErr("link", dst, ErrInvalidName)
	}
	base := Basename(dst)

	parent, err := v.resolveDir(Dirname(dst))
	if err != nil {
		return err
	}
	if _, exists := parent.in.Entries[base]; exists {
		return wrapErr("link", dst, ErrExists)
	}

	parent.in.Entries[base] = srcR.id
	srcR.in.Links++
	return nil
}

// Unlink removes the directory entry naming path, freeing the underlying
// inode once both its link count and open-handle count reach zero. Open
// handles to the unlinked inode remain usable until their final Close.
func (v *VFS) Unlink(path string) (err error) {
	defer v.begin("Unlink")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return err
	}
	if r.in.Kind == inode.KindDirectory {
		return wrapErr("unlink", path, ErrIsADirectory)
	}

	parent := v.inodes.MustGet(r.parentID)
	name := r.name
	if name == "" {
		name = Basename(strings.TrimSuffix(path, "/"))
	}
	delete(parent.Entries, name)

	r.in.Links--
	v.freeInode(r.id)
	return nil
}
