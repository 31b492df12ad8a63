// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacobsa/memvfs/internal/inode"
)

// StatInfo is the result of Stat: the fields spec.md §4.5 asks a caller be
// able to render (name, size, used-block count, link count, open-ref
// count, and a type string; symlinks additionally carry their target).
type StatInfo struct {
	Name   string
	Size   uint64
	Blocks int
	Links  int
	Refs   int
	Kind   string
	// Target is set only when Kind names a symlink.
	Target string
}

// String renders a StatInfo the way spec.md §4.5 describes: symlinks as
// "name -> target", everything else as "name".
func (s StatInfo) String() string {
	if s.Target != "" {
		return fmt.Sprintf("%s -> %s", s.Name, s.Target)
	}
	return s.Name
}

// Stat resolves path and reports its inode metadata.
//
// Because this package's resolver always expands symlinks (see DESIGN.md),
// a fully-resolved path never lands on a KindSymlink inode itself, so the
// Target field is never set by this function (a dangling symlink fails
// with ErrNotFound). Kept for interface fidelity with spec.md §4.5.
func (v *VFS) Stat(path string) (info StatInfo, err error) {
	defer v.begin("Stat")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return StatInfo{}, err
	}

	info = StatInfo{
		Name:   Basename(path),
		Size:   r.in.Size,
		Blocks: len(r.in.BlockRefs),
		Links:  r.in.Links,
		Refs:   r.in.Refs,
		Kind:   r.in.Kind.String(),
	}
	if r.in.Kind == inode.KindSymlink {
		info.Target = r.in.Target
	}
	return info, nil
}

// Ls resolves path. If it names a directory, it returns the sorted list
// of entry names, including "." and "..". Otherwise it returns the
// one-element list [path].
func (v *VFS) Ls(path string) (names []string, err error) {
	defer v.begin("Ls")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return nil, err
	}

	if r.in.Kind != inode.KindDirectory {
		return []string{path}, nil
	}

	names = make([]string, 0, len(r.in.Entries))
	for name := range r.in.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Mkdir creates a new, empty directory at path.
func (v *VFS) Mkdir(path string) (err error) {
	defer v.begin("Mkdir")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	trimmed := strings.TrimSuffix(path, "/")
	if len(splitSegments(trimmed)) == 0 {
		return wrapErr("mkdir", path, ErrInvalidName)
	}
	base := Basename(trimmed)

	parent, err := v.resolveDir(Dirname(trimmed))
	if err != nil {
		return err
	}

	if _, exists := parent.in.Entries[base]; exists {
		return wrapErr("mkdir", path, ErrExists)
	}

	newID := v.inodes.AllocDirectory(parent.id)
	parent.in.Entries[base] = newID
	parent.in.Links++ // UNIX scheme: the child's ".." adds a link to parent.
	return nil
}

// Rmdir removes the empty directory named by path.
func (v *VFS) Rmdir(path string) (err error) {
	defer v.begin("Rmdir")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path)
	if err != nil {
		return err
	}
	if r.in.Kind != inode.KindDirectory {
		return wrapErr("rmdir", path, ErrNotADirectory)
	}
	if r.id == inode.RootID {
		return wrapErr("rmdir", path, ErrIsARootDirectory)
	}
	if len(r.in.Entries) > 2 {
		return wrapErr("rmdir", path, ErrDirectoryNotEmpty)
	}

	parent := v.inodes.MustGet(r.parentID)
	delete(parent.Entries, r.name)
	parent.Links--
	r.in.Links = 0
	v.freeInode(r.id)

	if r.id == v.cwdID {
		v.cwdID = inode.RootID
		v.cwd = "/"
	}
	return nil
}

// Cd changes the current working directory to path.
func (v *VFS) Cd(path string) (err error) {
	defer v.begin("Cd")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()

	r, err := v.resolve(path + "/.")
	if err != nil {
		return err
	}
	if r.in.Kind != inode.KindDirectory {
		return wrapErr("cd", path, ErrNotADirectory)
	}

	canon, err := v.realpath(path + "/.")
	if err != nil {
		return err
	}

	v.cwdID = r.id
	v.cwd = canon
	return nil
}

// Cwd returns the current working directory's canonical path.
func (v *VFS) Cwd() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cwd
}

// Realpath canonicalizes a resolvable pathname.
func (v *VFS) Realpath(path string) (canon string, err error) {
	defer v.begin("Realpath")(&err)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.realpath(path)
}
