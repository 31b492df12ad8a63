// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"strings"

	"github.com/jacobsa/memvfs/internal/inode"
)

// maxSymlinkHops bounds the number of symlink expansions a single
// resolution may perform, preventing cycles and overlong chains from
// looping forever.
const maxSymlinkHops = 8

// resolved is the tuple a successful resolution produces: the inode
// itself, its id, the id of the directory holding it, and the directory
// entry name it was last reached under (valid for removing/replacing that
// exact entry; may be stale if the pathname ends in "." or "..").
type resolved struct {
	in       *inode.Inode
	id       uint64
	parentID uint64
	name     string
}

// resolve implements the path resolver (component C4): it maps pathname to
// the inode it names, expanding ".", "..", and symlinks (subject to
// maxSymlinkHops), starting from the root if pathname is absolute or from
// the current working directory otherwise. It is pure read-only over the
// inode table.
func (v *VFS) resolve(pathname string) (resolved, error) {
	id, parentID, name, _, err := v.walk(pathname, false)
	if err != nil {
		return resolved{}, err
	}
	return resolved{in: v.inodes.MustGet(id), id: id, parentID: parentID, name: name}, nil
}

// realpath canonicalizes a resolvable pathname (component C4.1): same walk
// as resolve, additionally accumulating the canonical segment list. The
// result always begins with "/".
func (v *VFS) realpath(pathname string) (string, error) {
	_, _, _, canon, err := v.walk(pathname, true)
	if err != nil {
		return "", err
	}
	return "/" + strings.Join(canon, "/"), nil
}

// walk is the shared engine behind resolve and realpath. trackCanon
// enables accumulating the canonical segment list, which resolve doesn't
// need and realpath does. name is the directory-entry key the walk last
// descended through via a non-"."/".." segment.
func (v *VFS) walk(pathname string, trackCanon bool) (id, parentID uint64, name string, canon []string, err error) {
	segments := splitSegments(pathname)

	var curID uint64
	if IsAbsolute(pathname) {
		curID = inode.RootID
		canon = canon[:0]
	} else {
		curID = v.cwdID
		if trackCanon {
			canon = splitSegments(v.cwd)
		}
	}

	hops := 0
	for i := 0; i < len(segments); i++ {
		s := segments[i]

		switch s {
		case ".":
			continue

		case "..":
			cur, ok := v.inodes.Get(curID)
			if !ok {
				err = wrapErr("resolve", pathname, ErrNotFound)
				return
			}
			curID = cur.Entries[".."]
			if trackCanon && len(canon) > 0 {
				canon = canon[:len(canon)-1]
			}

		default:
			cur, ok := v.inodes.Get(curID)
			if !ok || cur.Kind != inode.KindDirectory {
				err = wrapErr("resolve", pathname, ErrNotADirectory)
				return
			}

			childID, present := cur.Entries[s]
			if !present {
				err = wrapErr("resolve", pathname, ErrNotFound)
				return
			}

			child := v.inodes.MustGet(childID)
			switch child.Kind {
			case inode.KindDirectory:
				curID = childID
				name = s
				if trackCanon {
					canon = append(canon, s)
				}

			case inode.KindRegular:
				if i != len(segments)-1 {
					err = wrapErr("resolve", pathname, ErrNotFound)
					return
				}
				id, parentID, name = childID, curID, s
				if trackCanon {
					canon = append(canon, s)
				}
				return

			case inode.KindSymlink:
				hops++
				if hops > maxSymlinkHops {
					err = wrapErr("resolve", pathname, ErrNotFound)
					return
				}

				rest := append([]string{}, segments[i+1:]...)
				targetSegs := splitSegments(child.Target)
				segments = append(targetSegs, rest...)
				i = -1

				if IsAbsolute(child.Target) {
					curID = inode.RootID
					canon = canon[:0]
				}
			}
		}
	}

	id = curID
	landed := v.inodes.MustGet(curID)
	parentID = landed.Entries[".."]
	return
}

// resolveDir resolves dir the way mkdir/create/symlink/link resolve a
// dirname: with a trailing "/." appended, which forces directory
// interpretation (a path landing on a regular file, or on a symlink whose
// target is a regular file, fails instead of silently succeeding), per
// spec.md §4.5's "trailing /." convention.
func (v *VFS) resolveDir(dir string) (resolved, error) {
	r, err := v.resolve(dir + "/.")
	if err != nil {
		return resolved{}, err
	}
	if r.in.Kind != inode.KindDirectory {
		return resolved{}, wrapErr("resolve", dir, ErrNotADirectory)
	}
	return r, nil
}
