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

// Package vfs implements an in-memory, UNIX-flavored virtual filesystem:
// directories, hard links, symbolic links, and regular files with open
// file descriptors and byte-ranged reads and writes, over a flat block
// store. It never touches a host filesystem.
//
// The primary elements of interest are:
//
//  *  VFS, the single-owner namespace that exposes the operation engine
//     (Stat, Ls, Mkdir, Create, Symlink, Link, Unlink, Rmdir, Cd, Open,
//     Close, Seek, Read, Write, Truncate, Cwd, Realpath).
//
//  *  The Dirname, Basename, and IsAbsolute pure path helpers.
//
//  *  The sentinel errors (ErrNotFound, ErrExists, ...) operations wrap to
//     report failure kind alongside a human-readable message.
//
// VFS is not safe for concurrent use: it is a single-threaded, synchronous
// namespace, and callers needing concurrency-safety must serialize their
// own calls (see the VFS type's documentation in vfs.go).
package vfs
