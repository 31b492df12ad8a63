// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import "fmt"

// Sentinel error kinds. Every operation failure wraps exactly one of
// these so that callers can classify it with errors.Is, while still
// getting a human-readable message naming the offending pathname (the
// shape spec.md §7 asks for).
var (
	ErrNotFound              = fmt.Errorf("no such file or directory")
	ErrNotADirectory         = fmt.Errorf("not a directory")
	ErrIsADirectory          = fmt.Errorf("is a directory")
	ErrIsARootDirectory      = fmt.Errorf("is the root directory")
	ErrDirectoryNotEmpty     = fmt.Errorf("directory not empty")
	ErrExists                = fmt.Errorf("file exists")
	ErrOperationNotPermitted = fmt.Errorf("operation not permitted")
	ErrBadFileDescriptor     = fmt.Errorf("bad file descriptor")
	ErrInvalidOffset         = fmt.Errorf("invalid offset")
	ErrInvalidName           = fmt.Errorf("invalid name")
)

// wrapErr annotates a sentinel error with the operation and pathname that
// triggered it, while keeping it classifiable with errors.Is(err, sentinel).
func wrapErr(op, name string, sentinel error) error {
	return &opError{op: op, name: name, err: sentinel}
}

type opError struct {
	op   string
	name string
	err  error
}

func (e *opError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.op, e.name, e.err)
}

func (e *opError) Unwrap() error {
	return e.err
}
