// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs_test

import (
	"testing"

	"github.com/jacobsa/memvfs"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
)

func TestOpsFile(t *testing.T) { RunTests(t) }

type FileTest struct {
	fs *vfs.VFS
}

func init() { RegisterTestSuite(&FileTest{}) }

func (t *FileTest) SetUp(ti *TestInfo) {
	t.fs = vfs.New()
}

// Boundary scenario 2: create /f; open; write "hello"; seek 0; read 5 ->
// "hello"; close.
func (t *FileTest) WriteThenReadRoundTrips() {
	AssertEq(nil, t.fs.Create("/f"))
	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	n, err := t.fs.Write(fd, []byte("hello"))
	AssertEq(nil, err)
	ExpectEq(5, n)

	AssertEq(nil, t.fs.Seek(fd, 0))

	data, err := t.fs.Read(fd, 5)
	AssertEq(nil, err)
	ExpectEq("hello", string(data))

	AssertEq(nil, t.fs.Close(fd))
}

// Boundary scenario 3: a write spanning two blocks reports size=513,
// blocks=2.
func (t *FileTest) WriteAcrossBlockBoundaryGrowsBlockCount() {
	AssertEq(nil, t.fs.Create("/f"))
	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	payload := make([]byte, 513)
	for i := range payload {
		payload[i] = 'x'
	}

	n, err := t.fs.Write(fd, payload)
	AssertEq(nil, err)
	ExpectEq(513, n)

	info, err := t.fs.Stat("/f")
	AssertEq(nil, err)
	ExpectEq(513, info.Size)
	ExpectEq(2, info.Blocks)

	AssertEq(nil, t.fs.Close(fd))
}

// Boundary scenario 6: truncate grows a file with zero-filled holes.
func (t *FileTest) TruncateGrowsWithZeroFill() {
	AssertEq(nil, t.fs.Create("/f"))
	AssertEq(nil, t.fs.Truncate("/f", 1000))

	info, err := t.fs.Stat("/f")
	AssertEq(nil, err)
	ExpectEq(1000, info.Size)
	ExpectEq(2, info.Blocks)

	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	data, err := t.fs.Read(fd, 4)
	AssertEq(nil, err)
	ExpectThat(data, ElementsAre(0, 0, 0, 0))

	AssertEq(nil, t.fs.Close(fd))
}

func (t *FileTest) TruncateShrinkReleasesBlocks() {
	AssertEq(nil, t.fs.Create("/f"))
	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	payload := make([]byte, 1000)
	_, err = t.fs.Write(fd, payload)
	AssertEq(nil, err)

	AssertEq(nil, t.fs.Truncate("/f", 10))

	info, err := t.fs.Stat("/f")
	AssertEq(nil, err)
	ExpectEq(10, info.Size)
	ExpectEq(1, info.Blocks)

	AssertEq(nil, t.fs.Close(fd))
}

func (t *FileTest) TruncateClampsOpenCursor() {
	AssertEq(nil, t.fs.Create("/f"))
	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	_, err = t.fs.Write(fd, make([]byte, 100))
	AssertEq(nil, err)

	AssertEq(nil, t.fs.Truncate("/f", 10))

	err = t.fs.Seek(fd, 50)
	ExpectThat(err, Error(HasSubstr("invalid offset")))

	AssertEq(nil, t.fs.Close(fd))
}

func (t *FileTest) SeekRejectsPastEnd() {
	AssertEq(nil, t.fs.Create("/f"))
	fd, err := t.fs.Open("/f")
	AssertEq(nil, err)

	err = t.fs.Seek(fd, 1)
	ExpectThat(err, Error(HasSubstr("invalid offset")))

	AssertEq(nil, t.fs.Close(fd))
}

func (t *FileTest) OpenRejectsDirectory() {
	AssertEq(nil, t.fs.Mkdir("/a"))
	_, err := t.fs.Open("/a")
	ExpectThat(err, Error(HasSubstr("operation not permitted")))
}

func (t *FileTest) CloseRejectsUnknownHandle() {
	err := t.fs.Close(999)
	ExpectThat(err, Error(HasSubstr("bad file descriptor")))
}
