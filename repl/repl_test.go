// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jacobsa/memvfs"
	"github.com/jacobsa/memvfs/repl"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
)

func TestRepl(t *testing.T) { RunTests(t) }

type ReplTest struct {
	fs     *vfs.VFS
	out    bytes.Buffer
	errOut bytes.Buffer
}

func init() { RegisterTestSuite(&ReplTest{}) }

func (t *ReplTest) SetUp(ti *TestInfo) {
	t.fs = vfs.New()
}

func (t *ReplTest) run(script string) int {
	return repl.Run(t.fs, strings.NewReader(script), &t.out, &t.errOut)
}

func (t *ReplTest) ExitCommandEndsLoopCleanly() {
	code := t.run("exit\n")
	ExpectEq(0, code)
}

func (t *ReplTest) EOFEndsLoopCleanly() {
	code := t.run("")
	ExpectEq(0, code)
}

func (t *ReplTest) CreateOpenWriteReadRoundTrips() {
	code := t.run("create /f\n" +
		"open /f\n" +
		"write 0 hello\n" +
		"seek 0 0\n" +
		"read 0 5\n" +
		"close 0\n" +
		"exit\n")

	AssertEq(0, code)
	ExpectThat(t.out.String(), HasSubstr("0\n")) // open's printed fd
	ExpectThat(t.out.String(), HasSubstr("5\n")) // write's byte count
	ExpectThat(t.out.String(), HasSubstr("hello"))
	ExpectEq("", t.errOut.String())
}

func (t *ReplTest) UnknownCommandReportsError() {
	code := t.run("bogus\nexit\n")
	AssertEq(0, code)
	ExpectThat(t.errOut.String(), HasSubstr("unknown command"))
}

func (t *ReplTest) FailingOperationReportsErrorAndContinues() {
	code := t.run("stat /nope\nexit\n")
	AssertEq(0, code)
	ExpectThat(t.errOut.String(), HasSubstr("no such file or directory"))
}

func (t *ReplTest) QuotedArgumentsAreTokenizedAsOneWord() {
	code := t.run(`mkdir "/a dir"` + "\n" + "ls /\nexit\n")
	AssertEq(0, code)
	ExpectThat(t.out.String(), HasSubstr("a dir"))
}
