// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

// Command vfsh is an interactive shell over an in-memory vfs.VFS.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jacobsa/memvfs"
	"github.com/jacobsa/memvfs/repl"
)

// version is overwritten at build time via -ldflags "-X main.version=...".
var version = "dev"

var (
	fBlockCount = flag.Uint64(
		"vfs.block-count",
		0,
		"Initial block-store size, in blocks. 0 uses the library default.")

	fVersion = flag.Bool(
		"version",
		false,
		"Print version information and exit.")
)

func main() {
	flag.Parse()

	if *fVersion {
		fmt.Printf("vfsh (github.com/jacobsa/memvfs) %s\n", version)
		return
	}

	var fs *vfs.VFS
	if *fBlockCount > 0 {
		fs = vfs.NewWithBlockCount(*fBlockCount)
	} else {
		fs = vfs.New()
	}

	fmt.Printf("Welcome to vfsh %s.\nType \"help\" for more information.\n", version)
	os.Exit(repl.Run(fs, os.Stdin, os.Stdout, os.Stderr))
}
