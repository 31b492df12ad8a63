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

// Package vfslog provides the engine's one-line-per-call debug logging,
// gated behind a flag the same way the teacher's top-level debug.go gates
// FUSE protocol tracing.
package vfslog

import (
	"flag"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sync"
)

var fEnableDebug = flag.Bool(
	"vfs.debug",
	false,
	"Write VFS operation-engine debugging messages to stderr.")

var gLogger *log.Logger
var gLoggerOnce sync.Once

func initLogger() {
	var writer io.Writer = ioutil.Discard
	if *fEnableDebug {
		writer = os.Stderr
	}

	const flags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
	gLogger = log.New(writer, "vfs: ", flags)
}

// Get returns the process-wide engine logger, initializing it from flags
// on first use. Callers should invoke flag.Parse before the first call so
// -vfs.debug has taken effect.
func Get() *log.Logger {
	gLoggerOnce.Do(initLogger)
	return gLogger
}

// Enabled reports whether debug logging is turned on. Exposed so callers
// can skip formatting work on the hot path when it is not.
func Enabled() bool {
	return *fEnableDebug
}
