// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

// Package repl implements the line-oriented, shell-word-tokenized command
// surface described in spec.md §6.2: one VFS operation per line, errors
// printed to standard error, the loop ending cleanly on "exit", EOF, or
// two consecutive interrupts.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/jacobsa/memvfs"
	shellwords "github.com/kballard/go-shellquote"
)

// Run drives the REPL loop, reading lines from in and writing prompts and
// command output to out, until the loop terminates. It returns the
// process exit code (always 0 on clean termination, matching spec.md
// §6.2).
func Run(fs *vfs.VFS, in io.Reader, out, errOut io.Writer) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	scanner := bufio.NewScanner(in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	interrupted := false
	for {
		fmt.Fprintf(out, "%s%% ", fs.Cwd())

		select {
		case line, ok := <-lines:
			if !ok {
				return 0
			}
			interrupted = false

			words, err := shellwords.Split(line)
			if err != nil {
				fmt.Fprintln(errOut, "error: unterminated quote found")
				continue
			}
			if len(words) == 0 {
				continue
			}

			if words[0] == "exit" {
				return 0
			}

			dispatch(fs, words, out, errOut)

		case <-sigCh:
			if interrupted {
				return 0
			}
			fmt.Fprintln(out, `(To exit, press Ctrl+C again or Ctrl+D or type "exit")`)
			interrupted = true
		}
	}
}

func dispatch(fs *vfs.VFS, words []string, out, errOut io.Writer) {
	cmd, args := words[0], words[1:]

	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command %q (try \"help\")\n", cmd)
		return
	}
	if err := handler(fs, args, out); err != nil {
		fmt.Fprintln(errOut, err)
	}
}

type commandFunc func(fs *vfs.VFS, args []string, out io.Writer) error

var commands = map[string]commandFunc{
	"stat":     cmdStat,
	"ls":       cmdLs,
	"create":   cmdCreate,
	"mkdir":    cmdMkdir,
	"rmdir":    cmdRmdir,
	"symlink":  cmdSymlink,
	"link":     cmdLink,
	"unlink":   cmdUnlink,
	"open":     cmdOpen,
	"close":    cmdClose,
	"seek":     cmdSeek,
	"read":     cmdRead,
	"write":    cmdWrite,
	"truncate": cmdTruncate,
	"cd":       cmdCd,
	"help":     cmdHelp,
}

func needArgs(name string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func cmdStat(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("stat", args, 1); err != nil {
		return err
	}
	info, err := fs.Stat(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, info.String())
	return nil
}

func cmdLs(fs *vfs.VFS, args []string, out io.Writer) error {
	path := "/"
	if len(args) == 1 {
		path = args[0]
	} else if len(args) > 1 {
		return needArgs("ls", args, 1)
	}
	names, err := fs.Ls(path)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}

func cmdCreate(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("create", args, 1); err != nil {
		return err
	}
	return fs.Create(args[0])
}

func cmdMkdir(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("mkdir", args, 1); err != nil {
		return err
	}
	return fs.Mkdir(args[0])
}

func cmdRmdir(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("rmdir", args, 1); err != nil {
		return err
	}
	return fs.Rmdir(args[0])
}

func cmdSymlink(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("symlink", args, 2); err != nil {
		return err
	}
	return fs.Symlink(args[0], args[1])
}

func cmdLink(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("link", args, 2); err != nil {
		return err
	}
	return fs.Link(args[0], args[1])
}

func cmdUnlink(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("unlink", args, 1); err != nil {
		return err
	}
	return fs.Unlink(args[0])
}

func cmdOpen(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("open", args, 1); err != nil {
		return err
	}
	fd, err := fs.Open(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, fd)
	return nil
}

func cmdClose(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("close", args, 1); err != nil {
		return err
	}
	fd, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return fs.Close(fd)
}

func cmdSeek(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("seek", args, 2); err != nil {
		return err
	}
	fd, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	offset, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return fs.Seek(fd, offset)
}

func cmdRead(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("read", args, 2); err != nil {
		return err
	}
	fd, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	data, err := fs.Read(fd, n)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func cmdWrite(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("write", args, 2); err != nil {
		return err
	}
	fd, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	n, err := fs.Write(fd, []byte(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n)
	return nil
}

func cmdTruncate(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("truncate", args, 2); err != nil {
		return err
	}
	size, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return fs.Truncate(args[0], size)
}

func cmdCd(fs *vfs.VFS, args []string, out io.Writer) error {
	if err := needArgs("cd", args, 1); err != nil {
		return err
	}
	return fs.Cd(args[0])
}

func cmdHelp(fs *vfs.VFS, args []string, out io.Writer) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "commands:", strings.Join(names, ", "), ", exit")
	return nil
}
