// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import "strings"

// IsAbsolute reports whether s begins with "/".
func IsAbsolute(s string) bool {
	return strings.HasPrefix(s, "/")
}

// splitSegments splits a pathname into its non-empty segments, discarding
// the segments produced by a leading "/", a trailing "/", or any run of
// "//". segments("/a//b/") == ["a", "b"].
func splitSegments(s string) []string {
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dirname returns the directory portion of a pathname, in the tradition of
// the POSIX dirname(1) utility: Dirname("/a/b") == "/a", Dirname("/a") ==
// "/", Dirname("a") == ".".
func Dirname(p string) string {
	abs := IsAbsolute(p)
	segs := splitSegments(p)

	if len(segs) <= 1 {
		if abs {
			return "/"
		}
		return "."
	}

	head := segs[:len(segs)-1]
	if abs {
		return "/" + strings.Join(head, "/")
	}
	return strings.Join(head, "/")
}

// Basename returns the final pathname component: Basename("/a/b") == "b",
// Basename("a") == "a".
func Basename(p string) string {
	segs := splitSegments(p)
	if len(segs) == 0 {
		return "/"
	}
	return segs[len(segs)-1]
}
