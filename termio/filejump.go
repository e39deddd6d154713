package termio

import (
	"regexp"
	"strconv"
)

// Destination is a file+position pair parsed out of a terminal
// buffer line, ready to be opened and jumped to.
type Destination struct {
	Path string
	Line int // 0-indexed
	Col  int // 0-indexed
}

var (
	diffHeaderRe  = regexp.MustCompile(`^(?:---|\+\+\+) [ab]/(\S+)`)
	diffHunkRe    = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)
	valgrindRe    = regexp.MustCompile(`\(([^():]+):(\d+)\)`)
	compilerRe    = regexp.MustCompile(`^([^\s:]+):(\d+)(?::(\d+))?:`)
)

// ParseDestination interprets line as one of the three recognized
// terminal-output shapes: a unified diff hunk (using the nearest
// preceding "--- a/path"/"+++ b/path" header from priorPath),
// a valgrind "fn (path:line)" frame, or a compiler/grep
// "path:line:col?:message" line. It returns ok=false if line matches
// none of these shapes.
func ParseDestination(line string, priorPath string) (Destination, bool) {
	if m := diffHunkRe.FindStringSubmatch(line); m != nil {
		if priorPath == "" {
			return Destination{}, false
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Destination{}, false
		}
		return Destination{Path: priorPath, Line: n - 1, Col: 0}, true
	}
	if m := valgrindRe.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Destination{}, false
		}
		return Destination{Path: m[1], Line: n - 1, Col: 0}, true
	}
	if m := compilerRe.FindStringSubmatch(line); m != nil {
		lineNo, err := strconv.Atoi(m[2])
		if err != nil {
			return Destination{}, false
		}
		col := 1
		if m[3] != "" {
			if c, err := strconv.Atoi(m[3]); err == nil {
				col = c
			}
		}
		return Destination{Path: m[1], Line: lineNo - 1, Col: col - 1}, true
	}
	return Destination{}, false
}

// DiffHeaderPath extracts the path named by a "--- a/path" or
// "+++ b/path" diff header line, for callers tracking priorPath
// across ParseDestination calls as they scan a terminal buffer.
func DiffHeaderPath(line string) (string, bool) {
	m := diffHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
