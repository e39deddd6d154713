package editor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/justy989/ce/celog"
)

// sessionFileName is the file persisted at $HOME/.ce, per spec.md §6.
const sessionFileName = ".ce"

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, sessionFileName), nil
}

// SessionState is what SaveSession writes and LoadSession reads: the
// last search register's text plus a cursor-row per open file.
type SessionState struct {
	LastSearch  string
	CursorLines map[string]int64 // filename -> cursor Y
}

// SaveSession persists the current search register and every open
// file's cursor row to $HOME/.ce. Errors writing are logged, not
// fatal, per the "non-fatal session sections" rule in spec.md §7.
func (e *Editor) SaveSession(lastSearch string) {
	path, err := sessionPath()
	if err != nil {
		celog.Warn("could not resolve session file path: %s", err)
		return
	}

	var b strings.Builder
	searchLines := strings.Split(lastSearch, "\n")
	if lastSearch == "" {
		searchLines = nil
	}
	fmt.Fprintf(&b, "%d\n", len(searchLines))
	for _, l := range searchLines {
		fmt.Fprintf(&b, "%s\n", l)
	}
	for _, buf := range e.Buffers {
		if buf.Filename == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %d\n", buf.Filename, buf.Cursor.Y)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		celog.Warn("could not write session file: %s", err)
	}
}

// LoadSession reads $HOME/.ce, tolerating a missing file, an empty
// file, or a malformed section (skipped after the first unparseable
// field, per spec.md §7).
func LoadSession() SessionState {
	state := SessionState{CursorLines: make(map[string]int64)}

	path, err := sessionPath()
	if err != nil {
		return state
	}
	f, err := os.Open(path)
	if err != nil {
		return state
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return state
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 0 {
		return state
	}

	var search []string
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return state
		}
		search = append(search, scanner.Text())
	}
	state.LastSearch = strings.Join(search, "\n")

	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			break
		}
		filename := line[:idx]
		y, err := strconv.ParseInt(line[idx+1:], 10, 64)
		if err != nil {
			break
		}
		state.CursorLines[filename] = y
	}
	return state
}

// messagesFileName is where the `-s` flag persists the message
// buffer on exit, per spec.md §6.
const messagesFileName = ".ce_messages"

// SaveMessages writes every line of the message buffer to
// $HOME/.ce_messages, overwriting any previous contents. Errors are
// logged, not fatal, matching SaveSession's error handling.
func (e *Editor) SaveMessages() {
	home, err := os.UserHomeDir()
	if err != nil {
		celog.Warn("could not resolve messages file path: %s", err)
		return
	}
	path := filepath.Join(home, messagesFileName)

	var b strings.Builder
	for _, line := range e.Message.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		celog.Warn("could not write messages file: %s", err)
	}
}

// ApplySession restores a loaded session's per-file cursor rows onto
// buffers already opened by the caller, soft-aligning the cursor to
// the first non-blank column of the restored row.
func (e *Editor) ApplySession(state SessionState) {
	for _, b := range e.Buffers {
		y, ok := state.CursorLines[b.Filename]
		if !ok {
			continue
		}
		if y < 0 || y >= b.LineCount() {
			continue
		}
		b.Cursor = b.SoftBeginningOfLine(y)
	}
	if state.LastSearch != "" {
		e.SearchHistory.Add(state.LastSearch)
		e.lastSearch = state.LastSearch
	}
}

// LastSearch returns the most recently committed search pattern, the
// value SaveSession should persist on exit.
func (e *Editor) LastSearch() string { return e.lastSearch }
