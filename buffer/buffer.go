// Package buffer implements the line-of-text storage engine: in-place
// byte-granular edits, matching-pair and regex search, indentation,
// and the commit log used for undo/redo.
package buffer

import (
	"errors"
	"os"
	"strings"

	"github.com/justy989/ce/celog"
)

// Status is the buffer-wide mutation/readonly state.
type Status int

const (
	StatusNone Status = iota
	StatusModified
	StatusReadOnly
	StatusNewFile
)

// Type is the buffer's syntax/content classification.
type Type int

const (
	TypePlain Type = iota
	TypeC
	TypeCpp
	TypePython
	TypeJava
	TypeBash
	TypeConfig
	TypeDiff
	TypeTerminal
)

// LoadResult reports the outcome of loading a file into a buffer.
type LoadResult int

const (
	LoadOK LoadResult = iota
	LoadMissing
	LoadDirectory
)

// ChangeCallback is notified after every successful mutation with the
// location the edit started at.
type ChangeCallback func(at Point)

// Buffer is a sequence of lines, each a mutable byte string with no
// embedded newlines (invariant I1).
type Buffer struct {
	lines []string

	Status Status
	Type   Type

	Filename string
	Name     string

	Cursor Point

	// HighlightStart/HighlightEnd bound the active visual selection.
	// HighlightStart.X == -1 signals "no selection".
	HighlightStart Point
	HighlightEnd   Point
	Mark           Point
	Blink          bool

	// LastSearchPattern/LastSearchDir record the most recent `/`/`?`
	// (or `*`/`#`) search, so the modal `n`/`N` motions know what to
	// repeat without the modal package depending on the editor layer.
	LastSearchPattern string
	LastSearchDir     SearchDirection

	// UserData is opaque per-buffer state owned by the editor layer
	// (mark table, commit list tail, jump list, etc).
	UserData interface{}
	// SyntaxState is opaque per-buffer state owned the syntax
	// highlighter associated with this buffer.
	SyntaxState interface{}

	callbacks []ChangeCallback
}

// New returns an empty buffer with zero lines, cursor at (0,0), per
// the canonical zero-line invariant (§9 open question).
func New() *Buffer {
	return &Buffer{HighlightStart: Point{X: -1}}
}

// OnChange registers cb to be invoked after every successful mutation.
func (b *Buffer) OnChange(cb ChangeCallback) {
	b.callbacks = append(b.callbacks, cb)
}

func (b *Buffer) notify(at Point) {
	for _, cb := range b.callbacks {
		cb(at)
	}
}

func (b *Buffer) markModified() {
	if b.Status != StatusReadOnly {
		b.Status = StatusModified
	}
}

// LineCount returns the number of lines currently stored.
func (b *Buffer) LineCount() int64 { return int64(len(b.lines)) }

// Line returns the raw contents of a line, or "" if out of range.
func (b *Buffer) Line(y int64) string {
	if y < 0 || y >= int64(len(b.lines)) {
		return ""
	}
	return b.lines[y]
}

// Lines returns a copy of every stored line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// AllocLines discards existing content and allocates n empty lines.
func (b *Buffer) AllocLines(n int64) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	b.clearLinesImpl()
	if n <= 0 {
		celog.Error("tried to allocate %d lines, but buffer needs > 0", n)
		return false
	}
	b.lines = make([]string, n)
	b.markModified()
	return true
}

func (b *Buffer) clearLinesImpl() {
	b.lines = nil
	b.markModified()
}

// Clear removes all lines from a non-readonly buffer.
func (b *Buffer) Clear() bool {
	if b.Status == StatusReadOnly {
		return false
	}
	b.clearLinesImpl()
	return true
}

// ClearReadonly removes all lines from a readonly buffer.
func (b *Buffer) ClearReadonly() bool {
	if b.Status != StatusReadOnly {
		return false
	}
	b.clearLinesImpl()
	return true
}

// LoadString replaces buffer contents with the lines of s; an empty s
// leaves a single empty line.
func (b *Buffer) LoadString(s string) bool {
	if !b.Clear() {
		return false
	}
	if s == "" {
		b.lines = []string{""}
		b.notify(Point{0, 0})
		return true
	}
	return b.InsertString(Point{0, 0}, s)
}

// LoadFile reads filename into the buffer, replacing any content.
func (b *Buffer) LoadFile(filename string) (LoadResult, error) {
	celog.Debug("load file '%s'", filename)
	if b.lines != nil {
		b.Filename = ""
		b.clearLinesImpl()
	}

	info, err := os.Stat(filename)
	if err == nil && info.IsDir() {
		return LoadDirectory, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadMissing, nil
		}
		return LoadMissing, err
	}

	content := string(data)
	content = strings.TrimSuffix(content, "\n")
	b.LoadString(content)
	b.Filename = filename

	if info != nil && info.Mode().Perm()&0200 == 0 {
		b.Status = StatusReadOnly
	} else {
		b.Status = StatusNone
	}
	return LoadOK, nil
}

// Save writes the buffer's contents to filename.
func (b *Buffer) Save(filename string) error {
	return os.WriteFile(filename, []byte(strings.Join(b.lines, "\n")), 0644)
}

// PointOnBuffer reports whether location addresses a valid position:
// a real line, and a column within [0, len(line)] inclusive.
func (b *Buffer) PointOnBuffer(p Point) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	if p.Y >= int64(len(b.lines)) {
		return false
	}
	return p.X <= int64(len(b.lines[p.Y]))
}

// GetChar returns the byte at location, mapping the line terminator
// to '\n'. ok is false when location is out of range.
func (b *Buffer) GetChar(p Point) (c byte, ok bool) {
	if !b.PointOnBuffer(p) {
		return 0, false
	}
	line := b.lines[p.Y]
	if p.X == int64(len(line)) {
		return '\n', true
	}
	return line[p.X], true
}

// GetCharRaw returns the raw byte at location, or 0 when location is
// not inside a line's bytes (the line terminator included).
func (b *Buffer) GetCharRaw(p Point) byte {
	if p.Y < 0 || p.Y >= int64(len(b.lines)) {
		return 0
	}
	line := b.lines[p.Y]
	if p.X < 0 || p.X >= int64(len(line)) {
		return 0
	}
	return line[p.X]
}

func (b *Buffer) insertLineImpl(line int64, s string, hasString bool) bool {
	var newLines []string
	if !hasString {
		newLines = []string{""}
	} else {
		newLines = strings.Split(s, "\n")
	}

	out := make([]string, 0, int64(len(b.lines))+int64(len(newLines)))
	out = append(out, b.lines[:line]...)
	out = append(out, newLines...)
	out = append(out, b.lines[line:]...)
	b.lines = out
	b.markModified()
	return true
}

func (b *Buffer) insertCharImpl(p Point, c byte) bool {
	if len(b.lines) == 0 && p.X == 0 && p.Y == 0 {
		b.lines = []string{""}
	}
	if !b.PointOnBuffer(p) {
		return false
	}
	line := b.lines[p.Y]
	if c == '\n' {
		tail := line[p.X:]
		b.insertLineImpl(p.Y+1, tail, true)
		b.lines[p.Y] = line[:p.X]
		b.markModified()
		b.notify(p)
		return true
	}
	b.lines[p.Y] = line[:p.X] + string(c) + line[p.X:]
	b.markModified()
	b.notify(p)
	return true
}

// InsertChar inserts byte c at location in a non-readonly buffer.
func (b *Buffer) InsertChar(p Point, c byte) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.insertCharImpl(p, c)
}

// InsertCharReadonly inserts byte c at location in a readonly buffer.
func (b *Buffer) InsertCharReadonly(p Point, c byte) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.insertCharImpl(p, c)
}

func (b *Buffer) endOfBuffer() Point {
	if len(b.lines) == 0 {
		return Point{0, 0}
	}
	y := int64(len(b.lines)) - 1
	return Point{int64(len(b.lines[y])), y}
}

// AppendChar appends byte c to the end of the buffer.
func (b *Buffer) AppendChar(c byte) bool {
	return b.InsertChar(b.endOfBuffer(), c)
}

// AppendCharReadonly appends byte c to the end of a readonly buffer.
func (b *Buffer) AppendCharReadonly(c byte) bool {
	return b.InsertCharReadonly(b.endOfBuffer(), c)
}

func (b *Buffer) insertStringImpl(p Point, s string) bool {
	if !(p.X == 0 && p.Y == 0) {
		if !b.PointOnBuffer(p) {
			if p.X == 0 && p.Y == int64(len(b.lines)) {
				return b.insertLineImpl(p.Y, s, true)
			}
			return false
		}
	}
	if s == "" {
		celog.Error("insert of empty string rejected")
		return false
	}

	if b.lines == nil {
		b.lines = strings.Split(s, "\n")
		b.markModified()
		b.notify(p)
		return true
	}

	current := b.lines[p.Y]
	firstPart := current[:p.X]
	secondPart := current[p.X:]

	idx := strings.IndexByte(s, '\n')
	if idx == -1 {
		b.lines[p.Y] = firstPart + s + secondPart
		b.markModified()
		b.notify(p)
		return true
	}

	b.lines[p.Y] = firstPart + s[:idx]
	rest := s[idx+1:]

	var middle []string
	for {
		idx = strings.IndexByte(rest, '\n')
		if idx == -1 {
			break
		}
		middle = append(middle, rest[:idx])
		rest = rest[idx+1:]
	}
	middle = append(middle, rest+secondPart)

	out := make([]string, 0, int64(len(b.lines))+int64(len(middle)))
	out = append(out, b.lines[:p.Y+1]...)
	out = append(out, middle...)
	out = append(out, b.lines[p.Y+1:]...)
	b.lines = out
	b.markModified()
	b.notify(p)
	return true
}

// InsertString inserts s (which may contain newlines) at location.
func (b *Buffer) InsertString(p Point, s string) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.insertStringImpl(p, s)
}

// InsertStringReadonly inserts s into a readonly buffer.
func (b *Buffer) InsertStringReadonly(p Point, s string) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.insertStringImpl(p, s)
}

// PrependString inserts s at the beginning of line.
func (b *Buffer) PrependString(line int64, s string) bool {
	return b.InsertString(Point{0, line}, s)
}

// AppendString inserts s at the end of line.
func (b *Buffer) AppendString(line int64, s string) bool {
	p := Point{0, line}
	if int64(len(b.lines)) > line {
		p.X = int64(len(b.lines[line]))
	}
	return b.InsertString(p, s)
}

// AppendStringReadonly inserts s at the end of line in a readonly buffer.
func (b *Buffer) AppendStringReadonly(line int64, s string) bool {
	p := Point{0, line}
	if int64(len(b.lines)) > line {
		p.X = int64(len(b.lines[line]))
	}
	return b.InsertStringReadonly(p, s)
}

// InsertLine inserts s as new line content at index line; an s that
// contains newlines inserts one line per newline-separated part.
func (b *Buffer) InsertLine(line int64, s string) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.insertLineImpl(line, s, true)
}

// InsertLineReadonly inserts a line into a readonly buffer.
func (b *Buffer) InsertLineReadonly(line int64, s string) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.insertLineImpl(line, s, true)
}

// AppendLine appends s as a new final line.
func (b *Buffer) AppendLine(s string) bool {
	return b.InsertLine(int64(len(b.lines)), s)
}

// AppendLineReadonly appends s as a new final line of a readonly buffer.
func (b *Buffer) AppendLineReadonly(s string) bool {
	return b.InsertLineReadonly(int64(len(b.lines)), s)
}

// InsertNewline inserts an empty line at index line, as if splitting
// without any content (ce_insert_newline == ce_insert_line(..., NULL)).
func (b *Buffer) InsertNewline(line int64) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.insertLineImpl(line, "", false)
}

func (b *Buffer) removeLineImpl(line int64) bool {
	if line < 0 || line >= int64(len(b.lines)) {
		celog.Error("line %d outside of buffer with %d lines", line, len(b.lines))
		return false
	}
	b.lines = append(b.lines[:line], b.lines[line+1:]...)
	b.markModified()
	b.notify(Point{0, line})
	return true
}

// RemoveLine deletes the line at index.
func (b *Buffer) RemoveLine(line int64) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.removeLineImpl(line)
}

// RemoveLineReadonly deletes the line at index of a readonly buffer.
func (b *Buffer) RemoveLineReadonly(line int64) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.removeLineImpl(line)
}

func (b *Buffer) setLineImpl(line int64, s string) bool {
	if line < 0 || line >= int64(len(b.lines)) {
		celog.Error("line %d outside of buffer with %d lines", line, len(b.lines))
		return false
	}
	b.lines[line] = s
	b.markModified()
	b.notify(Point{0, line})
	return true
}

// SetLine replaces the entire contents of line with s.
func (b *Buffer) SetLine(line int64, s string) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.setLineImpl(line, s)
}

// SetLineReadonly replaces the entire contents of line with s on a
// readonly buffer.
func (b *Buffer) SetLineReadonly(line int64, s string) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.setLineImpl(line, s)
}

// JoinLine appends line+1 onto line, consuming the newline between them.
func (b *Buffer) JoinLine(line int64) bool {
	if line < 0 || line >= int64(len(b.lines)) {
		celog.Error("line %d outside of buffer with %d lines", line, len(b.lines))
		return false
	}
	if b.Status == StatusReadOnly {
		return false
	}
	if line == int64(len(b.lines))-1 {
		return true
	}
	b.lines[line] = b.lines[line] + b.lines[line+1]
	b.markModified()
	return b.RemoveLine(line + 1)
}

func (b *Buffer) removeCharImpl(p Point) bool {
	if !b.PointOnBuffer(p) {
		return false
	}
	line := b.lines[p.Y]
	if len(line) == 0 {
		return b.RemoveLine(p.Y)
	}
	if p.X == int64(len(line)) {
		return b.JoinLine(p.Y)
	}
	b.lines[p.Y] = line[:p.X] + line[p.X+1:]
	b.markModified()
	b.notify(p)
	return true
}

// RemoveChar deletes a single byte at location.
func (b *Buffer) RemoveChar(p Point) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.removeCharImpl(p)
}

// RemoveCharReadonly deletes a single byte at location from a readonly buffer.
func (b *Buffer) RemoveCharReadonly(p Point) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.removeCharImpl(p)
}

// RemoveString deletes length bytes starting at location, joining
// lines across any embedded newlines consumed along the way.
func (b *Buffer) RemoveString(p Point, length int64) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	if length == 0 {
		return true
	}
	if !b.PointOnBuffer(p) {
		return false
	}

	lineLen := int64(len(b.lines[p.Y]))
	restOfLine := lineLen - p.X

	if length <= restOfLine {
		line := b.lines[p.Y]
		b.lines[p.Y] = line[:p.X] + line[p.X+length:]
		b.markModified()
		b.notify(p)
		return true
	}

	length -= restOfLine + 1 // account for the newline
	b.lines[p.Y] = b.lines[p.Y][:p.X]
	if p.X == 0 && length == 0 {
		b.markModified()
		return b.RemoveLine(p.Y)
	}

	deleteIndex := p.Y + 1
	for length >= 0 {
		if deleteIndex >= int64(len(b.lines)) {
			break
		}
		nextLen := int64(len(b.lines[deleteIndex]))
		if length >= nextLen+1 {
			b.RemoveLine(deleteIndex)
			length -= nextLen + 1
			continue
		}
		tail := b.lines[deleteIndex][length:]
		b.lines[p.Y] = b.lines[p.Y] + tail
		b.RemoveLine(p.Y + 1)
		break
	}
	b.markModified()
	b.notify(p)
	return true
}

func (b *Buffer) setCharImpl(p Point, c byte) bool {
	if !b.PointOnBuffer(p) {
		return false
	}
	line := b.lines[p.Y]
	if p.X == int64(len(line)) {
		return false
	}
	bs := []byte(line)
	bs[p.X] = c
	b.lines[p.Y] = string(bs)
	b.markModified()
	b.notify(p)
	return true
}

// SetChar overwrites the byte at location with c.
func (b *Buffer) SetChar(p Point, c byte) bool {
	if b.Status == StatusReadOnly {
		return false
	}
	return b.setCharImpl(p, c)
}

// SetCharReadonly overwrites a byte in a readonly buffer.
func (b *Buffer) SetCharReadonly(p Point, c byte) bool {
	if b.Status != StatusReadOnly {
		return false
	}
	return b.setCharImpl(p, c)
}

// ComputeLength returns the number of bytes (newlines counted as one
// byte each) spanned by [start, end] inclusive.
func (b *Buffer) ComputeLength(start, end Point) int64 {
	start, end = Sort(start, end)
	if start.Y < end.Y {
		length := int64(len(b.lines[start.Y])) - start.X + 1
		for i := start.Y + 1; i < end.Y; i++ {
			length += int64(len(b.lines[i])) + 1
		}
		length += end.X + 1
		return length
	}
	return end.X + 1 - start.X
}

// DupeString returns the contents between start and end inclusive.
func (b *Buffer) DupeString(start, end Point) string {
	start, end = Sort(start, end)
	if start.Y == end.Y {
		total := b.ComputeLength(start, end)
		line := b.lines[start.Y]
		s := line[start.X:]
		if total > int64(len(s)) {
			return s + "\n"
		}
		return s[:total]
	}

	var sb strings.Builder
	sb.WriteString(b.lines[start.Y][start.X:])
	sb.WriteByte('\n')
	for i := start.Y + 1; i < end.Y; i++ {
		sb.WriteString(b.lines[i])
		sb.WriteByte('\n')
	}
	line := b.lines[end.Y]
	if end.X >= int64(len(line)) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	} else {
		sb.WriteString(line[:end.X+1])
	}
	return sb.String()
}

// DupeLine returns the contents of line with a trailing newline.
func (b *Buffer) DupeLine(line int64) (string, bool) {
	if line < 0 || line >= int64(len(b.lines)) {
		return "", false
	}
	return b.lines[line] + "\n", true
}

// DupeLines returns the contents of [startLine, endLine] with trailing newlines.
func (b *Buffer) DupeLines(startLine, endLine int64) (string, bool) {
	if startLine < 0 || endLine < 0 {
		return "", false
	}
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	if startLine >= int64(len(b.lines)) || endLine >= int64(len(b.lines)) {
		return "", false
	}
	var sb strings.Builder
	for i := startLine; i <= endLine; i++ {
		sb.WriteString(b.lines[i])
		sb.WriteByte('\n')
	}
	return sb.String(), true
}

// DupeBuffer returns the entire contents of the buffer.
func (b *Buffer) DupeBuffer() string {
	if len(b.lines) == 0 {
		return ""
	}
	end := b.EndOfFile()
	return b.DupeString(Point{0, 0}, end)
}

// EndOfFile returns the position one-past the last byte of the last line.
func (b *Buffer) EndOfFile() Point {
	if len(b.lines) == 0 {
		return Point{0, 0}
	}
	y := int64(len(b.lines)) - 1
	return Point{int64(len(b.lines[y])), y}
}
