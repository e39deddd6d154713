package modal

import (
	"strings"

	"github.com/justy989/ce/buffer"
)

// spanText computes the exact text a motion/text-object span covers:
// for a linewise span, every full line from start.Y to end.Y
// (trailing newlines included); for a characterwise span, the bytes
// from start up to and including end (or one before it, if the
// motion that produced end was exclusive).
func spanText(b *buffer.Buffer, start, end buffer.Point, linewise, inclusive bool) (text string, lineStart, lineEnd int64) {
	start, end = buffer.Sort(start, end)
	if linewise {
		text, _ = b.DupeLines(start.Y, end.Y)
		return text, start.Y, end.Y
	}
	if !inclusive {
		if prev, moved := b.RetreatCursor(end); moved && !buffer.After(start, prev) {
			end = prev
		} else {
			return "", start.Y, end.Y
		}
	}
	return b.DupeString(start, end), start.Y, end.Y
}

// OpDelete removes the span [start, end] covered by a motion/text
// object, recording the removed text into regName and a commit onto
// cl. Returns the cursor position after the delete.
func OpDelete(b *buffer.Buffer, cl *buffer.CommitLog, start, end buffer.Point, linewise, inclusive bool, regs *Registers, regName byte) buffer.Point {
	start, _ = buffer.Sort(start, end)
	removed, startY, _ := spanText(b, start, end, linewise, inclusive)
	if removed == "" {
		return b.ClampCursor(start)
	}

	removeAt := start
	if linewise {
		removeAt = buffer.Point{0, startY}
	}
	b.RemoveString(removeAt, int64(len(removed)))

	kind := RegisterCharacterwise
	if linewise {
		kind = RegisterLinewise
	}
	regs.Set(regName, removed, kind)

	cl.Commit(buffer.Commit{
		Kind:          buffer.CommitRemove,
		Start:         removeAt,
		RemovedString: removed,
		Cursor:        removeAt,
	})

	cursor := removeAt
	if linewise {
		cursor = b.SoftBeginningOfLine(minI64(startY, b.LineCount()-1))
	}
	return b.ClampCursor(cursor)
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// OpYank copies the span covered by a motion/text object into regName
// without modifying the buffer.
func OpYank(b *buffer.Buffer, start, end buffer.Point, linewise, inclusive bool, regs *Registers, regName byte) {
	text, _, _ := spanText(b, start, end, linewise, inclusive)
	kind := RegisterCharacterwise
	if linewise {
		kind = RegisterLinewise
	}
	regs.Set(regName, text, kind)
}

// OpIndent shifts every line in [start.Y, end.Y] one tab to the
// right (dir > 0) or removes up to one tab of leading whitespace
// (dir < 0).
func OpIndent(b *buffer.Buffer, cl *buffer.CommitLog, startY, endY int64, dir int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		line := b.Line(y)
		if dir > 0 {
			b.InsertString(buffer.Point{0, y}, "\t")
			cl.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: buffer.Point{0, y}, InsertedString: "\t", Cursor: buffer.Point{0, y}})
			continue
		}
		if strings.HasPrefix(line, "\t") {
			b.RemoveString(buffer.Point{0, y}, 1)
			cl.Commit(buffer.Commit{Kind: buffer.CommitRemove, Start: buffer.Point{0, y}, RemovedString: "\t", Cursor: buffer.Point{0, y}})
		} else {
			n := 0
			for n < len(line) && n < 8 && line[n] == ' ' {
				n++
			}
			if n > 0 {
				b.RemoveString(buffer.Point{0, y}, int64(n))
				cl.Commit(buffer.Commit{Kind: buffer.CommitRemove, Start: buffer.Point{0, y}, RemovedString: line[:n], Cursor: buffer.Point{0, y}})
			}
		}
	}
}

// OpReindent replaces each line's leading whitespace in [startY, endY]
// with what GetIndentationForLine computes for it.
func OpReindent(b *buffer.Buffer, cl *buffer.CommitLog, startY, endY int64, tabWidth int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		line := b.Line(y)
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		want := b.GetIndentationForLine(y, tabWidth)
		if line[:n] == want {
			continue
		}
		if n > 0 {
			removed := line[:n]
			b.RemoveString(buffer.Point{0, y}, int64(n))
			cl.Commit(buffer.Commit{Kind: buffer.CommitRemove, Start: buffer.Point{0, y}, RemovedString: removed, Cursor: buffer.Point{0, y}})
		}
		if want != "" {
			b.InsertString(buffer.Point{0, y}, want)
			cl.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: buffer.Point{0, y}, InsertedString: want, Cursor: buffer.Point{0, y}, Chain: n > 0})
		}
	}
}
