package modal

import (
	"regexp"
	"strings"

	"github.com/justy989/ce/buffer"
)

// MotionResult is where a motion lands and how an operator spanning
// to it should treat the span.
type MotionResult struct {
	Point      buffer.Point
	Linewise   bool
	Inclusive  bool // whether Point itself is included in an operator's span
}

// Motion computes the destination of a cursor movement from p,
// repeated count times (count is already defaulted to 1 by the
// interpreter).
type Motion func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult

func motionLeft(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	for i := int64(0); i < count; i++ {
		n, ok := b.RetreatCursor(p)
		if !ok || n.Y != p.Y {
			break
		}
		p = n
	}
	return MotionResult{Point: p}
}

func motionRight(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	lineEnd := b.EndOfLine(p.Y)
	for i := int64(0); i < count; i++ {
		if p.X >= lineEnd.X {
			break
		}
		p.X++
	}
	return MotionResult{Point: p}
}

func motionDown(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := p.Y + count
	if y >= b.LineCount() {
		y = b.LineCount() - 1
	}
	return MotionResult{Point: b.ClampCursor(buffer.Point{p.X, y}), Linewise: true}
}

func motionUp(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := p.Y - count
	if y < 0 {
		y = 0
	}
	return MotionResult{Point: b.ClampCursor(buffer.Point{p.X, y}), Linewise: true}
}

func motionLineStart(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	return MotionResult{Point: b.BeginningOfLine(p.Y)}
}

func motionSoftLineStart(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	return MotionResult{Point: b.SoftBeginningOfLine(p.Y)}
}

func motionLineEnd(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := p.Y + count - 1
	if y >= b.LineCount() {
		y = b.LineCount() - 1
	}
	end := b.EndOfLine(y)
	if end.X > 0 {
		end.X--
	}
	return MotionResult{Point: end, Inclusive: true}
}

func motionFileStart(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := count - 1
	if count == 0 {
		y = 0
	}
	if y >= b.LineCount() {
		y = b.LineCount() - 1
	}
	if y < 0 {
		y = 0
	}
	return MotionResult{Point: b.SoftBeginningOfLine(y), Linewise: true}
}

func motionFileEnd(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := b.LineCount() - 1
	if count > 0 {
		y = count - 1
		if y >= b.LineCount() {
			y = b.LineCount() - 1
		}
	}
	return MotionResult{Point: b.SoftBeginningOfLine(y), Linewise: true}
}

func motionWordForward(strong bool) Motion {
	return func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
		for i := int64(0); i < count; i++ {
			n, ok := b.ToNextWord(p, strong)
			if !ok {
				break
			}
			p = n
		}
		return MotionResult{Point: p}
	}
}

func motionWordEnd(strong bool) Motion {
	return func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
		for i := int64(0); i < count; i++ {
			n, moved := b.AdvanceCursor(p)
			if !moved {
				break
			}
			p = b.MoveCursorToEndOfWord(n, strong)
		}
		return MotionResult{Point: p, Inclusive: true}
	}
}

func motionWordBack(strong bool) Motion {
	return func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
		for i := int64(0); i < count; i++ {
			prev, moved := b.RetreatCursor(p)
			if !moved {
				break
			}
			p = b.MoveCursorToBeginningOfWord(prev, strong)
		}
		return MotionResult{Point: p}
	}
}

func motionMatchingPair(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	match, ok := b.FindMatchingPair(p)
	if !ok {
		return MotionResult{Point: p}
	}
	return MotionResult{Point: match, Inclusive: true}
}

func isBlankLine(b *buffer.Buffer, y int64) bool {
	return strings.TrimSpace(b.Line(y)) == ""
}

// motionParagraphForward implements `}`: the next blank line, or the
// last line of the buffer if there isn't one.
func motionParagraphForward(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := p.Y
	last := b.LineCount() - 1
	for i := int64(0); i < count; i++ {
		if y < last {
			y++
		}
		for y < last && isBlankLine(b, y) {
			y++
		}
		for y < last && !isBlankLine(b, y) {
			y++
		}
	}
	if y > last {
		y = last
	}
	return MotionResult{Point: buffer.Point{X: 0, Y: y}}
}

// motionParagraphBack implements `{`: the previous blank line, or the
// first line of the buffer if there isn't one.
func motionParagraphBack(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
	y := p.Y
	for i := int64(0); i < count; i++ {
		if y > 0 {
			y--
		}
		for y > 0 && isBlankLine(b, y) {
			y--
		}
		for y > 0 && !isBlankLine(b, y) {
			y--
		}
	}
	if y < 0 {
		y = 0
	}
	return MotionResult{Point: buffer.Point{X: 0, Y: y}}
}

func oppositeSearchDirection(d buffer.SearchDirection) buffer.SearchDirection {
	if d == buffer.SearchForward {
		return buffer.SearchBackward
	}
	return buffer.SearchForward
}

// advanceForSearch steps one character in dir so repeating a search
// from the current match doesn't just find it again.
func advanceForSearch(b *buffer.Buffer, p buffer.Point, dir buffer.SearchDirection) buffer.Point {
	if dir == buffer.SearchForward {
		if n, moved := b.AdvanceCursor(p); moved {
			return n
		}
		return p
	}
	if n, moved := b.RetreatCursor(p); moved {
		return n
	}
	return p
}

// motionSearchRepeat implements `n`/`N`: re-run the last `/`/`?`/`*`/`#`
// search, same or opposite direction.
func motionSearchRepeat(sameDirection bool) Motion {
	return func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
		if b.LastSearchPattern == "" {
			return MotionResult{Point: p}
		}
		dir := b.LastSearchDir
		if !sameDirection {
			dir = oppositeSearchDirection(dir)
		}
		cur := p
		for i := int64(0); i < count; i++ {
			probe := advanceForSearch(b, cur, dir)
			start, _, found := b.FindRegex(probe, b.LastSearchPattern, dir)
			if !found {
				break
			}
			cur = start
		}
		return MotionResult{Point: cur}
	}
}

// motionSearchWordUnderCursor implements `*`/`#`: search for the exact
// word under the cursor, bounded by word edges, recording it as the
// last search pattern so a following `n`/`N` repeats it.
func motionSearchWordUnderCursor(forward bool) Motion {
	return func(b *buffer.Buffer, p buffer.Point, count int64) MotionResult {
		start := b.MoveCursorToBeginningOfWord(p, true)
		end := b.MoveCursorToEndOfWord(p, true)
		word := b.DupeString(start, end)
		if word == "" {
			return MotionResult{Point: p}
		}

		pattern := `\b` + regexp.QuoteMeta(word) + `\b`
		dir := buffer.SearchForward
		if !forward {
			dir = buffer.SearchBackward
		}
		b.LastSearchPattern = pattern
		b.LastSearchDir = dir

		cur := p
		for i := int64(0); i < count; i++ {
			probe := advanceForSearch(b, cur, dir)
			mstart, _, found := b.FindRegex(probe, pattern, dir)
			if !found {
				break
			}
			cur = mstart
		}
		return MotionResult{Point: cur}
	}
}

// Motions maps a single-rune normal-mode key to its Motion.
var Motions = map[rune]Motion{
	'h':         motionLeft,
	'l':         motionRight,
	'j':         motionDown,
	'k':         motionUp,
	'0':         motionLineStart,
	'^':         motionSoftLineStart,
	'$':         motionLineEnd,
	'G':         motionFileEnd,
	'%':         motionMatchingPair,
	'w':         motionWordForward(false),
	'W':         motionWordForward(true),
	'e':         motionWordEnd(false),
	'E':         motionWordEnd(true),
	'b':         motionWordBack(false),
	'B':         motionWordBack(true),
	'{':         motionParagraphBack,
	'}':         motionParagraphForward,
	'n':         motionSearchRepeat(true),
	'N':         motionSearchRepeat(false),
	'*':         motionSearchWordUnderCursor(true),
	'#':         motionSearchWordUnderCursor(false),
}
