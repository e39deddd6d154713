package buffer

import (
	rubex "github.com/limetext/rubex"

	"github.com/justy989/ce/celog"
)

// SearchDirection selects which way FindRegex scans from the start point.
type SearchDirection int

const (
	SearchForward SearchDirection = iota
	SearchBackward
)

// FindRegex searches the buffer's full text for pattern (POSIX
// extended regex, via rubex/Oniguruma) starting at start.
//
// Forward search returns the first match beginning at or after start.
// Backward search returns the last match beginning strictly before
// start on the line it starts from, falling back to the last match on
// any earlier line, and wrapping to the last match in the whole
// buffer if none precedes start.
func (b *Buffer) FindRegex(start Point, pattern string, dir SearchDirection) (matchStart, matchEnd Point, found bool) {
	re, err := rubex.Compile(pattern)
	if err != nil {
		celog.Error("failed to compile regex '%s': %s", pattern, err)
		return Point{}, Point{}, false
	}

	full := b.DupeBuffer()
	locs := re.FindAllStringIndex(full, -1)
	if len(locs) == 0 {
		return Point{}, Point{}, false
	}

	offsets := b.lineStartOffsets()
	toPoint := func(byteOffset int) Point {
		return offsetToPoint(offsets, int64(byteOffset))
	}
	startOffset := pointToOffset(offsets, start)

	if dir == SearchForward {
		for _, loc := range locs {
			if int64(loc[0]) >= startOffset {
				return toPoint(loc[0]), toPoint(loc[1]), true
			}
		}
		// wrap
		loc := locs[0]
		return toPoint(loc[0]), toPoint(loc[1]), true
	}

	// Backward: last match strictly before the cursor; wrap to the
	// very last match in the buffer if the cursor precedes everything.
	var best []int
	for _, loc := range locs {
		if int64(loc[0]) < startOffset {
			best = loc
		} else {
			break
		}
	}
	if best == nil {
		best = locs[len(locs)-1]
	}
	return toPoint(best[0]), toPoint(best[1]), true
}

// lineStartOffsets returns the byte offset of the start of every line
// within the string produced by DupeBuffer (lines joined by '\n').
func (b *Buffer) lineStartOffsets() []int64 {
	offsets := make([]int64, len(b.lines))
	var acc int64
	for i, line := range b.lines {
		offsets[i] = acc
		acc += int64(len(line)) + 1
	}
	return offsets
}

func pointToOffset(lineStarts []int64, p Point) int64 {
	if p.Y < 0 || int(p.Y) >= len(lineStarts) {
		return 0
	}
	return lineStarts[p.Y] + p.X
}

func offsetToPoint(lineStarts []int64, offset int64) Point {
	y := int64(0)
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			y = int64(i)
			break
		}
	}
	return Point{offset - lineStarts[y], y}
}
