package buffer

// IsWordChar reports whether c is part of a vi "word" (alnum or
// underscore), mirroring ce_iswordchar.
func IsWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// IsWhitespaceChar reports whether c is a space or tab.
func IsWhitespaceChar(c byte) bool {
	return c == ' ' || c == '\t'
}

// AdvanceCursor returns the point one byte after p, wrapping to the
// beginning of the next line at end of line, and clamping at
// end-of-file. ok is false if p was already at end-of-file.
func (b *Buffer) AdvanceCursor(p Point) (Point, bool) {
	if !b.PointOnBuffer(p) {
		return p, false
	}
	lineLen := int64(len(b.lines[p.Y]))
	if p.X < lineLen {
		return Point{p.X + 1, p.Y}, true
	}
	if p.Y+1 < int64(len(b.lines)) {
		return Point{0, p.Y + 1}, true
	}
	return p, false
}

// RetreatCursor returns the point one byte before p, wrapping to the
// end of the previous line when p is at the beginning of a line.
func (b *Buffer) RetreatCursor(p Point) (Point, bool) {
	if p.X > 0 {
		return Point{p.X - 1, p.Y}, true
	}
	if p.Y == 0 {
		return p, false
	}
	prevY := p.Y - 1
	return Point{int64(len(b.lines[prevY])), prevY}, true
}

// ClampCursor pulls p back onto the buffer: within line count, and
// within the line's length (end-of-line is the one permitted
// one-past-the-end column).
func (b *Buffer) ClampCursor(p Point) Point {
	if len(b.lines) == 0 {
		return Point{0, 0}
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= int64(len(b.lines)) {
		p.Y = int64(len(b.lines)) - 1
	}
	lineLen := int64(len(b.lines[p.Y]))
	if p.X < 0 {
		p.X = 0
	}
	if p.X > lineLen {
		p.X = lineLen
	}
	return p
}

// SoftBeginningOfLine returns the position of the first non-whitespace
// byte on the line, or the end of line if the line is all whitespace.
func (b *Buffer) SoftBeginningOfLine(y int64) Point {
	line := b.Line(y)
	for i := 0; i < len(line); i++ {
		if !IsWhitespaceChar(line[i]) {
			return Point{int64(i), y}
		}
	}
	return Point{int64(len(line)), y}
}

// BeginningOfLine returns column 0 of line y.
func (b *Buffer) BeginningOfLine(y int64) Point { return Point{0, y} }

// EndOfLine returns the one-past-the-end column of line y.
func (b *Buffer) EndOfLine(y int64) Point {
	return Point{int64(len(b.Line(y))), y}
}

// BeginningOfFile returns (0, 0).
func (b *Buffer) BeginningOfFile() Point { return Point{0, 0} }

type wordBoundary int

const (
	boundaryWeak wordBoundary = iota
	boundaryStrong
)

func charClass(c byte, strong wordBoundary) int {
	switch {
	case IsWhitespaceChar(c):
		return 0
	case strong == boundaryStrong:
		return 1
	case IsWordChar(c):
		return 1
	default:
		return 2
	}
}

// ToNextWord returns the start of the next word after p. strong
// selects vi's "W" (whitespace-delimited) boundary rule instead of
// the default "w" (word-character-class) rule.
func (b *Buffer) ToNextWord(p Point, strong bool) (Point, bool) {
	bound := boundaryWeak
	if strong {
		bound = boundaryStrong
	}
	cur, ok := b.GetChar(p)
	if !ok {
		return p, false
	}

	startClass := charClass(cur, bound)
	cursor := p
	if startClass != 0 {
		// Skip the remainder of the current run of word/punct chars.
		for {
			n, moved := b.AdvanceCursor(cursor)
			if !moved {
				return cursor, cursor != p
			}
			c, _ := b.GetChar(n)
			if charClass(c, bound) != startClass {
				cursor = n
				break
			}
			cursor = n
		}
	}

	// Skip any run of whitespace to land on the next word's first byte.
	for {
		c, ok := b.GetChar(cursor)
		if !ok {
			return cursor, cursor != p
		}
		if charClass(c, bound) != 0 {
			return cursor, true
		}
		n, moved := b.AdvanceCursor(cursor)
		if !moved {
			return cursor, cursor != p
		}
		cursor = n
	}
}

// MoveCursorToBeginningOfWord returns the start of the word containing
// or preceding p.
func (b *Buffer) MoveCursorToBeginningOfWord(p Point, strong bool) Point {
	bound := boundaryWeak
	if strong {
		bound = boundaryStrong
	}
	cur, ok := b.GetChar(p)
	if !ok {
		return p
	}
	if IsWhitespaceChar(cur) {
		for {
			prev, moved := b.RetreatCursor(p)
			if !moved {
				return p
			}
			c, _ := b.GetChar(prev)
			if !IsWhitespaceChar(c) {
				p = prev
				break
			}
			p = prev
		}
	}
	cur, _ = b.GetChar(p)
	cls := charClass(cur, bound)
	for {
		prev, moved := b.RetreatCursor(p)
		if !moved {
			break
		}
		c, _ := b.GetChar(prev)
		if charClass(c, bound) != cls {
			break
		}
		p = prev
	}
	return p
}

// MoveCursorToEndOfWord returns the end (inclusive, last byte) of the
// word containing or following p.
func (b *Buffer) MoveCursorToEndOfWord(p Point, strong bool) Point {
	bound := boundaryWeak
	if strong {
		bound = boundaryStrong
	}
	cur, ok := b.GetChar(p)
	if !ok {
		return p
	}
	if IsWhitespaceChar(cur) {
		for {
			next, moved := b.AdvanceCursor(p)
			if !moved {
				return p
			}
			p = next
			c, _ := b.GetChar(p)
			if !IsWhitespaceChar(c) {
				break
			}
		}
	}
	cur, _ = b.GetChar(p)
	cls := charClass(cur, bound)
	for {
		next, moved := b.AdvanceCursor(p)
		if !moved {
			break
		}
		c, _ := b.GetChar(next)
		if charClass(c, bound) != cls {
			break
		}
		p = next
	}
	return p
}
