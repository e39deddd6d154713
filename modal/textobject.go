package modal

import "github.com/justy989/ce/buffer"

// textObjectPairs maps an "inner"/"around" text-object key to the
// delimiter pair it operates within, for i(/a( style objects and
// their bracket aliases.
var textObjectPairs = map[rune][2]byte{
	'(': {'(', ')'},
	')': {'(', ')'},
	'b': {'(', ')'},
	'{': {'{', '}'},
	'}': {'{', '}'},
	'B': {'{', '}'},
	'[': {'[', ']'},
	']': {'[', ']'},
	'<': {'<', '>'},
	'>': {'<', '>'},
}

// TextObject resolves a text object keyed by (around, obj), e.g.
// ('a','w') for "a word" or ('i','(') for "inner parens", at cursor
// p into an inclusive [start, end] span. ok is false if no such
// object exists at p.
func TextObject(b *buffer.Buffer, p buffer.Point, around bool, obj rune) (start, end buffer.Point, ok bool) {
	if obj == 'w' || obj == 'W' {
		return textObjectWord(b, p, around, obj == 'W')
	}
	if pair, isPair := textObjectPairs[obj]; isPair {
		return textObjectPair(b, p, around, pair[0], pair[1])
	}
	if obj == '"' || obj == '\'' || obj == '`' {
		return textObjectQuote(b, p, around, byte(obj))
	}
	return buffer.Point{}, buffer.Point{}, false
}

func textObjectWord(b *buffer.Buffer, p buffer.Point, around, strong bool) (buffer.Point, buffer.Point, bool) {
	start := b.MoveCursorToBeginningOfWord(p, strong)
	end := b.MoveCursorToEndOfWord(p, strong)
	if !around {
		return start, end, true
	}
	// "around" swallows trailing whitespace up to (but not including)
	// the next word, or leading whitespace if there is none after.
	next, moved := b.AdvanceCursor(end)
	if moved {
		c, ok := b.GetChar(next)
		if ok && buffer.IsWhitespaceChar(c) {
			for {
				n, moved := b.AdvanceCursor(next)
				if !moved {
					break
				}
				c, ok := b.GetChar(n)
				if !ok || !buffer.IsWhitespaceChar(c) {
					break
				}
				next = n
			}
			return start, next, true
		}
	}
	return start, end, true
}

func textObjectPair(b *buffer.Buffer, p buffer.Point, around bool, open, close byte) (buffer.Point, buffer.Point, bool) {
	openPt, closePt, found := enclosingPair(b, p, open, close)
	if !found {
		return buffer.Point{}, buffer.Point{}, false
	}
	if around {
		return openPt, closePt, true
	}
	innerStart, moved := b.AdvanceCursor(openPt)
	if !moved {
		return openPt, openPt, true
	}
	innerEnd, moved := b.RetreatCursor(closePt)
	if !moved || buffer.After(innerStart, innerEnd) {
		return innerStart, innerStart, true
	}
	return innerStart, innerEnd, true
}

// enclosingPair finds the nearest open/close pair enclosing p, even
// when p itself sits on one of the delimiters.
func enclosingPair(b *buffer.Buffer, p buffer.Point, open, close byte) (buffer.Point, buffer.Point, bool) {
	c, ok := b.GetChar(p)
	if ok && c == open {
		if end, found := b.FindMatchingPair(p); found {
			return p, end, true
		}
	}
	if ok && c == close {
		if start, found := b.FindMatchingPair(p); found {
			return start, p, true
		}
	}

	depth := 0
	cur := p
	for {
		c, ok := b.GetChar(cur)
		if ok {
			if c == close {
				depth++
			} else if c == open {
				if depth == 0 {
					if end, found := b.FindMatchingPair(cur); found {
						return cur, end, true
					}
					return buffer.Point{}, buffer.Point{}, false
				}
				depth--
			}
		}
		n, moved := b.RetreatCursor(cur)
		if !moved {
			return buffer.Point{}, buffer.Point{}, false
		}
		cur = n
	}
}

func textObjectQuote(b *buffer.Buffer, p buffer.Point, around bool, quote byte) (buffer.Point, buffer.Point, bool) {
	line := b.Line(p.Y)
	var openX int64 = -1
	count := 0
	for i := int64(0); i < int64(len(line)); i++ {
		if line[i] == quote && (i == 0 || line[i-1] != '\\') {
			count++
			if count%2 == 1 {
				openX = i
			} else if i >= p.X || openX <= p.X {
				closeX := i
				openPt := buffer.Point{openX, p.Y}
				closePt := buffer.Point{closeX, p.Y}
				if around {
					return openPt, closePt, true
				}
				if closeX == openX+1 {
					return buffer.Point{openX + 1, p.Y}, buffer.Point{openX + 1, p.Y}, true
				}
				return buffer.Point{openX + 1, p.Y}, buffer.Point{closeX - 1, p.Y}, true
			}
		}
	}
	return buffer.Point{}, buffer.Point{}, false
}
