package buffer

import "strings"

// GetIndentationForLine computes the indentation string (copied from
// an existing line) that a newly opened line at lineIndex should
// inherit, given the file's Type.
//
// Python reuses the previous non-blank line's indentation verbatim,
// adding one tab if that line ends with a colon (entering a suite).
// Every other supported Type walks backward over unmatched closing
// delimiters to find the innermost enclosing `{`/`(`, skipping string
// literals and `//` comments. For a `{` it copies that opening line's
// indentation (adding one tab when the line ends on the opener); for
// a `(` it returns spaces up to the column just after the paren.
func (b *Buffer) GetIndentationForLine(lineIndex int64, tabWidth int) string {
	if b.Type == TypePython {
		return b.pythonIndentation(lineIndex, tabWidth)
	}
	return b.braceIndentation(lineIndex, tabWidth)
}

func lineIndentation(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

func (b *Buffer) pythonIndentation(lineIndex int64, tabWidth int) string {
	for y := lineIndex - 1; y >= 0; y-- {
		line := b.Line(y)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := lineIndentation(line)
		if strings.HasSuffix(trimmed, ":") {
			return indent + strings.Repeat("\t", 1)
		}
		return indent
	}
	return ""
}

// braceIndentation walks backward from the end of lineIndex-1,
// tracking a depth counter over closing delimiters so a matched
// close/open pair on an earlier line is transparent, and stops at the
// first unmatched opening `{` or `(`.
func (b *Buffer) braceIndentation(lineIndex int64, tabWidth int) string {
	if lineIndex <= 0 {
		return ""
	}

	depth := 0
	cur := Point{int64(len(b.Line(lineIndex - 1))), lineIndex - 1}
	if cur.X > 0 {
		cur.X--
	} else if cur.Y == 0 {
		return ""
	}

	for {
		c, ok := b.GetChar(cur)
		if ok && !b.insideStringOrComment(cur) {
			switch c {
			case '}', ')':
				depth++
			case '{', '(':
				if depth == 0 {
					return b.openerIndentation(cur, tabWidth)
				}
				depth--
			}
		}
		n, moved := b.RetreatCursor(cur)
		if !moved {
			break
		}
		cur = n
	}

	// No unmatched opener found; copy the previous non-blank line's
	// indentation unchanged.
	for y := lineIndex - 1; y >= 0; y-- {
		line := b.Line(y)
		if strings.TrimSpace(line) == "" {
			continue
		}
		return lineIndentation(line)
	}
	return ""
}

func (b *Buffer) openerIndentation(opener Point, tabWidth int) string {
	line := b.Line(opener.Y)
	if c, ok := b.GetChar(opener); ok && c == '(' {
		// Unlike `{`, an unclosed `(` aligns its continuation to the
		// column just after the paren, not the opener line's indent.
		return strings.Repeat(" ", int(opener.X)+1)
	}
	indent := lineIndentation(line)
	rest := strings.TrimSpace(line[opener.X+1:])
	if rest == "" {
		// The opener is the last meaningful thing on its line; the
		// body should nest one level deeper.
		return indent + "\t"
	}
	return indent
}

// insideStringOrComment reports whether p falls within a "..." or '...'
// string literal, or a "//" line comment, on its own line.
func (b *Buffer) insideStringOrComment(p Point) bool {
	line := b.Line(p.Y)
	if int64(len(line)) <= p.X {
		return false
	}
	commentStart := lastIndexBeforeComment(line)
	if commentStart != -1 && int64(commentStart) <= p.X {
		return true
	}

	inString := false
	var quote byte
	for i := 0; i <= int(p.X) && i < len(line); i++ {
		c := line[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		if c == '"' || c == '\'' {
			if int64(i) == p.X {
				return false
			}
			inString = true
			quote = c
		}
	}
	return inString
}
