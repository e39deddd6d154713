// Package syntax defines the streaming callback interface the
// render layer drives per line, and ships a couple of reference
// collaborators. Language-specific grammars are external to the
// core, per the editor's own scope.
package syntax

import "github.com/justy989/ce/buffer"

// StyleKind names the categories a Hook can paint onto the style
// sink. Color resolution happens in the render layer, not here.
type StyleKind int

const (
	StyleNormal StyleKind = iota
	StyleKeyword
	StyleString
	StyleComment
	StyleNumber
	StyleCursorLine
	StyleSelection
)

// StyleSink receives style transitions as a Hook walks a line. A
// render layer implements this to turn StyleKind changes into actual
// terminal colors.
type StyleSink interface {
	// Push sets the style applied to subsequently emitted glyphs.
	Push(kind StyleKind)
}

// LineNumberMode controls the `:line_number` command's left gutter.
type LineNumberMode int

const (
	LineNumberNone LineNumberMode = iota
	LineNumberAbsolute
	LineNumberRelative
	LineNumberBoth
)

// HighlightLineMode controls the `:highlight_line` command's cursor
// row emphasis.
type HighlightLineMode int

const (
	HighlightLineNone HighlightLineMode = iota
	HighlightLineText
	HighlightLineEntire
)

// RenderPolicy bundles the per-view rendering options a Hook needs to
// make its styling decisions, without depending on the view package.
type RenderPolicy struct {
	LineNumber    LineNumberMode
	HighlightLine HighlightLineMode
}

// Hook is invoked four times per line during render: once per draw
// via Initializing, then BeginningOfLine, Character per column, and
// EndOfLine. State carries whatever a concrete Hook needs between
// calls; it is opaque to the caller and stored on buffer.Buffer's
// SyntaxState field between frames.
type Hook interface {
	// Initializing runs once per draw pass, before any line of this
	// buffer is visited, and returns the (possibly reset) state to
	// carry through the pass.
	Initializing(b *buffer.Buffer, state interface{}) interface{}

	// BeginningOfLine runs before the first character of a line.
	BeginningOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink)

	// Character runs once per column of the line, in order.
	Character(b *buffer.Buffer, p buffer.Point, c byte, state interface{}, policy RenderPolicy, sink StyleSink)

	// EndOfLine runs after the last character of a line.
	EndOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink)
}
