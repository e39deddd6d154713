// Package view implements the recursive split-window layout tree:
// each View either holds a buffer pane or is split horizontally or
// vertically into two child Views, plus the per-view cursor, scroll
// position, and jump list.
package view

import (
	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/celog"
)

// SplitKind describes how a View's rectangle is divided between its
// two children. A leaf View (one showing a buffer) has SplitNone.
type SplitKind int

const (
	SplitNone SplitKind = iota
	SplitHorizontal
	SplitVertical
)

// Rect is a View's screen geometry in (row, col) cells.
type Rect struct {
	Row, Col          int
	Rows, Cols        int
}

// Screen is the external drawing collaborator. The view package only
// calls it; it never implements a terminal itself.
type Screen interface {
	DrawLine(viewID int, row, col int, text string)
	DrawGlyph(viewID int, row, col int, glyph rune)
	SetCursor(viewID int, row, col int)
}

// NopScreen discards every draw call; useful for tests and for
// headless operation of the editor core.
type NopScreen struct{}

func (NopScreen) DrawLine(int, int, int, string) {}
func (NopScreen) DrawGlyph(int, int, int, rune)  {}
func (NopScreen) SetCursor(int, int, int)        {}

// View is one node of the split tree. Leaf nodes show a Buffer; split
// nodes own their two children and have no buffer of their own.
type View struct {
	id int

	Split    SplitKind
	Parent   *View // non-owning back-reference; nil for the tree root
	Left     *View // top child for SplitHorizontal, left child for SplitVertical
	Right    *View

	Buffer *buffer.Buffer // nil unless Split == SplitNone
	Cursor buffer.Point
	TopLine int64 // first visible buffer line (vertical scroll offset)
	LeftCol int64 // first visible buffer column (horizontal scroll offset)

	ShowLineNumbers bool
	HighlightLine   bool

	Geometry Rect

	Jumps *JumpList
}

var nextViewID = 1

// New returns a new leaf view over b.
func New(b *buffer.Buffer) *View {
	v := &View{id: nextViewID, Buffer: b, Jumps: NewJumpList()}
	nextViewID++
	return v
}

// ID returns the view's stable identity, used as the Screen draw key.
func (v *View) ID() int { return v.id }

// IsLeaf reports whether v shows a buffer directly.
func (v *View) IsLeaf() bool { return v.Split == SplitNone }

// SplitView divides v into two children along kind, moving v's current
// buffer into the first child and b into the second. Returns false if
// v is already split.
func (v *View) SplitView(kind SplitKind, b *buffer.Buffer) bool {
	if v.Split != SplitNone {
		celog.Error("view %d is already split", v.id)
		return false
	}
	left := New(v.Buffer)
	left.Cursor = v.Cursor
	left.TopLine = v.TopLine
	left.LeftCol = v.LeftCol
	left.Parent = v

	right := New(b)
	right.Parent = v

	v.Split = kind
	v.Buffer = nil
	v.Left = left
	v.Right = right
	v.calcChildGeometry()
	return true
}

// Remove collapses v out of its parent's split, promoting v's sibling
// into the parent's place. Returns false for the tree root (which has
// no parent to collapse into).
func (v *View) Remove() bool {
	parent := v.Parent
	if parent == nil {
		return false
	}
	var sibling *View
	if parent.Left == v {
		sibling = parent.Right
	} else {
		sibling = parent.Left
	}

	grandParent := parent.Parent
	geometry := parent.Geometry
	*parent = *sibling
	parent.Parent = grandParent
	parent.Geometry = geometry
	reparentChildren(parent)
	parent.CalcViews(geometry)
	return true
}

func reparentChildren(v *View) {
	if v.Left != nil {
		v.Left.Parent = v
	}
	if v.Right != nil {
		v.Right.Parent = v
	}
}

// CalcViews assigns geometry to v and (recursively) its children given
// the rectangle available to v.
func (v *View) CalcViews(rect Rect) {
	v.Geometry = rect
	if v.IsLeaf() {
		return
	}
	v.calcChildGeometry()
}

func (v *View) calcChildGeometry() {
	switch v.Split {
	case SplitHorizontal:
		topRows := v.Geometry.Rows / 2
		v.Left.CalcViews(Rect{v.Geometry.Row, v.Geometry.Col, topRows, v.Geometry.Cols})
		v.Right.CalcViews(Rect{v.Geometry.Row + topRows, v.Geometry.Col, v.Geometry.Rows - topRows, v.Geometry.Cols})
	case SplitVertical:
		leftCols := v.Geometry.Cols / 2
		v.Left.CalcViews(Rect{v.Geometry.Row, v.Geometry.Col, v.Geometry.Rows, leftCols})
		v.Right.CalcViews(Rect{v.Geometry.Row, v.Geometry.Col + leftCols, v.Geometry.Rows, v.Geometry.Cols - leftCols})
	}
}

// LineNumberWidth returns the column width reserved for line numbers,
// 0 if disabled.
func (v *View) LineNumberWidth() int {
	if !v.ShowLineNumbers || v.Buffer == nil {
		return 0
	}
	digits := 1
	for n := v.Buffer.LineCount(); n >= 10; n /= 10 {
		digits++
	}
	if digits < 3 {
		digits = 3
	}
	return digits + 1 // one column of padding between numbers and text
}

// FollowCursor adjusts TopLine/LeftCol so Cursor stays within the
// visible rectangle.
func (v *View) FollowCursor() {
	if v.Buffer == nil {
		return
	}
	textCols := v.Geometry.Cols - v.LineNumberWidth()
	if textCols < 1 {
		textCols = 1
	}
	if v.Cursor.Y < v.TopLine {
		v.TopLine = v.Cursor.Y
	}
	if v.Cursor.Y >= v.TopLine+int64(v.Geometry.Rows) {
		v.TopLine = v.Cursor.Y - int64(v.Geometry.Rows) + 1
	}
	if v.Cursor.X < v.LeftCol {
		v.LeftCol = v.Cursor.X
	}
	if v.Cursor.X >= v.LeftCol+int64(textCols) {
		v.LeftCol = v.Cursor.X - int64(textCols) + 1
	}
}

// Draw renders every leaf view in the subtree rooted at v to sink.
func (v *View) Draw(sink Screen) {
	if !v.IsLeaf() {
		v.Left.Draw(sink)
		v.Right.Draw(sink)
		return
	}
	if v.Buffer == nil {
		return
	}
	numWidth := v.LineNumberWidth()
	for row := 0; row < v.Geometry.Rows; row++ {
		line := v.TopLine + int64(row)
		if line >= v.Buffer.LineCount() {
			break
		}
		text := v.Buffer.Line(line)
		if v.LeftCol > 0 && int64(len(text)) > v.LeftCol {
			text = text[v.LeftCol:]
		} else if v.LeftCol > 0 {
			text = ""
		}
		sink.DrawLine(v.id, v.Geometry.Row+row, v.Geometry.Col+numWidth, text)
	}
	cursorRow := int(v.Cursor.Y-v.TopLine) + v.Geometry.Row
	cursorCol := int(v.Cursor.X-v.LeftCol) + v.Geometry.Col + numWidth
	sink.SetCursor(v.id, cursorRow, cursorCol)
}

// Leaves collects every leaf view in the subtree rooted at v, in
// left-to-right / top-to-bottom order.
func (v *View) Leaves() []*View {
	if v.IsLeaf() {
		return []*View{v}
	}
	return append(v.Left.Leaves(), v.Right.Leaves()...)
}
