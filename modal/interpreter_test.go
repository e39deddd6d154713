package modal

import (
	"testing"

	"github.com/justy989/ce/buffer"
)

func newInterp(s string) *Interpreter {
	b := buffer.New()
	b.LoadString(s)
	return New(b, buffer.NewCommitLog())
}

func key(r rune) KeyPress { return KeyPress{Key: r} }

func TestInsertMode(t *testing.T) {
	it := newInterp("ac")
	it.Buffer.Cursor = buffer.Point{1, 0}
	it.HandleKey(key('i'))
	it.HandleKey(key('b'))
	it.HandleKey(KeyPress{Key: KeyEscape})
	if got := it.Buffer.Line(0); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if it.State != StateNormal {
		t.Fatalf("expected normal mode after escape")
	}
}

func TestDeleteWordOperator(t *testing.T) {
	it := newInterp("foo bar")
	it.HandleKey(key('d'))
	it.HandleKey(key('w'))
	if got := it.Buffer.Line(0); got != "bar" {
		t.Fatalf("got %q", got)
	}
	reg, ok := it.Registers.Get(registerUnnamed)
	if !ok || reg.Text != "foo " {
		t.Fatalf("register = %q %v", reg.Text, ok)
	}
}

func TestDeleteDD(t *testing.T) {
	it := newInterp("a\nb\nc")
	it.Buffer.Cursor = buffer.Point{0, 1}
	it.HandleKey(key('d'))
	it.HandleKey(key('d'))
	lines := it.Buffer.Lines()
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "c" {
		t.Fatalf("got %v", lines)
	}
}

func TestYankAndPaste(t *testing.T) {
	it := newInterp("foo bar")
	it.HandleKey(key('y'))
	it.HandleKey(key('w'))
	if got := it.Buffer.Line(0); got != "foo bar" {
		t.Fatalf("yank should not modify buffer, got %q", got)
	}
	it.Buffer.Cursor = buffer.Point{6, 0}
	it.HandleKey(key('p'))
	if got := it.Buffer.Line(0); got != "foo barfoo " {
		t.Fatalf("got %q", got)
	}
}

func TestDeleteCharX(t *testing.T) {
	it := newInterp("abc")
	it.HandleKey(key('x'))
	if got := it.Buffer.Line(0); got != "bc" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceChar(t *testing.T) {
	it := newInterp("abc")
	it.HandleKey(key('r'))
	it.HandleKey(key('X'))
	if got := it.Buffer.Line(0); got != "Xbc" {
		t.Fatalf("got %q", got)
	}
}

func TestUndoRedoThroughInterpreter(t *testing.T) {
	it := newInterp("abc")
	it.HandleKey(key('x'))
	if got := it.Buffer.Line(0); got != "bc" {
		t.Fatalf("got %q", got)
	}
	it.HandleKey(key('u'))
	if got := it.Buffer.Line(0); got != "abc" {
		t.Fatalf("after undo got %q", got)
	}
}

func TestMarksSetAndJump(t *testing.T) {
	it := newInterp("a\nb\nc")
	it.Buffer.Cursor = buffer.Point{0, 2}
	it.HandleKey(key('m'))
	it.HandleKey(key('a'))
	it.Buffer.Cursor = buffer.Point{0, 0}
	it.HandleKey(key('`'))
	it.HandleKey(key('a'))
	if it.Buffer.Cursor != (buffer.Point{0, 2}) {
		t.Fatalf("got %v", it.Buffer.Cursor)
	}
}

func TestMacroRecordAndPlay(t *testing.T) {
	it := newInterp("a\na\na")
	it.HandleKey(key('q'))
	it.HandleKey(key('a'))
	it.HandleKey(key('x'))
	it.HandleKey(KeyPress{Key: KeyEscape})
	it.HandleKey(key('q'))

	it.Buffer.Cursor = buffer.Point{0, 1}
	it.HandleKey(key('@'))
	it.HandleKey(key('a'))

	lines := it.Buffer.Lines()
	if lines[0] != "" || lines[1] != "" {
		t.Fatalf("got %v", lines)
	}
}

func TestVisualDelete(t *testing.T) {
	it := newInterp("abcdef")
	it.Buffer.Cursor = buffer.Point{1, 0}
	it.HandleKey(key('v'))
	it.Buffer.Cursor = buffer.Point{3, 0}
	it.HandleKey(key('d'))
	if got := it.Buffer.Line(0); got != "aef" {
		t.Fatalf("got %q", got)
	}
}

func TestCountedMotion(t *testing.T) {
	it := newInterp("abcdef")
	it.HandleKey(key('3'))
	it.HandleKey(key('l'))
	if it.Buffer.Cursor != (buffer.Point{3, 0}) {
		t.Fatalf("got %v", it.Buffer.Cursor)
	}
}
