package editor

import (
	"testing"

	"github.com/justy989/ce/buffer"
)

func TestRunSearchMovesCursorAndRecordsHistory(t *testing.T) {
	b := bufferWithLines([]string{"abc", "def abc"})
	e := newEditorFocusedOn(b)
	b.Cursor = buffer.Point{X: 1, Y: 1}

	if !e.RunSearch("abc", buffer.SearchForward) {
		t.Fatalf("expected a match")
	}
	if b.Cursor.Y != 1 || b.Cursor.X != 4 {
		t.Fatalf("expected cursor at (4,1), got (%d,%d)", b.Cursor.X, b.Cursor.Y)
	}
	if e.LastSearch() != "abc" {
		t.Fatalf("expected last search to be recorded, got %q", e.LastSearch())
	}
	if e.SearchHistory.Len() != 1 {
		t.Fatalf("expected the search to be recorded in history")
	}
}

func TestRunSearchUpwardFindsEarlierMatch(t *testing.T) {
	b := bufferWithLines([]string{"abc", "def abc"})
	e := newEditorFocusedOn(b)
	b.Cursor = buffer.Point{X: 4, Y: 1}

	if !e.RunSearch("abc", buffer.SearchBackward) {
		t.Fatalf("expected a match")
	}
	if b.Cursor.Y != 0 || b.Cursor.X != 0 {
		t.Fatalf("expected cursor at (0,0), got (%d,%d)", b.Cursor.X, b.Cursor.Y)
	}
}

func TestRunSearchNoMatchLeavesCursor(t *testing.T) {
	b := bufferWithLines([]string{"abc"})
	e := newEditorFocusedOn(b)
	b.Cursor = buffer.Point{X: 1, Y: 0}

	if e.RunSearch("zzz", buffer.SearchForward) {
		t.Fatalf("expected no match")
	}
	if b.Cursor.X != 1 || b.Cursor.Y != 0 {
		t.Fatalf("expected cursor to stay put, got (%d,%d)", b.Cursor.X, b.Cursor.Y)
	}
}

func TestRunSearchEmptyPatternIsNoop(t *testing.T) {
	b := bufferWithLines([]string{"abc"})
	e := newEditorFocusedOn(b)

	if e.RunSearch("", buffer.SearchForward) {
		t.Fatalf("expected an empty pattern to report no match")
	}
}
