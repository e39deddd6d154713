package buffer

import "testing"

func TestCommitUndoRedoInsert(t *testing.T) {
	b := New()
	b.LoadString("ac")
	cl := NewCommitLog()

	b.InsertChar(Point{1, 0}, 'b')
	cl.Commit(Commit{Kind: CommitInsert, Start: Point{1, 0}, InsertedString: "b", Cursor: Point{1, 0}})

	if got := b.Line(0); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if !cl.CanUndo() {
		t.Fatal("expected CanUndo")
	}
	if !cl.Undo(b) {
		t.Fatal("Undo failed")
	}
	if got := b.Line(0); got != "ac" {
		t.Fatalf("after undo got %q", got)
	}
	if !cl.CanRedo() {
		t.Fatal("expected CanRedo")
	}
	if !cl.Redo(b) {
		t.Fatal("Redo failed")
	}
	if got := b.Line(0); got != "abc" {
		t.Fatalf("after redo got %q", got)
	}
}

func TestCommitUndoRedoRemove(t *testing.T) {
	b := New()
	b.LoadString("abc")
	cl := NewCommitLog()

	removed := b.DupeString(Point{1, 0}, Point{1, 0})
	b.RemoveString(Point{1, 0}, 1)
	cl.Commit(Commit{Kind: CommitRemove, Start: Point{1, 0}, RemovedString: removed, Cursor: Point{1, 0}})

	if got := b.Line(0); got != "ac" {
		t.Fatalf("got %q", got)
	}
	cl.Undo(b)
	if got := b.Line(0); got != "abc" {
		t.Fatalf("after undo got %q", got)
	}
}

func TestCommitChainUndoesTogether(t *testing.T) {
	b := New()
	b.LoadString("a")
	cl := NewCommitLog()

	b.InsertChar(Point{1, 0}, 'b')
	cl.Commit(Commit{Kind: CommitInsert, Start: Point{1, 0}, InsertedString: "b", Cursor: Point{1, 0}})

	b.InsertChar(Point{2, 0}, 'c')
	cl.Commit(Commit{Kind: CommitInsert, Start: Point{2, 0}, InsertedString: "c", Cursor: Point{2, 0}, Chain: true})

	if got := b.Line(0); got != "abc" {
		t.Fatalf("got %q", got)
	}

	if !cl.Undo(b) {
		t.Fatal("Undo failed")
	}
	if got := b.Line(0); got != "a" {
		t.Fatalf("chained undo should revert both edits, got %q", got)
	}
	if cl.CanUndo() {
		t.Fatal("expected no more history after chained undo")
	}
}

func TestUndoRedoEmptyLog(t *testing.T) {
	b := New()
	b.LoadString("a")
	cl := NewCommitLog()
	if cl.Undo(b) {
		t.Fatal("Undo on empty log should fail")
	}
	if cl.Redo(b) {
		t.Fatal("Redo on empty log should fail")
	}
}

func TestCommitAfterUndoDiscardsRedo(t *testing.T) {
	b := New()
	b.LoadString("a")
	cl := NewCommitLog()

	b.InsertChar(Point{1, 0}, 'b')
	cl.Commit(Commit{Kind: CommitInsert, Start: Point{1, 0}, InsertedString: "b", Cursor: Point{1, 0}})
	cl.Undo(b)

	b.InsertChar(Point{1, 0}, 'x')
	cl.Commit(Commit{Kind: CommitInsert, Start: Point{1, 0}, InsertedString: "x", Cursor: Point{1, 0}})

	if cl.CanRedo() {
		t.Fatal("a fresh commit after undo should discard the old redo tail")
	}
	if got := b.Line(0); got != "ax" {
		t.Fatalf("got %q", got)
	}
}
