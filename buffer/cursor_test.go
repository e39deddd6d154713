package buffer

import "testing"

func TestAdvanceCursor(t *testing.T) {
	b := New()
	b.LoadString("ab\nc")
	p, ok := b.AdvanceCursor(Point{0, 0})
	if !ok || p != (Point{1, 0}) {
		t.Fatalf("got %v %v", p, ok)
	}
	p, ok = b.AdvanceCursor(Point{2, 0})
	if !ok || p != (Point{0, 1}) {
		t.Fatalf("expected wrap to next line, got %v %v", p, ok)
	}
	_, ok = b.AdvanceCursor(Point{1, 1})
	if ok {
		t.Fatal("expected end of file to fail")
	}
}

func TestRetreatCursor(t *testing.T) {
	b := New()
	b.LoadString("ab\nc")
	p, ok := b.RetreatCursor(Point{0, 1})
	if !ok || p != (Point{2, 0}) {
		t.Fatalf("expected wrap to prev line end, got %v %v", p, ok)
	}
	_, ok = b.RetreatCursor(Point{0, 0})
	if ok {
		t.Fatal("expected beginning of file to fail")
	}
}

func TestClampCursor(t *testing.T) {
	b := New()
	b.LoadString("abc\nde")
	p := b.ClampCursor(Point{99, 0})
	if p != (Point{3, 0}) {
		t.Fatalf("got %v", p)
	}
	p = b.ClampCursor(Point{0, 99})
	if p != (Point{0, 1}) {
		t.Fatalf("got %v", p)
	}
}

func TestSoftBeginningOfLine(t *testing.T) {
	b := New()
	b.LoadString("   hello")
	p := b.SoftBeginningOfLine(0)
	if p != (Point{3, 0}) {
		t.Fatalf("got %v", p)
	}
}

func TestMoveCursorToBeginningAndEndOfWord(t *testing.T) {
	b := New()
	b.LoadString("foo bar baz")
	start := b.MoveCursorToBeginningOfWord(Point{5, 0}, false)
	if start != (Point{4, 0}) {
		t.Fatalf("beginning: got %v", start)
	}
	end := b.MoveCursorToEndOfWord(Point{5, 0}, false)
	if end != (Point{6, 0}) {
		t.Fatalf("end: got %v", end)
	}
}

func TestToNextWord(t *testing.T) {
	b := New()
	b.LoadString("foo bar")
	p, ok := b.ToNextWord(Point{0, 0}, false)
	if !ok || p != (Point{4, 0}) {
		t.Fatalf("got %v %v", p, ok)
	}
}
