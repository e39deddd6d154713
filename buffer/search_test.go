package buffer

import "testing"

func TestFindRegexForward(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar foo\nbaz")
	start, end, ok := b.FindRegex(Point{0, 0}, "foo", SearchForward)
	if !ok {
		t.Fatal("expected a match")
	}
	if start != (Point{0, 0}) || end != (Point{3, 0}) {
		t.Fatalf("got start=%v end=%v", start, end)
	}
}

func TestFindRegexForwardSkipsCursor(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar foo\nbaz")
	start, _, ok := b.FindRegex(Point{1, 0}, "foo", SearchForward)
	if !ok {
		t.Fatal("expected a match")
	}
	if start != (Point{4, 1}) {
		t.Fatalf("expected the second occurrence, got %v", start)
	}
}

func TestFindRegexBackward(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar foo\nbaz")
	start, _, ok := b.FindRegex(Point{0, 2}, "foo", SearchBackward)
	if !ok {
		t.Fatal("expected a match")
	}
	if start != (Point{4, 1}) {
		t.Fatalf("expected the match just before cursor, got %v", start)
	}
}

func TestFindRegexBackwardWraps(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar foo\nbaz")
	start, _, ok := b.FindRegex(Point{0, 0}, "foo", SearchBackward)
	if !ok {
		t.Fatal("expected a match")
	}
	if start != (Point{4, 1}) {
		t.Fatalf("expected wrap to last match in buffer, got %v", start)
	}
}

func TestFindRegexNoMatch(t *testing.T) {
	b := New()
	b.LoadString("foo")
	_, _, ok := b.FindRegex(Point{0, 0}, "zzz", SearchForward)
	if ok {
		t.Fatal("expected no match")
	}
}
