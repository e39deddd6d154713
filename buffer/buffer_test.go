package buffer

import "testing"

func TestAllocLines(t *testing.T) {
	b := New()
	if !b.AllocLines(3) {
		t.Fatal("AllocLines(3) failed")
	}
	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	if b.AllocLines(0) {
		t.Fatal("AllocLines(0) should fail")
	}
}

func TestLoadString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "hello\nworld", []string{"hello", "world"}},
		{"trailing newline", "hello\n", []string{"hello", ""}},
		{"empty", "", []string{""}},
		{"three lines", "a\nb\nc", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			if !b.LoadString(tt.input) {
				t.Fatal("LoadString failed")
			}
			got := b.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %d lines %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInsertChar(t *testing.T) {
	b := New()
	b.LoadString("ac")
	if !b.InsertChar(Point{1, 0}, 'b') {
		t.Fatal("InsertChar failed")
	}
	if got := b.Line(0); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestInsertCharNewlineSplits(t *testing.T) {
	b := New()
	b.LoadString("abcdef")
	if !b.InsertChar(Point{3, 0}, '\n') {
		t.Fatal("InsertChar failed")
	}
	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "abc" || lines[1] != "def" {
		t.Fatalf("got %v", lines)
	}
}

func TestInsertCharReadonlyRejectsMutable(t *testing.T) {
	b := New()
	b.LoadString("a")
	if b.InsertCharReadonly(Point{0, 0}, 'x') {
		t.Fatal("InsertCharReadonly should fail on a mutable buffer")
	}
}

func TestRemoveLine(t *testing.T) {
	b := New()
	b.LoadString("a\nb\nc")
	if !b.RemoveLine(1) {
		t.Fatal("RemoveLine failed")
	}
	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "c" {
		t.Fatalf("got %v", lines)
	}
	if b.RemoveLine(5) {
		t.Fatal("RemoveLine out of range should fail")
	}
}

func TestJoinLine(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar")
	if !b.JoinLine(0) {
		t.Fatal("JoinLine failed")
	}
	lines := b.Lines()
	if len(lines) != 1 || lines[0] != "foobar" {
		t.Fatalf("got %v", lines)
	}
}

func TestRemoveCharEndOfLineJoins(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar")
	if !b.RemoveChar(Point{3, 0}) {
		t.Fatal("RemoveChar failed")
	}
	lines := b.Lines()
	if len(lines) != 1 || lines[0] != "foobar" {
		t.Fatalf("got %v", lines)
	}
}

func TestRemoveCharEmptyLineRemovesLine(t *testing.T) {
	b := New()
	b.LoadString("a\n\nb")
	if !b.RemoveChar(Point{0, 1}) {
		t.Fatal("RemoveChar failed")
	}
	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("got %v", lines)
	}
}

func TestInsertString(t *testing.T) {
	b := New()
	b.LoadString("ac")
	if !b.InsertString(Point{1, 0}, "XYZ\nQR") {
		t.Fatal("InsertString failed")
	}
	lines := b.Lines()
	if len(lines) != 2 || lines[0] != "aXYZ" || lines[1] != "QRc" {
		t.Fatalf("got %v", lines)
	}
}

func TestRemoveStringSameLine(t *testing.T) {
	b := New()
	b.LoadString("abcdef")
	if !b.RemoveString(Point{1, 0}, 3) {
		t.Fatal("RemoveString failed")
	}
	if got := b.Line(0); got != "aef" {
		t.Fatalf("got %q", got)
	}
}

func TestRemoveStringAcrossLines(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar\nbaz")
	// remove "o\nbar\nb" starting at (2,0) which should leave "fo" + "az"
	if !b.RemoveString(Point{2, 0}, 7) {
		t.Fatal("RemoveString failed")
	}
	lines := b.Lines()
	if len(lines) != 1 || lines[0] != "foaz" {
		t.Fatalf("got %v", lines)
	}
}

func TestSetChar(t *testing.T) {
	b := New()
	b.LoadString("abc")
	if !b.SetChar(Point{1, 0}, 'X') {
		t.Fatal("SetChar failed")
	}
	if got := b.Line(0); got != "aXc" {
		t.Fatalf("got %q", got)
	}
	if b.SetChar(Point{3, 0}, 'X') {
		t.Fatal("SetChar at end-of-line should fail")
	}
}

func TestPointOnBuffer(t *testing.T) {
	b := New()
	b.LoadString("abc\nde")
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{3, 0}, true},
		{Point{4, 0}, false},
		{Point{2, 1}, true},
		{Point{3, 1}, false},
		{Point{0, 2}, false},
	}
	for _, c := range cases {
		if got := b.PointOnBuffer(c.p); got != c.want {
			t.Errorf("PointOnBuffer(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestGetChar(t *testing.T) {
	b := New()
	b.LoadString("ab")
	c, ok := b.GetChar(Point{0, 0})
	if !ok || c != 'a' {
		t.Fatalf("got %q %v", c, ok)
	}
	c, ok = b.GetChar(Point{2, 0})
	if !ok || c != '\n' {
		t.Fatalf("end of line should report newline, got %q %v", c, ok)
	}
	_, ok = b.GetChar(Point{3, 0})
	if ok {
		t.Fatal("expected out of range")
	}
}

func TestComputeLengthAndDupeString(t *testing.T) {
	b := New()
	b.LoadString("foo\nbar\nbaz")
	length := b.ComputeLength(Point{1, 0}, Point{1, 2})
	want := int64(len("oo\nbar\nba"))
	if length != want {
		t.Fatalf("ComputeLength = %d, want %d", length, want)
	}
	s := b.DupeString(Point{1, 0}, Point{1, 2})
	if s != "oo\nbar\nba" {
		t.Fatalf("DupeString = %q", s)
	}
}

func TestDupeLineAndLines(t *testing.T) {
	b := New()
	b.LoadString("a\nb\nc")
	s, ok := b.DupeLine(1)
	if !ok || s != "b\n" {
		t.Fatalf("DupeLine = %q, %v", s, ok)
	}
	s, ok = b.DupeLines(0, 2)
	if !ok || s != "a\nb\nc\n" {
		t.Fatalf("DupeLines = %q, %v", s, ok)
	}
}

func TestOnChangeCallback(t *testing.T) {
	b := New()
	var last Point
	calls := 0
	b.OnChange(func(p Point) {
		calls++
		last = p
	})
	b.LoadString("a")
	b.InsertChar(Point{1, 0}, 'b')
	if calls == 0 {
		t.Fatal("expected OnChange to fire")
	}
	if last != (Point{1, 0}) {
		t.Fatalf("last callback point = %v", last)
	}
}
