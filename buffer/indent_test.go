package buffer

import "testing"

func TestGetIndentationForLineBrace(t *testing.T) {
	b := New()
	b.Type = TypeC
	b.LoadString("if (x) {\n\tfoo();\n}")
	got := b.GetIndentationForLine(1, 4)
	if got != "\t" {
		t.Fatalf("got %q", got)
	}
}

func TestGetIndentationForLineCopiesPrevious(t *testing.T) {
	b := New()
	b.Type = TypeC
	b.LoadString("\tfoo();\n\tbar();")
	got := b.GetIndentationForLine(2, 4)
	if got != "\t" {
		t.Fatalf("got %q", got)
	}
}

func TestGetIndentationForLinePython(t *testing.T) {
	b := New()
	b.Type = TypePython
	b.LoadString("def f():\n\tpass")
	got := b.GetIndentationForLine(1, 4)
	if got != "\t" {
		t.Fatalf("got %q", got)
	}
}

func TestGetIndentationForLineTopLevel(t *testing.T) {
	b := New()
	b.Type = TypeC
	b.LoadString("int main() {")
	got := b.GetIndentationForLine(1, 4)
	if got != "\t" {
		t.Fatalf("got %q", got)
	}
}
