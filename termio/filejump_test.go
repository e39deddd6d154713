package termio

import "testing"

func TestParseDestinationCompiler(t *testing.T) {
	d, ok := ParseDestination("src/main.c:42:7: error: use of undeclared identifier", "")
	if !ok {
		t.Fatal("expected match")
	}
	if d.Path != "src/main.c" || d.Line != 41 || d.Col != 6 {
		t.Fatalf("got %+v", d)
	}
}

func TestParseDestinationCompilerNoColumn(t *testing.T) {
	d, ok := ParseDestination("src/main.c:10: warning: unused variable", "")
	if !ok {
		t.Fatal("expected match")
	}
	if d.Path != "src/main.c" || d.Line != 9 || d.Col != 0 {
		t.Fatalf("got %+v", d)
	}
}

func TestParseDestinationValgrind(t *testing.T) {
	d, ok := ParseDestination("    at malloc_impl (alloc.c:88)", "")
	if !ok {
		t.Fatal("expected match")
	}
	if d.Path != "alloc.c" || d.Line != 87 {
		t.Fatalf("got %+v", d)
	}
}

func TestParseDestinationDiffHunk(t *testing.T) {
	prior, ok := DiffHeaderPath("+++ b/buffer/buffer.go")
	if !ok || prior != "buffer/buffer.go" {
		t.Fatalf("got %q %v", prior, ok)
	}
	d, ok := ParseDestination("@@ -12,6 +15,8 @@ func New()", prior)
	if !ok {
		t.Fatal("expected match")
	}
	if d.Path != "buffer/buffer.go" || d.Line != 14 {
		t.Fatalf("got %+v", d)
	}
}

func TestParseDestinationDiffHunkNoPriorPath(t *testing.T) {
	if _, ok := ParseDestination("@@ -12,6 +15,8 @@", ""); ok {
		t.Fatal("expected no match without a prior path")
	}
}

func TestParseDestinationNoMatch(t *testing.T) {
	if _, ok := ParseDestination("just some plain output", ""); ok {
		t.Fatal("expected no match")
	}
}
