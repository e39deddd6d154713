package editor

import (
	"testing"

	"github.com/justy989/ce/buffer"
)

func newTestEditor() *Editor {
	return New(Config{})
}

func TestNewScratchBufferFocusesIt(t *testing.T) {
	e := newTestEditor()
	b := e.NewScratchBuffer("[No Name]")

	if e.activeBuffer() != b {
		t.Fatalf("expected scratch buffer to become active")
	}
	if _, ok := e.Interpreter(b); !ok {
		t.Fatalf("expected an interpreter bound to the new buffer")
	}
	if _, ok := e.CommitLog(b); !ok {
		t.Fatalf("expected a commit log bound to the new buffer")
	}
}

func TestOpenFileReusesAlreadyOpenBuffer(t *testing.T) {
	e := newTestEditor()
	b1 := buffer.New()
	b1.Filename = "a.txt"
	e.AddBuffer(b1)

	b2, err := e.OpenFile("a.txt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if b2 != b1 {
		t.Fatalf("expected OpenFile to reuse the already-open buffer")
	}
	if len(e.Buffers) != 1 {
		t.Fatalf("expected no duplicate buffer, got %d buffers", len(e.Buffers))
	}
}

func TestOpenFileMissingMarksNewFile(t *testing.T) {
	e := newTestEditor()
	b, err := e.OpenFile("/nonexistent/path/does-not-exist.txt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if b.Status != buffer.StatusNewFile {
		t.Fatalf("expected StatusNewFile for a missing path, got %v", b.Status)
	}
}

func TestTypeForFilename(t *testing.T) {
	cases := map[string]buffer.Type{
		"main.c":     buffer.TypeC,
		"main.cpp":   buffer.TypeCpp,
		"script.py":  buffer.TypePython,
		"App.java":   buffer.TypeJava,
		"build.sh":   buffer.TypeBash,
		"patch.diff": buffer.TypeDiff,
		"cfg.yaml":   buffer.TypeConfig,
		"README":     buffer.TypePlain,
	}
	for name, want := range cases {
		if got := typeForFilename(name); got != want {
			t.Errorf("typeForFilename(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLogfAppendsToMessageBuffer(t *testing.T) {
	e := newTestEditor()
	before := e.Message.LineCount()
	e.Logf("hello %s", "world")
	if e.Message.LineCount() != before+1 {
		t.Fatalf("expected message buffer to grow by one line")
	}
	if got := e.Message.Line(e.Message.LineCount() - 1); got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestAttachTerminalRegistersBufferAndTerminal(t *testing.T) {
	e := newTestEditor()
	e.Config.Shell = "/bin/sh"
	b, err := e.AttachTerminal(80, 24)
	if err != nil {
		t.Skipf("pty unavailable in this environment: %s", err)
	}
	defer e.Close()

	if b.Type != buffer.TypeTerminal {
		t.Fatalf("expected TypeTerminal, got %v", b.Type)
	}
	if _, ok := e.Terminal(b); !ok {
		t.Fatalf("expected a registered terminal for the buffer")
	}
}

func TestSetPolicyAndPolicyRoundTrip(t *testing.T) {
	e := newTestEditor()
	p := e.Policy(7)
	if p.LineNumber != 0 || p.HighlightLine != 0 {
		t.Fatalf("expected zero-value policy for an unconfigured view")
	}
	e.SetPolicy(7, p)
	if got := e.Policy(7); got != p {
		t.Fatalf("expected round-tripped policy to match")
	}
}
