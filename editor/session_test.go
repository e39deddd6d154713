package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/justy989/ce/buffer"
)

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	e := newTestEditor()
	b := buffer.New()
	b.Filename = "foo.txt"
	b.AppendLine("one")
	b.AppendLine("two")
	b.AppendLine("three")
	b.Cursor = buffer.Point{X: 0, Y: 2}
	e.AddBuffer(b)

	e.SaveSession("needle")

	state := LoadSession()
	if state.LastSearch != "needle" {
		t.Fatalf("expected last search %q, got %q", "needle", state.LastSearch)
	}
	if y, ok := state.CursorLines["foo.txt"]; !ok || y != 2 {
		t.Fatalf("expected cursor line 2 for foo.txt, got %d (%v)", y, ok)
	}
}

func TestSessionApplyRestoresCursorSoftAligned(t *testing.T) {
	e := newTestEditor()
	b := buffer.New()
	b.Filename = "bar.txt"
	b.AppendLine("  indented")
	b.AppendLine("second")
	e.AddBuffer(b)

	state := SessionState{CursorLines: map[string]int64{"bar.txt": 0}}
	e.ApplySession(state)

	if b.Cursor.Y != 0 {
		t.Fatalf("expected cursor row 0, got %d", b.Cursor.Y)
	}
	if b.Cursor.X != 2 {
		t.Fatalf("expected cursor soft-aligned to first non-blank column, got %d", b.Cursor.X)
	}
}

func TestSessionApplyIgnoresOutOfRangeLine(t *testing.T) {
	e := newTestEditor()
	b := buffer.New()
	b.Filename = "baz.txt"
	b.AppendLine("only")
	e.AddBuffer(b)

	state := SessionState{CursorLines: map[string]int64{"baz.txt": 50}}
	e.ApplySession(state)

	if b.Cursor.Y != 0 {
		t.Fatalf("expected out-of-range cursor line to be ignored, got %d", b.Cursor.Y)
	}
}

func TestLoadSessionMissingFileIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	state := LoadSession()
	if state.LastSearch != "" || len(state.CursorLines) != 0 {
		t.Fatalf("expected an empty state for a missing session file")
	}
}

func TestLoadSessionMalformedSectionStopsCleanly(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	contents := "0\nfoo.txt notanumber\n"
	if err := os.WriteFile(filepath.Join(home, sessionFileName), []byte(contents), 0644); err != nil {
		t.Fatalf("could not write fixture: %s", err)
	}

	state := LoadSession()
	if len(state.CursorLines) != 0 {
		t.Fatalf("expected the malformed cursor line to be skipped")
	}
}

func TestSaveMessagesWritesMessageBuffer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	e := newTestEditor()
	e.Logf("first")
	e.Logf("second")

	e.SaveMessages()

	data, err := os.ReadFile(filepath.Join(home, messagesFileName))
	if err != nil {
		t.Fatalf("expected messages file to be written: %s", err)
	}
	got := string(data)
	if got != "first\nsecond\n" {
		t.Fatalf("got %q", got)
	}
}
