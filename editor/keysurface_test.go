package editor

import (
	"testing"

	"github.com/justy989/ce/modal"
)

func ctrlKey(r rune) modal.KeyPress { return modal.KeyPress{Key: r, Ctrl: true} }
func charKey(r rune) modal.KeyPress { return modal.KeyPress{Key: r} }

func TestHandleKeySplitHorizontal(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)

	before := e.Tabs.Active().Root.Leaves()
	e.HandleKey(ctrlKey('s'))
	after := e.Tabs.Active().Root.Leaves()

	if len(after) != len(before)+1 {
		t.Fatalf("expected one additional leaf view after a split, got %d -> %d", len(before), len(after))
	}
}

func TestHandleKeyNewTabAndSwitch(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)

	e.HandleKey(ctrlKey('t'))
	if e.Tabs.Len() != 2 {
		t.Fatalf("expected two tabs after Ctrl-T, got %d", e.Tabs.Len())
	}
	firstActive := e.Tabs.ActiveIndex()

	// gt should move forward one tab.
	e.HandleKey(charKey('g'))
	e.HandleKey(charKey('t'))
	if e.Tabs.ActiveIndex() == firstActive {
		t.Fatalf("expected gt to switch tabs")
	}

	// gT should move back.
	e.HandleKey(charKey('g'))
	e.HandleKey(charKey('T'))
	if e.Tabs.ActiveIndex() != firstActive {
		t.Fatalf("expected gT to switch back to the original tab")
	}
}

func TestHandleKeyBareGOtherThanTabReplaysIntoInterpreter(t *testing.T) {
	b := bufferWithLines([]string{"hello", "world"})
	e := newEditorFocusedOn(b)
	b.Cursor.Y = 1

	// "gg" is the interpreter's go-to-first-line motion; it must still
	// work even though editor.HandleKey buffers the leading 'g'.
	e.HandleKey(charKey('g'))
	e.HandleKey(charKey('g'))

	if b.Cursor.Y != 0 {
		t.Fatalf("expected gg to move the cursor to line 0, got %d", b.Cursor.Y)
	}
}

func TestHandleKeyCloseView(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)
	e.HandleKey(ctrlKey('s'))

	tab := e.Tabs.Active()
	leavesBefore := len(tab.Root.Leaves())

	e.HandleKey(ctrlKey('q'))
	if len(e.Tabs.Active().Root.Leaves()) != leavesBefore-1 {
		t.Fatalf("expected Ctrl-Q to close one view")
	}
}

func TestHandleKeyMoveFocusCyclesViews(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)
	e.HandleKey(ctrlKey('s'))

	tab := e.Tabs.Active()
	first := tab.Active
	e.HandleKey(ctrlKey('l'))
	if tab.Active == first {
		t.Fatalf("expected Ctrl-L to move focus to the other view")
	}
}

func TestHandleKeyF5ReloadsConfig(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)
	before := e.Message.LineCount()

	e.HandleKey(modal.KeyPress{Key: modal.KeyF5})
	if e.Message.LineCount() <= before {
		t.Fatalf("expected F5 to log a reload message")
	}
}

func TestJumpToDestinationNoneIsNoop(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)
	e.jumpToDestination(1)
	if e.activeBuffer() != b {
		t.Fatalf("expected jumpToDestination to be a no-op with no destinations recorded")
	}
}

func TestFocusLastTerminalNoneIsNoop(t *testing.T) {
	b := bufferWithLines([]string{"a"})
	e := newEditorFocusedOn(b)
	e.focusLastTerminal()
	if e.activeBuffer() != b {
		t.Fatalf("expected focusLastTerminal to be a no-op with no terminals attached")
	}
}
