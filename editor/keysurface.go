package editor

import (
	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/modal"
	"github.com/justy989/ce/view"
)

// HandleKey dispatches one keystroke. Named editor-level bindings
// (split/close/tab/navigate/terminal/jump commands) are intercepted
// here; anything else falls through to the active view's buffer's
// modal interpreter. The `g` prefix is shared between the editor's
// own "gt"/"gT" tab-switch bindings and the interpreter's "gg"
// motion, so it is buffered here for one keystroke before either is
// decided.
func (e *Editor) HandleKey(kp modal.KeyPress) {
	if e.pendingG {
		e.pendingG = false
		switch kp.Key {
		case 't':
			e.nextTab()
			return
		case 'T':
			e.prevTab()
			return
		default:
			if kp.Key == 'g' {
				e.pushJump()
			}
			e.forwardToInterpreter(modal.KeyPress{Key: 'g'})
			e.forwardToInterpreter(kp)
			return
		}
	}

	if kp.IsCharacter() && kp.Key == 'g' && e.inNormalMode() {
		e.pendingG = true
		return
	}

	if kp.Key == 'G' && e.inNormalMode() {
		e.pushJump()
	}

	if e.handleEditorKey(kp) {
		return
	}
	e.forwardToInterpreter(kp)
}

func (e *Editor) inNormalMode() bool {
	b := e.activeBuffer()
	if b == nil {
		return false
	}
	it, ok := e.Interpreter(b)
	return ok && it.State == modal.StateNormal
}

func (e *Editor) forwardToInterpreter(kp modal.KeyPress) {
	b := e.activeBuffer()
	if b == nil {
		return
	}
	it, ok := e.Interpreter(b)
	if !ok {
		return
	}
	it.HandleKey(kp)
}

func (e *Editor) handleEditorKey(kp modal.KeyPress) bool {
	if kp.Ctrl {
		switch kp.Key {
		case 's':
			e.splitActive(view.SplitHorizontal)
			return true
		case 'v':
			e.splitActive(view.SplitVertical)
			return true
		case 'q':
			e.closeActiveView()
			return true
		case 't':
			e.newTab()
			return true
		case 'h':
			e.moveFocus(-1, 0)
			return true
		case 'j':
			e.moveFocus(0, 1)
			return true
		case 'k':
			e.moveFocus(0, -1)
			return true
		case 'l':
			e.moveFocus(1, 0)
			return true
		case 'a':
			_, _ = e.AttachTerminal(80, 24)
			return true
		case 'x':
			e.focusLastTerminal()
			return true
		case 'n':
			e.jumpToDestination(1)
			return true
		case 'p':
			e.jumpToDestination(-1)
			return true
		case 'o':
			e.jumpBack()
			return true
		case 'i':
			e.jumpForward()
			return true
		case 'f':
			return true // load-file prompt: UI-layer concern, no-op at this layer
		case 'b':
			return true // switch-buffer prompt: UI-layer concern, no-op at this layer
		}
	}

	switch kp.Key {
	case modal.KeyF5:
		e.reloadConfig()
		return true
	}

	return false
}

func (e *Editor) splitActive(kind view.SplitKind) {
	tab := e.Tabs.Active()
	if tab == nil || tab.Active == nil {
		return
	}
	b := tab.Active.Buffer
	tab.Active.SplitView(kind, b)
	tab.Resize(tab.Geometry)
}

func (e *Editor) closeActiveView() {
	tab := e.Tabs.Active()
	if tab == nil {
		return
	}
	if !tab.CloseActive() {
		e.Tabs.Remove(e.Tabs.ActiveIndex())
	}
}

func (e *Editor) newTab() {
	b := e.activeBuffer()
	root := view.New(b)
	tab := view.NewTab(root, view.Rect{Rows: 24, Cols: 80})
	e.Tabs.Insert(tab)
}

func (e *Editor) nextTab() { e.Tabs.Next() }
func (e *Editor) prevTab() { e.Tabs.Prev() }

// moveFocus steps the active view in direction (dx, dy) by walking
// the leaf order; since View has no explicit 2-D adjacency, the
// nearest approximation available from the split tree's left-to-right
// leaf ordering is used (dx/dy>0 moves forward, <0 moves back).
func (e *Editor) moveFocus(dx, dy int) {
	tab := e.Tabs.Active()
	if tab == nil {
		return
	}
	if dx > 0 || dy > 0 {
		tab.NextView()
	} else {
		tab.PrevView()
	}
}

func (e *Editor) focusLastTerminal() {
	for i := len(e.Buffers) - 1; i >= 0; i-- {
		if _, ok := e.terminals[e.Buffers[i]]; ok {
			e.focusBuffer(e.Buffers[i])
			return
		}
	}
}

func (e *Editor) jumpToDestination(step int) {
	if len(e.lastDestination) == 0 {
		return
	}
	e.destIndex += step
	if e.destIndex < 0 {
		e.destIndex = 0
	}
	if e.destIndex >= len(e.lastDestination) {
		e.destIndex = len(e.lastDestination) - 1
	}
	dest := e.lastDestination[e.destIndex]
	b, err := e.OpenFile(dest.Path)
	if err != nil || b == nil {
		e.Logf("could not open %s: %v", dest.Path, err)
		return
	}
	y := int64(dest.Line)
	if y < 0 {
		y = 0
	}
	if y >= b.LineCount() {
		y = b.LineCount() - 1
	}
	b.Cursor = b.ClampCursor(buffer.Point{X: int64(dest.Col), Y: y})
}

func (e *Editor) reloadConfig() {
	e.Logf("reloaded configuration")
}
