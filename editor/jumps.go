package editor

import "github.com/justy989/ce/view"

// activeView returns the focused leaf view of the active tab, or nil.
func (e *Editor) activeView() *view.View {
	tab := e.Tabs.Active()
	if tab == nil || tab.Active == nil {
		return nil
	}
	return tab.Active
}

// pushJump records the active view's current location before a motion
// likely to move far from it (search, goto-line, file-begin/end).
func (e *Editor) pushJump() {
	v := e.activeView()
	if v == nil || v.Buffer == nil {
		return
	}
	v.Jumps.Push(v.Buffer.Filename, v.Buffer.Cursor)
}

// jumpBack implements Ctrl-O: step further into the active view's jump
// history.
func (e *Editor) jumpBack() {
	v := e.activeView()
	if v == nil {
		return
	}
	j, ok := v.Jumps.Back()
	if !ok {
		return
	}
	e.gotoJump(v, j)
}

// jumpForward implements Ctrl-I: step back toward the present in the
// active view's jump history.
func (e *Editor) jumpForward() {
	v := e.activeView()
	if v == nil {
		return
	}
	j, ok := v.Jumps.Forward()
	if !ok {
		return
	}
	e.gotoJump(v, j)
}

// gotoJump moves to j, switching v's buffer first if j belongs to a
// different file.
func (e *Editor) gotoJump(v *view.View, j view.Jump) {
	b := v.Buffer
	if b == nil || b.Filename != j.Filename {
		opened, err := e.OpenFile(j.Filename)
		if err != nil || opened == nil {
			e.Logf("could not open %s: %v", j.Filename, err)
			return
		}
		v = e.activeView()
		if v == nil {
			return
		}
		b = v.Buffer
	}
	b.Cursor = b.ClampCursor(j.Point)
}
