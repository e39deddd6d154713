package editor

import (
	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/modal"
)

// RunSearch evaluates pattern as a POSIX extended regex against the
// active buffer from its current cursor, in dir, moving the cursor to
// the match found and centering the active view's rows on it.
// Matching commits pattern to the `/` register and the search
// history; a failed search logs and leaves the cursor untouched, and
// an empty pattern returns false without logging, per spec.md §6/§7.
func (e *Editor) RunSearch(pattern string, dir buffer.SearchDirection) bool {
	if pattern == "" {
		return false
	}
	b := e.activeBuffer()
	if b == nil {
		return false
	}

	start, _, found := b.FindRegex(b.Cursor, pattern, dir)
	if !found {
		e.Logf("no match for %s", pattern)
		return false
	}

	e.pushJump()
	b.Cursor = b.ClampCursor(start)
	if v := e.activeView(); v != nil && v.Buffer == b {
		top := b.Cursor.Y - int64(v.Geometry.Rows/2)
		if top < 0 {
			top = 0
		}
		v.TopLine = top
	}
	if it, ok := e.Interpreter(b); ok {
		it.Registers.Set('/', pattern, modal.RegisterCharacterwise)
	}
	b.LastSearchPattern = pattern
	b.LastSearchDir = dir
	e.SearchHistory.Add(pattern)
	e.lastSearch = pattern
	return true
}
