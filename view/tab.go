package view

import "github.com/justy989/ce/celog"

// Tab owns one independent split-view tree and tracks which of its
// leaf views currently has input focus.
type Tab struct {
	Root   *View
	Active *View

	Geometry Rect
}

// NewTab returns a tab whose view tree is rooted at root, laid out to
// occupy rect, with root focused.
func NewTab(root *View, rect Rect) *Tab {
	root.CalcViews(rect)
	return &Tab{Root: root, Active: root, Geometry: rect}
}

// NextView focuses the leaf view after the currently active one,
// wrapping around to the first.
func (t *Tab) NextView() {
	leaves := t.Root.Leaves()
	if len(leaves) == 0 {
		return
	}
	for i, v := range leaves {
		if v == t.Active {
			t.Active = leaves[(i+1)%len(leaves)]
			return
		}
	}
	t.Active = leaves[0]
}

// PrevView focuses the leaf view before the currently active one,
// wrapping around to the last.
func (t *Tab) PrevView() {
	leaves := t.Root.Leaves()
	if len(leaves) == 0 {
		return
	}
	for i, v := range leaves {
		if v == t.Active {
			t.Active = leaves[(i-1+len(leaves))%len(leaves)]
			return
		}
	}
	t.Active = leaves[0]
}

// Resize recalculates geometry for the whole tab after a terminal
// resize.
func (t *Tab) Resize(rect Rect) {
	t.Geometry = rect
	t.Root.CalcViews(rect)
}

// CloseActive removes the active view from the tree, promoting its
// sibling and focusing it. Returns false if the active view is the
// tab's sole remaining view (closing it would close the tab itself;
// the caller is expected to close the tab instead).
func (t *Tab) CloseActive() bool {
	if t.Active == t.Root {
		celog.Fine("refusing to close the last view in a tab")
		return false
	}
	parent := t.Active.Parent
	if !t.Active.Remove() {
		return false
	}
	t.Active = parent
	leaves := parent.Leaves()
	if len(leaves) > 0 {
		t.Active = leaves[0]
	}
	t.Root.CalcViews(t.Geometry)
	return true
}

// Tabs is an ordered forest of Tab trees plus the index of the one
// currently shown.
type Tabs struct {
	tabs   []*Tab
	active int
}

// NewTabs returns an empty tab list.
func NewTabs() *Tabs {
	return &Tabs{active: -1}
}

// Insert adds t after the currently active tab (or at the end if
// there is none yet) and focuses it.
func (ts *Tabs) Insert(t *Tab) {
	if ts.active == -1 {
		ts.tabs = append(ts.tabs, t)
		ts.active = len(ts.tabs) - 1
		return
	}
	at := ts.active + 1
	ts.tabs = append(ts.tabs, nil)
	copy(ts.tabs[at+1:], ts.tabs[at:])
	ts.tabs[at] = t
	ts.active = at
}

// Remove deletes the tab at index i, refocusing the tab that was
// before it (or the new first tab if i was first).
func (ts *Tabs) Remove(i int) bool {
	if i < 0 || i >= len(ts.tabs) {
		return false
	}
	ts.tabs = append(ts.tabs[:i], ts.tabs[i+1:]...)
	if len(ts.tabs) == 0 {
		ts.active = -1
		return true
	}
	if ts.active > i || (ts.active == i && i > 0) {
		ts.active--
	}
	return true
}

// Active returns the focused tab, or nil if there are none.
func (ts *Tabs) Active() *Tab {
	if ts.active < 0 || ts.active >= len(ts.tabs) {
		return nil
	}
	return ts.tabs[ts.active]
}

// ActiveIndex returns the index of the focused tab, or -1 if there
// are none.
func (ts *Tabs) ActiveIndex() int { return ts.active }

// Next focuses the next tab, wrapping around to the first.
func (ts *Tabs) Next() {
	if len(ts.tabs) == 0 {
		return
	}
	ts.active = (ts.active + 1) % len(ts.tabs)
}

// Prev focuses the previous tab, wrapping around to the last.
func (ts *Tabs) Prev() {
	if len(ts.tabs) == 0 {
		return
	}
	ts.active = (ts.active - 1 + len(ts.tabs)) % len(ts.tabs)
}

// Len returns the number of open tabs.
func (ts *Tabs) Len() int { return len(ts.tabs) }
