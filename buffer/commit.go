package buffer

import "github.com/justy989/ce/celog"

// CommitKind classifies what a Commit did, so Undo/Redo know how to
// reverse or replay it.
type CommitKind int

const (
	CommitInsert CommitKind = iota
	CommitRemove
	CommitChange // overwrite (SetChar-style) at a single point
)

// Commit is one reversible edit record.
type Commit struct {
	Kind CommitKind

	Start  Point
	Cursor Point // cursor position to restore to on undo

	InsertedString string // for CommitInsert / the "after" string of CommitChange
	RemovedString  string // for CommitRemove / the "before" string of CommitChange

	// Chain marks that this commit must be undone/redone together with
	// the one immediately before it (keystrokes that logically form a
	// single user action, e.g. auto-indent + typed character).
	Chain bool
}

type commitNode struct {
	commit Commit
	next   *commitNode
	prev   *commitNode
}

// CommitLog is a doubly-linked, position-addressable history of edits
// made to one Buffer. tail always points at the most recently applied
// commit; redoing walks forward from tail.next, undoing walks backward
// from tail.
type CommitLog struct {
	head *commitNode
	tail *commitNode
	seq  int
}

// NewCommitLog returns an empty commit log.
func NewCommitLog() *CommitLog {
	return &CommitLog{}
}

// Commit appends c to the log, discarding any redo-able tail left over
// from a previous undo (a fresh edit after undoing invalidates what
// used to be "ahead").
func (cl *CommitLog) Commit(c Commit) {
	celog.Finest("commit_change kind=%d chain=%v", c.Kind, c.Chain)
	cl.seq++
	node := &commitNode{commit: c}
	if cl.tail == nil {
		cl.head = node
		cl.tail = node
		return
	}
	cl.tail.next = node
	node.prev = cl.tail
	cl.tail = node
}

// Seq returns a counter that advances every time Commit is called.
// Callers use it to detect, without inspecting buffer contents, whether
// an edit happened between two points in time (e.g. modal.DotRepeat
// deciding whether a command is worth remembering for `.`).
func (cl *CommitLog) Seq() int {
	return cl.seq
}

// CanUndo reports whether there is a commit to undo.
func (cl *CommitLog) CanUndo() bool { return cl.tail != nil }

// CanRedo reports whether there is a commit to redo.
func (cl *CommitLog) CanRedo() bool {
	if cl.tail == nil {
		return cl.head != nil
	}
	return cl.tail.next != nil
}

// applyUndo reverses a single commit against b.
func applyUndo(b *Buffer, c Commit) {
	switch c.Kind {
	case CommitInsert:
		b.RemoveString(c.Start, int64(len(c.InsertedString)))
	case CommitRemove:
		b.InsertString(c.Start, c.RemovedString)
	case CommitChange:
		b.RemoveString(c.Start, int64(len(c.InsertedString)))
		b.InsertString(c.Start, c.RemovedString)
	}
	b.Cursor = c.Cursor
}

// applyRedo re-applies a single commit against b.
func applyRedo(b *Buffer, c Commit) {
	switch c.Kind {
	case CommitInsert:
		b.InsertString(c.Start, c.InsertedString)
	case CommitRemove:
		b.RemoveString(c.Start, int64(len(c.RemovedString)))
	case CommitChange:
		b.RemoveString(c.Start, int64(len(c.RemovedString)))
		b.InsertString(c.Start, c.InsertedString)
	}
}

// Undo reverses the most recent commit (and any commits chained to
// it) against b. Returns false if there was nothing to undo.
func (cl *CommitLog) Undo(b *Buffer) bool {
	if cl.tail == nil {
		return false
	}
	node := cl.tail
	for {
		applyUndo(b, node.commit)
		cl.tail = node.prev
		prevChained := node.commit.Chain
		node = node.prev
		if !prevChained || node == nil {
			break
		}
	}
	return true
}

// Redo re-applies the commit most recently undone (and any commits
// chained to the one after it). Returns false if there was nothing to
// redo.
func (cl *CommitLog) Redo(b *Buffer) bool {
	var next *commitNode
	if cl.tail == nil {
		next = cl.head
	} else {
		next = cl.tail.next
	}
	if next == nil {
		return false
	}
	for {
		applyRedo(b, next.commit)
		cl.tail = next
		following := next.next
		if following == nil || !following.commit.Chain {
			break
		}
		next = following
	}
	return true
}
