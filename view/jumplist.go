package view

import "github.com/justy989/ce/buffer"

// jumpListSize is the number of entries retained before the oldest
// jump is overwritten.
const jumpListSize = 32

// Jump is one entry in a View's jump history: a location in a named
// file, recorded before a motion that could move far from it (search,
// goto-line, goto-definition, buffer switch).
type Jump struct {
	Filename string
	Point    buffer.Point
}

// JumpList is a fixed-size ring buffer of Jumps with a single cursor
// that Back/Forward walk, mirroring vi's Ctrl-O / Ctrl-I history.
type JumpList struct {
	entries [jumpListSize]Jump
	valid   [jumpListSize]bool
	head    int // next slot to write
	count   int // number of valid entries, capped at jumpListSize
	pos     int // current position when walking back/forward; -1 if not walking
}

// NewJumpList returns an empty jump list.
func NewJumpList() *JumpList {
	return &JumpList{pos: -1}
}

// Push records a new jump, discarding the oldest entry once the list
// is full and resetting any in-progress Back/Forward walk.
func (j *JumpList) Push(filename string, p buffer.Point) {
	j.entries[j.head] = Jump{Filename: filename, Point: p}
	j.valid[j.head] = true
	j.head = (j.head + 1) % jumpListSize
	if j.count < jumpListSize {
		j.count++
	}
	j.pos = -1
}

// index converts a logical "n-th most recent" offset into a ring slot.
func (j *JumpList) index(stepsBack int) int {
	return (j.head - 1 - stepsBack + jumpListSize*2) % jumpListSize
}

// Back moves one step further into history and returns that Jump.
func (j *JumpList) Back() (Jump, bool) {
	if j.count == 0 {
		return Jump{}, false
	}
	next := j.pos + 1
	if next >= j.count {
		return Jump{}, false
	}
	j.pos = next
	return j.entries[j.index(j.pos)], true
}

// Forward moves one step back toward the present and returns that Jump.
func (j *JumpList) Forward() (Jump, bool) {
	if j.pos <= 0 {
		j.pos = -1
		return Jump{}, false
	}
	j.pos--
	return j.entries[j.index(j.pos)], true
}
