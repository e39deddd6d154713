package modal

import "github.com/justy989/ce/buffer"

// Marks is the per-buffer table of named cursor positions set with
// `m{a-zA-Z}` and recalled with `` ` `` or `'`.
type Marks struct {
	table map[byte]buffer.Point
}

// NewMarks returns an empty mark table.
func NewMarks() *Marks {
	return &Marks{table: make(map[byte]buffer.Point)}
}

// Set records p under name.
func (m *Marks) Set(name byte, p buffer.Point) {
	m.table[name] = p
}

// Get returns the position recorded under name.
func (m *Marks) Get(name byte) (buffer.Point, bool) {
	p, ok := m.table[name]
	return p, ok
}
