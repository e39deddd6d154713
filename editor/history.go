package editor

// historyNode is one entry of an InputHistory, doubly linked the same
// way buffer.CommitLog's nodes are: the list owns its forward links,
// backward links are plain back-references.
type historyNode struct {
	text string
	next *historyNode
	prev *historyNode
}

// InputHistory remembers every line submitted to a prompt (the `:`
// command line or the `/`/`?` search prompt), supporting linear
// up/down recall the way a shell history does.
type InputHistory struct {
	head   *historyNode
	tail   *historyNode
	cursor *historyNode
	count  int
}

// NewInputHistory returns an empty history.
func NewInputHistory() *InputHistory {
	return &InputHistory{}
}

// Add appends text as the newest entry and resets recall to "past the
// end" (so the next Prev returns this entry).
func (h *InputHistory) Add(text string) {
	if text == "" {
		return
	}
	n := &historyNode{text: text}
	if h.tail == nil {
		h.head = n
	} else {
		h.tail.next = n
		n.prev = h.tail
	}
	h.tail = n
	h.count++
	h.cursor = nil
}

// Prev recalls the entry before the current recall position, the
// oldest entry once recall runs off the front. Returns ok=false if
// there is no history at all.
func (h *InputHistory) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.cursor == nil {
		h.cursor = h.tail
	} else if h.cursor.prev != nil {
		h.cursor = h.cursor.prev
	}
	return h.cursor.text, true
}

// Next recalls the entry after the current recall position, clearing
// recall (returning "") once it walks past the newest entry.
func (h *InputHistory) Next() (string, bool) {
	if h.cursor == nil {
		return "", false
	}
	h.cursor = h.cursor.next
	if h.cursor == nil {
		return "", true
	}
	return h.cursor.text, true
}

// Len returns the number of entries recorded.
func (h *InputHistory) Len() int { return h.count }

// Entries returns every recorded entry, oldest first.
func (h *InputHistory) Entries() []string {
	out := make([]string, 0, h.count)
	for n := h.head; n != nil; n = n.next {
		out = append(out, n.text)
	}
	return out
}
