package modal

// DotRepeat remembers the keystrokes of the last change-making command
// so `.` can replay it verbatim.
type DotRepeat struct {
	keys []KeyPress
}

// SetKeys stores the keystrokes that just performed a repeatable
// change, replacing whatever was captured for the previous one.
func (d *DotRepeat) SetKeys(keys []KeyPress) {
	d.keys = append([]KeyPress(nil), keys...)
}

// Repeat returns the keystrokes of the last completed change.
func (d *DotRepeat) Repeat() []KeyPress {
	return d.keys
}
