package termio

// Color is a basic ANSI SGR color index; -1 means "use the terminal's
// default".
type Color int

const ColorDefault Color = -1

// ColorRun is a run of cells on one terminal line sharing the same
// foreground/background/attribute, the parallel structure to a
// buffer line's plain bytes.
type ColorRun struct {
	Start int // byte column the run begins at
	Len   int
	FG    Color
	BG    Color
	Bold  bool
}
