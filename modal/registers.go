package modal

import (
	"github.com/atotto/clipboard"

	"github.com/justy989/ce/celog"
)

// RegisterKind records how a yank/delete should be re-inserted: a
// span of characters, whole lines, or a rectangular block.
type RegisterKind int

const (
	RegisterCharacterwise RegisterKind = iota
	RegisterLinewise
	RegisterBlockwise
)

// Register is the content of one named register (a-z, 0-9, ", +, *).
type Register struct {
	Text string
	Kind RegisterKind
}

// registerUnnamed is the key used for the default ("") register: any
// yank/delete without an explicit register name lands here too.
const registerUnnamed = 0

// Registers holds every named register a ModalInterpreter can yank
// into or paste from.
type Registers struct {
	table map[byte]Register
	// MirrorClipboard, when true, makes every write to the unnamed
	// register also copy to the OS clipboard (vi's `unnamedplus`).
	MirrorClipboard bool
}

// NewRegisters returns an empty register set.
func NewRegisters() *Registers {
	return &Registers{table: make(map[byte]Register)}
}

// Set stores text into register name under kind. Writing the unnamed
// register (name == 0 or '"') stores it under both of those names;
// no numbered registers are kept.
func (r *Registers) Set(name byte, text string, kind RegisterKind) {
	reg := Register{Text: text, Kind: kind}
	r.table[name] = reg
	if name == registerUnnamed || name == '"' {
		r.table[registerUnnamed] = reg
		r.table['"'] = reg
	}
	if name == '+' || (r.MirrorClipboard && (name == registerUnnamed || name == '"')) {
		if err := clipboard.WriteAll(text); err != nil {
			celog.Warn("failed to write system clipboard: %s", err)
		}
	}
}

// Get returns the contents of register name. Reading '+' pulls live
// from the OS clipboard instead of the cached value.
func (r *Registers) Get(name byte) (Register, bool) {
	if name == '+' {
		text, err := clipboard.ReadAll()
		if err != nil {
			celog.Warn("failed to read system clipboard: %s", err)
			reg, ok := r.table[name]
			return reg, ok
		}
		return Register{Text: text, Kind: RegisterCharacterwise}, true
	}
	reg, ok := r.table[name]
	return reg, ok
}
