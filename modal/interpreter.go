package modal

import (
	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/celog"
)

// Interpreter is the modal command interpreter for a single buffer:
// it decodes key presses into motions, operators, and mode changes,
// and owns the registers/marks/macros/dot-repeat state that spec.md's
// ModalInterpreter names.
type Interpreter struct {
	State State

	Buffer  *buffer.Buffer
	Commits *buffer.CommitLog

	Registers *Registers
	Marks     *Marks
	Macros    *Macros
	Dot       *DotRepeat

	pendingCount     int64
	pendingRegister  byte
	pendingOperator  rune
	awaitingG        bool
	awaitingReplace  bool
	awaitingRegister bool
	awaitingMark     byte // 0 = none, 'm' = set-mark, '`'/'\'' = goto-mark
	awaitingFind     byte // 0 = none, 'f'/'F'/'t'/'T' = pending find-char

	visualStart buffer.Point

	macroPlaybackDepth int

	dotBuffer  []KeyPress
	dotMutated bool
}

const maxMacroPlaybackDepth = 32

// New returns an interpreter in Normal mode over b.
func New(b *buffer.Buffer, cl *buffer.CommitLog) *Interpreter {
	return &Interpreter{
		State:     StateNormal,
		Buffer:    b,
		Commits:   cl,
		Registers: NewRegisters(),
		Marks:     NewMarks(),
		Macros:    NewMacros(),
		Dot:       &DotRepeat{},
	}
}

func (it *Interpreter) count() int64 {
	if it.pendingCount == 0 {
		return 1
	}
	return it.pendingCount
}

func (it *Interpreter) resetPending() {
	it.pendingCount = 0
	it.pendingRegister = 0
	it.pendingOperator = 0
	it.awaitingG = false
	it.awaitingReplace = false
	it.awaitingRegister = false
	it.awaitingMark = 0
	it.awaitingFind = 0
}

// HandleKey decodes one keystroke against the interpreter's current
// state, applying it to Buffer/Commits/registers as needed.
func (it *Interpreter) HandleKey(kp KeyPress) {
	it.Macros.Record(kp)

	// `.` itself is never part of a repeatable sequence; let it replay
	// the last one without disturbing dotBuffer bookkeeping.
	if it.State == StateNormal && kp.Key == '.' && it.commandBoundary() {
		it.handleNormal(kp)
		return
	}

	if it.commandBoundary() {
		it.dotBuffer = nil
		it.dotMutated = false
	}
	if it.State == StateNormal || it.State == StateInsert || it.State == StateReplace {
		it.dotBuffer = append(it.dotBuffer, kp)
	}

	seqBefore := it.Commits.Seq()

	switch it.State {
	case StateInsert, StateReplace:
		it.handleInsert(kp)
	case StateVisualRange, StateVisualLine, StateVisualBlock:
		it.handleVisual(kp)
	default:
		it.handleNormal(kp)
	}

	if it.Commits.Seq() != seqBefore {
		it.dotMutated = true
	}
	if it.dotMutated && it.State == StateNormal && it.commandBoundary() {
		it.Dot.SetKeys(it.dotBuffer)
		it.dotBuffer = nil
		it.dotMutated = false
	}
}

// commandBoundary reports whether the interpreter is between commands:
// no operator, register, or lookahead state pending. Used to decide
// when a fresh dot-repeat capture should start and when a finished one
// should be committed.
func (it *Interpreter) commandBoundary() bool {
	return it.State == StateNormal &&
		it.pendingOperator == 0 &&
		it.pendingCount == 0 &&
		it.pendingRegister == 0 &&
		!it.awaitingReplace &&
		!it.awaitingRegister &&
		it.awaitingMark == 0 &&
		it.awaitingFind == 0 &&
		!it.awaitingG
}

// repeatLastChange replays the keystrokes of the last change-making
// command, implementing `.`.
func (it *Interpreter) repeatLastChange() {
	keys := it.Dot.Repeat()
	if len(keys) == 0 {
		return
	}
	replay := append([]KeyPress(nil), keys...)
	for _, k := range replay {
		it.HandleKey(k)
	}
}

func (it *Interpreter) enterInsert() {
	it.State = StateInsert
}

func (it *Interpreter) exitInsert() {
	it.State = StateNormal
	if it.Buffer.Cursor.X > 0 {
		n, moved := it.Buffer.RetreatCursor(it.Buffer.Cursor)
		if moved && n.Y == it.Buffer.Cursor.Y {
			it.Buffer.Cursor = n
		}
	}
}

func (it *Interpreter) handleInsert(kp KeyPress) {
	switch {
	case kp.Key == KeyEscape:
		it.exitInsert()
		return
	case kp.Key == KeyBackspace:
		if prev, moved := it.Buffer.RetreatCursor(it.Buffer.Cursor); moved {
			removed := it.Buffer.DupeString(prev, prev)
			it.Buffer.RemoveString(prev, 1)
			it.Commits.Commit(buffer.Commit{Kind: buffer.CommitRemove, Start: prev, RemovedString: removed, Cursor: prev, Chain: true})
			it.Buffer.Cursor = prev
		}
		return
	case kp.Key == KeyEnter:
		it.insertText("\n")
		return
	case kp.Key == KeyTab:
		it.insertText("\t")
		return
	case kp.IsCharacter() && kp.Key >= 0:
		it.insertText(string(kp.Key))
		return
	}
}

func (it *Interpreter) insertText(s string) {
	start := it.Buffer.Cursor
	if !it.Buffer.InsertString(start, s) {
		return
	}
	it.Commits.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: start, InsertedString: s, Cursor: start, Chain: true})
	for range s {
		n, moved := it.Buffer.AdvanceCursor(it.Buffer.Cursor)
		if !moved {
			break
		}
		it.Buffer.Cursor = n
	}
}

func (it *Interpreter) handleVisual(kp KeyPress) {
	if kp.Key == KeyEscape {
		it.State = StateNormal
		it.resetPending()
		return
	}
	if m, ok := Motions[kp.Key]; ok {
		res := m(it.Buffer, it.Buffer.Cursor, it.count())
		it.Buffer.Cursor = res.Point
		it.pendingCount = 0
		return
	}
	switch kp.Key {
	case 'd', 'x':
		it.visualOperate(OpKindDelete)
	case 'y':
		it.visualOperate(OpKindYank)
	case 'c':
		it.visualOperate(OpKindChange)
	case '>':
		lo, hi := minmaxY(it.visualStart.Y, it.Buffer.Cursor.Y)
		OpIndent(it.Buffer, it.Commits, lo, hi, 1)
		it.State = StateNormal
		it.resetPending()
	case '<':
		lo, hi := minmaxY(it.visualStart.Y, it.Buffer.Cursor.Y)
		OpIndent(it.Buffer, it.Commits, lo, hi, -1)
		it.State = StateNormal
		it.resetPending()
	}
}

type opKind int

const (
	OpKindDelete opKind = iota
	OpKindYank
	OpKindChange
)

func minmaxY(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (it *Interpreter) visualOperate(kind opKind) {
	linewise := it.State == StateVisualLine
	start, end := it.visualStart, it.Buffer.Cursor
	reg := it.pendingRegister
	if reg == 0 {
		reg = registerUnnamed
	}
	switch kind {
	case OpKindYank:
		OpYank(it.Buffer, start, end, linewise, true, it.Registers, reg)
		it.Buffer.Cursor = it.Buffer.ClampCursor(start)
	case OpKindDelete:
		it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, end, linewise, true, it.Registers, reg)
	case OpKindChange:
		it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, end, linewise, true, it.Registers, reg)
		it.enterInsert()
	}
	if it.State != StateInsert {
		it.State = StateNormal
	}
	it.resetPending()
}

func (it *Interpreter) handleNormal(kp KeyPress) {
	if it.awaitingReplace {
		it.doReplace(kp.Key)
		it.resetPending()
		return
	}
	if it.awaitingMark != 0 {
		it.doMark(it.awaitingMark, byte(kp.Key))
		it.resetPending()
		return
	}
	if it.awaitingFind != 0 {
		it.doFind(it.awaitingFind, byte(kp.Key))
		it.resetPending()
		return
	}
	if it.awaitingG {
		it.awaitingG = false
		if kp.Key == 'g' {
			it.applyMotion(motionFileStart, false)
		}
		it.resetPending()
		return
	}
	if it.awaitingRegister {
		it.awaitingRegister = false
		if kp.Key >= 0 && kp.Key <= 255 {
			it.pendingRegister = byte(kp.Key)
		}
		return
	}

	if kp.Key >= '1' && kp.Key <= '9' || (kp.Key == '0' && it.pendingCount != 0) {
		it.pendingCount = it.pendingCount*10 + int64(kp.Key-'0')
		return
	}

	if m, ok := Motions[kp.Key]; ok {
		if it.pendingOperator != 0 {
			it.applyOperatorMotion(m)
		} else {
			it.applyMotion(m, false)
		}
		return
	}

	switch kp.Key {
	case 'g':
		it.awaitingG = true
		return
	case '"':
		it.awaitingRegister = true
		return
	case '.':
		it.repeatLastChange()
		return
	case 'd', 'c', 'y':
		if it.pendingOperator == kp.Key {
			it.applyOperatorLinewise()
			return
		}
		it.pendingOperator = kp.Key
		return
	case '>', '<':
		if it.pendingOperator == kp.Key {
			dir := 1
			if kp.Key == '<' {
				dir = -1
			}
			y := it.Buffer.Cursor.Y
			OpIndent(it.Buffer, it.Commits, y, y+it.count()-1, dir)
			it.resetPending()
			return
		}
		it.pendingOperator = kp.Key
		return
	case '=':
		if it.pendingOperator == '=' {
			y := it.Buffer.Cursor.Y
			OpReindent(it.Buffer, it.Commits, y, y+it.count()-1, 4)
			it.resetPending()
			return
		}
		it.pendingOperator = '='
		return
	case 'x':
		it.deleteCharsForward()
	case 'X':
		it.deleteCharsBackward()
	case 'r':
		it.awaitingReplace = true
	case 'p':
		it.paste(true)
		it.pendingRegister = 0
	case 'P':
		it.paste(false)
		it.pendingRegister = 0
	case 'i':
		it.enterInsert()
	case 'I':
		it.Buffer.Cursor = it.Buffer.SoftBeginningOfLine(it.Buffer.Cursor.Y)
		it.enterInsert()
	case 'a':
		if n, moved := it.Buffer.AdvanceCursor(it.Buffer.Cursor); moved {
			it.Buffer.Cursor = n
		}
		it.enterInsert()
	case 'A':
		it.Buffer.Cursor = it.Buffer.EndOfLine(it.Buffer.Cursor.Y)
		it.enterInsert()
	case 'o':
		it.openLine(true)
	case 'O':
		it.openLine(false)
	case 'u':
		it.Commits.Undo(it.Buffer)
	case 'v':
		it.startVisual(StateVisualRange)
	case 'V':
		it.startVisual(StateVisualLine)
	case 'm':
		it.awaitingMark = 'm'
	case '`', '\'':
		it.awaitingMark = byte(kp.Key)
	case 'f', 'F', 't', 'T':
		it.awaitingFind = byte(kp.Key)
	case 'q':
		it.toggleMacroRecording()
	case '@':
		it.awaitingMark = '@'
	}

	if kp.Ctrl && kp.Key == 'r' {
		it.Commits.Redo(it.Buffer)
	}

	if it.pendingOperator == 0 {
		it.pendingCount = 0
	}
}

func (it *Interpreter) startVisual(state State) {
	it.visualStart = it.Buffer.Cursor
	it.State = state
	it.pendingCount = 0
}

func (it *Interpreter) applyMotion(m Motion, _ bool) {
	res := m(it.Buffer, it.Buffer.Cursor, it.count())
	it.Buffer.Cursor = it.Buffer.ClampCursor(res.Point)
	it.pendingCount = 0
}

func (it *Interpreter) applyOperatorMotion(m Motion) {
	res := m(it.Buffer, it.Buffer.Cursor, it.count())
	it.runOperator(it.Buffer.Cursor, res.Point, res.Linewise, res.Inclusive)
}

func (it *Interpreter) applyOperatorLinewise() {
	y := it.Buffer.Cursor.Y
	end := buffer.Point{0, y + it.count() - 1}
	it.runOperator(it.Buffer.Cursor, end, true, false)
}

func (it *Interpreter) runOperator(start, end buffer.Point, linewise, inclusive bool) {
	reg := it.pendingRegister
	if reg == 0 {
		reg = registerUnnamed
	}
	switch it.pendingOperator {
	case 'd':
		it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, end, linewise, inclusive, it.Registers, reg)
	case 'y':
		OpYank(it.Buffer, start, end, linewise, inclusive, it.Registers, reg)
		lo, _ := buffer.Sort(start, end)
		it.Buffer.Cursor = it.Buffer.ClampCursor(lo)
	case 'c':
		it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, end, linewise, inclusive, it.Registers, reg)
		it.enterInsert()
	}
	it.resetPending()
}

func (it *Interpreter) deleteCharsForward() {
	count := it.count()
	start := it.Buffer.Cursor
	end := start
	for i := int64(0); i < count-1; i++ {
		if n, moved := it.Buffer.AdvanceCursor(end); moved {
			end = n
		}
	}
	it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, end, false, true, it.Registers, it.registerOrUnnamed())
	it.resetPending()
}

func (it *Interpreter) deleteCharsBackward() {
	count := it.count()
	end := it.Buffer.Cursor
	start := end
	moved := false
	for i := int64(0); i < count; i++ {
		if p, ok := it.Buffer.RetreatCursor(start); ok && p.Y == end.Y {
			start = p
			moved = true
		} else {
			break
		}
	}
	if moved {
		last, _ := it.Buffer.RetreatCursor(end)
		it.Buffer.Cursor = OpDelete(it.Buffer, it.Commits, start, last, false, true, it.Registers, it.registerOrUnnamed())
	}
	it.resetPending()
}

func (it *Interpreter) registerOrUnnamed() byte {
	if it.pendingRegister == 0 {
		return registerUnnamed
	}
	return it.pendingRegister
}

func (it *Interpreter) doReplace(key rune) {
	if key < 0 || key > 255 {
		return
	}
	p := it.Buffer.Cursor
	old, ok := it.Buffer.GetChar(p)
	if !ok {
		return
	}
	it.Buffer.SetChar(p, byte(key))
	it.Commits.Commit(buffer.Commit{
		Kind:           buffer.CommitChange,
		Start:          p,
		InsertedString: string(rune(key)),
		RemovedString:  string(rune(old)),
		Cursor:         p,
	})
}

func (it *Interpreter) doMark(kind byte, name byte) {
	switch kind {
	case 'm':
		it.Marks.Set(name, it.Buffer.Cursor)
	case '`', '\'':
		if p, ok := it.Marks.Get(name); ok {
			if kind == '\'' {
				p = it.Buffer.SoftBeginningOfLine(p.Y)
			}
			it.Buffer.Cursor = it.Buffer.ClampCursor(p)
		}
	case '@':
		it.playMacro(name)
	case 'q':
		it.Macros.BeginRecording(name)
	}
}

func (it *Interpreter) doFind(kind byte, target byte) {
	line := it.Buffer.Line(it.Buffer.Cursor.Y)
	x := it.Buffer.Cursor.X
	switch kind {
	case 'f':
		for i := x + 1; i < int64(len(line)); i++ {
			if line[i] == target {
				it.Buffer.Cursor.X = i
				return
			}
		}
	case 't':
		for i := x + 1; i < int64(len(line)); i++ {
			if line[i] == target {
				it.Buffer.Cursor.X = i - 1
				return
			}
		}
	case 'F':
		for i := x - 1; i >= 0; i-- {
			if line[i] == target {
				it.Buffer.Cursor.X = i
				return
			}
		}
	case 'T':
		for i := x - 1; i >= 0; i-- {
			if line[i] == target {
				it.Buffer.Cursor.X = i + 1
				return
			}
		}
	}
}

func (it *Interpreter) paste(after bool) {
	reg, ok := it.Registers.Get(it.registerOrUnnamed())
	if !ok || reg.Text == "" {
		return
	}
	p := it.Buffer.Cursor
	if reg.Kind == RegisterLinewise {
		line := p.Y
		if after {
			line++
		}
		at := buffer.Point{0, line}
		if line >= it.Buffer.LineCount() {
			it.Buffer.AppendLine("")
		}
		it.Buffer.InsertString(at, reg.Text)
		it.Commits.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: at, InsertedString: reg.Text, Cursor: at})
		it.Buffer.Cursor = it.Buffer.SoftBeginningOfLine(line)
		return
	}
	at := p
	if after {
		if n, moved := it.Buffer.AdvanceCursor(p); moved {
			at = n
		} else {
			at = buffer.Point{p.X + 1, p.Y}
		}
	}
	it.Buffer.InsertString(at, reg.Text)
	it.Commits.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: at, InsertedString: reg.Text, Cursor: at})
	it.Buffer.Cursor = at
}

func (it *Interpreter) openLine(below bool) {
	y := it.Buffer.Cursor.Y
	at := y
	if below {
		at = y + 1
	}
	it.Buffer.InsertNewline(at)
	it.Commits.Commit(buffer.Commit{Kind: buffer.CommitInsert, Start: buffer.Point{0, at}, InsertedString: "\n", Cursor: buffer.Point{0, at}})
	it.Buffer.Cursor = buffer.Point{0, at}
	it.enterInsert()
}

func (it *Interpreter) toggleMacroRecording() {
	if it.Macros.IsRecording() {
		it.Macros.EndRecording()
		return
	}
	it.awaitingMark = 'q'
}

func (it *Interpreter) playMacro(name byte) {
	if it.macroPlaybackDepth >= maxMacroPlaybackDepth {
		celog.Warn("macro playback nested too deep, aborting")
		return
	}
	keys, ok := it.Macros.Get(name)
	if !ok {
		return
	}
	it.macroPlaybackDepth++
	defer func() { it.macroPlaybackDepth-- }()
	for _, k := range keys {
		it.HandleKey(k)
	}
}
