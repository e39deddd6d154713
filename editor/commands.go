package editor

import (
	"strconv"
	"strings"

	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/syntax"
)

// RunCommand interprets one line submitted to the `:` prompt against
// the currently focused view's buffer. Numeric-only input is treated
// as a go-to-line (spec.md §6).
func (e *Editor) RunCommand(line string) {
	e.CommandHistory.Add(line)

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		e.gotoLine(n)
		return
	}

	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "new_buffer":
		name := "[No Name]"
		if len(args) > 0 {
			name = args[0]
		}
		e.NewScratchBuffer(name)
	case "reload_buffer":
		e.reloadActiveBuffer()
	case "rename":
		if len(args) == 0 {
			e.Logf("rename requires a name")
			return
		}
		if b := e.activeBuffer(); b != nil {
			b.Name = args[0]
		}
	case "syntax":
		if len(args) == 0 {
			e.Logf("syntax requires a language")
			return
		}
		e.setSyntax(args[0])
	case "line_number":
		if len(args) == 0 {
			e.Logf("line_number requires a mode")
			return
		}
		e.setLineNumber(args[0])
	case "highlight_line":
		if len(args) == 0 {
			e.Logf("highlight_line requires a mode")
			return
		}
		e.setHighlightLine(args[0])
	case "noh":
		if b := e.activeBuffer(); b != nil {
			b.HighlightStart = buffer.Point{X: -1}
		}
	case "buffers":
		for _, b := range e.Buffers {
			e.Logf("%s", bufferLabel(b))
		}
	case "macro_backslashes":
		e.macroBackslashes()
	default:
		e.Logf("unknown command: %s", cmd)
	}
}

func bufferLabel(b *buffer.Buffer) string {
	if b.Name != "" {
		return b.Name
	}
	return b.Filename
}

func (e *Editor) activeBuffer() *buffer.Buffer {
	tab := e.Tabs.Active()
	if tab == nil || tab.Active == nil {
		return nil
	}
	return tab.Active.Buffer
}

func (e *Editor) activeViewID() int {
	tab := e.Tabs.Active()
	if tab == nil || tab.Active == nil {
		return 0
	}
	return tab.Active.ID()
}

func (e *Editor) gotoLine(n int64) {
	b := e.activeBuffer()
	if b == nil {
		return
	}
	y := n - 1
	if y < 0 {
		y = 0
	}
	if y >= b.LineCount() {
		y = b.LineCount() - 1
	}
	if y < 0 {
		return
	}
	e.pushJump()
	b.Cursor = b.SoftBeginningOfLine(y)
}

func (e *Editor) reloadActiveBuffer() {
	b := e.activeBuffer()
	if b == nil || b.Filename == "" {
		e.Logf("no file to reload")
		return
	}
	if _, err := b.LoadFile(b.Filename); err != nil {
		e.Logf("reload failed: %s", err)
	}
}

func (e *Editor) setSyntax(lang string) {
	b := e.activeBuffer()
	if b == nil {
		return
	}
	switch lang {
	case "c":
		b.Type = buffer.TypeC
	case "cpp":
		b.Type = buffer.TypeCpp
	case "python":
		b.Type = buffer.TypePython
	case "java":
		b.Type = buffer.TypeJava
	case "bash":
		b.Type = buffer.TypeBash
	case "config":
		b.Type = buffer.TypeConfig
	case "diff":
		b.Type = buffer.TypeDiff
	case "plain":
		b.Type = buffer.TypePlain
	default:
		e.Logf("unknown syntax: %s", lang)
	}
}

func (e *Editor) setLineNumber(mode string) {
	viewID := e.activeViewID()
	p := e.Policy(viewID)
	switch mode {
	case "none":
		p.LineNumber = syntax.LineNumberNone
	case "absolute":
		p.LineNumber = syntax.LineNumberAbsolute
	case "relative":
		p.LineNumber = syntax.LineNumberRelative
	case "both":
		p.LineNumber = syntax.LineNumberBoth
	default:
		e.Logf("unknown line_number mode: %s", mode)
		return
	}
	e.SetPolicy(viewID, p)
	if tab := e.Tabs.Active(); tab != nil && tab.Active != nil {
		tab.Active.ShowLineNumbers = p.LineNumber != syntax.LineNumberNone
	}
}

func (e *Editor) setHighlightLine(mode string) {
	viewID := e.activeViewID()
	p := e.Policy(viewID)
	switch mode {
	case "none":
		p.HighlightLine = syntax.HighlightLineNone
	case "text":
		p.HighlightLine = syntax.HighlightLineText
	case "entire":
		p.HighlightLine = syntax.HighlightLineEntire
	default:
		e.Logf("unknown highlight_line mode: %s", mode)
		return
	}
	e.SetPolicy(viewID, p)
	if tab := e.Tabs.Active(); tab != nil && tab.Active != nil {
		tab.Active.HighlightLine = p.HighlightLine != syntax.HighlightLineNone
	}
}

// macroBackslashes rewrites the unnamed (`"`) register's content in
// place, doubling every backslash in it.
func (e *Editor) macroBackslashes() {
	b := e.activeBuffer()
	if b == nil {
		return
	}
	it, ok := e.Interpreter(b)
	if !ok {
		return
	}
	reg, ok := it.Registers.Get('"')
	if !ok {
		return
	}
	doubled := strings.ReplaceAll(reg.Text, `\`, `\\`)
	it.Registers.Set('"', doubled, reg.Kind)
}
