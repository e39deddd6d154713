// Package editor is the ambient top-level orchestration layer: it
// owns the buffer list, the tab forest, one modal interpreter per
// buffer, the message buffer, input history, session persistence, and
// file watching, wiring the buffer/view/modal/termio/syntax packages
// together into a runnable program.
package editor

import (
	"fmt"
	"sync"

	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/celog"
	"github.com/justy989/ce/modal"
	"github.com/justy989/ce/syntax"
	"github.com/justy989/ce/termio"
	"github.com/justy989/ce/view"
)

// Config bundles the session-wide options a complete program needs,
// beyond what the session file itself persists.
type Config struct {
	SaveMessagesOnExit bool
	ConfigPath         string
	Shell              string
}

// Editor is the top-level object a `cmd/ce` main loop drives: one per
// process.
type Editor struct {
	Config Config

	Buffers []*buffer.Buffer
	Tabs    *view.Tabs

	// interpreters holds one modal.Interpreter per open buffer,
	// sharing its commit log and register/mark/macro state across
	// every view onto that buffer.
	interpreters map[*buffer.Buffer]*modal.Interpreter
	commits      map[*buffer.Buffer]*buffer.CommitLog
	terminals    map[*buffer.Buffer]*termio.Terminal
	policies     map[int]syntax.RenderPolicy

	Message *buffer.Buffer

	CommandHistory *InputHistory
	SearchHistory  *InputHistory

	Hook syntax.Hook

	Watcher *Watcher

	lastDestination []termio.Destination
	destIndex       int

	// lastSearch is the most recent committed `/`/`?` pattern,
	// persisted into the session file's search-register section.
	lastSearch string

	// pendingG is set after a bare 'g' in Normal mode while the
	// editor waits to see whether the next key makes it "gt"/"gT"
	// (tab switch) or a modal-interpreter "gg" sequence.
	pendingG bool

	// drawMu serializes all rendering; either the main input loop or
	// a terminal's reader goroutine may take it to emit a redraw.
	drawMu sync.Mutex
}

// New returns an editor with no buffers open and no tabs.
func New(cfg Config) *Editor {
	e := &Editor{
		Config:         cfg,
		Tabs:           view.NewTabs(),
		interpreters:   make(map[*buffer.Buffer]*modal.Interpreter),
		commits:        make(map[*buffer.Buffer]*buffer.CommitLog),
		terminals:      make(map[*buffer.Buffer]*termio.Terminal),
		policies:       make(map[int]syntax.RenderPolicy),
		Message:        buffer.New(),
		CommandHistory: NewInputHistory(),
		SearchHistory:  NewInputHistory(),
		Hook:           syntax.PlainHook{},
	}
	e.Message.Name = "[Messages]"
	e.Message.Status = buffer.StatusReadOnly
	return e
}

// Logf appends a formatted line to the message buffer, the editor's
// equivalent of the status line the teacher's backend logs errors
// and notices to.
func (e *Editor) Logf(format string, args ...interface{}) {
	celog.Fine(format, args...)
	e.Message.AppendLineReadonly(fmt.Sprintf(format, args...))
}

// AddBuffer registers b with the editor and creates an interpreter
// bound to a fresh commit log for it.
func (e *Editor) AddBuffer(b *buffer.Buffer) *modal.Interpreter {
	cl := buffer.NewCommitLog()
	it := modal.New(b, cl)
	e.Buffers = append(e.Buffers, b)
	e.interpreters[b] = it
	e.commits[b] = cl
	return it
}

// Interpreter returns the modal interpreter bound to b, if any.
func (e *Editor) Interpreter(b *buffer.Buffer) (*modal.Interpreter, bool) {
	it, ok := e.interpreters[b]
	return it, ok
}

// CommitLog returns the commit log bound to b, if any.
func (e *Editor) CommitLog(b *buffer.Buffer) (*buffer.CommitLog, bool) {
	cl, ok := e.commits[b]
	return cl, ok
}

// OpenFile loads filename into a fresh buffer (or reuses an already
// open one with the same filename), adds it to the editor, and opens
// it in the active tab's active view, splitting nothing.
func (e *Editor) OpenFile(filename string) (*buffer.Buffer, error) {
	for _, b := range e.Buffers {
		if b.Filename == filename {
			e.focusBuffer(b)
			return b, nil
		}
	}

	b := buffer.New()
	b.Name = filename
	result, err := b.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	switch result {
	case buffer.LoadMissing:
		b.Status = buffer.StatusNewFile
		e.Logf("new file: %s", filename)
	case buffer.LoadDirectory:
		e.Logf("cannot open directory: %s", filename)
		return nil, nil
	}
	b.Type = typeForFilename(filename)
	e.AddBuffer(b)
	e.focusBuffer(b)

	if e.Watcher != nil {
		e.Watcher.Watch(filename, func() { e.reloadExternallyChanged(b) })
	}
	return b, nil
}

func (e *Editor) reloadExternallyChanged(b *buffer.Buffer) {
	e.drawMu.Lock()
	defer e.drawMu.Unlock()
	e.Logf("%s changed on disk", b.Filename)
}

// NewScratchBuffer creates an unnamed buffer not backed by any file,
// for `:new_buffer` and terminal panes.
func (e *Editor) NewScratchBuffer(name string) *buffer.Buffer {
	b := buffer.New()
	b.Name = name
	b.Status = buffer.StatusNewFile
	e.AddBuffer(b)
	e.focusBuffer(b)
	return b
}

func (e *Editor) focusBuffer(b *buffer.Buffer) {
	tab := e.Tabs.Active()
	if tab == nil {
		root := view.New(b)
		tab = view.NewTab(root, view.Rect{Rows: 24, Cols: 80})
		e.Tabs.Insert(tab)
		return
	}
	v := tab.Active
	if v == nil {
		return
	}
	v.Buffer = b
	v.Cursor = buffer.Point{}
}

func typeForFilename(filename string) buffer.Type {
	switch ext(filename) {
	case "c", "h":
		return buffer.TypeC
	case "cpp", "cc", "hpp", "cxx":
		return buffer.TypeCpp
	case "py":
		return buffer.TypePython
	case "java":
		return buffer.TypeJava
	case "sh", "bash":
		return buffer.TypeBash
	case "diff", "patch":
		return buffer.TypeDiff
	case "conf", "ini", "cfg", "toml", "yaml", "yml":
		return buffer.TypeConfig
	default:
		return buffer.TypePlain
	}
}

func ext(filename string) string {
	dot := -1
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			dot = i
			break
		}
		if filename[i] == '/' {
			break
		}
	}
	if dot == -1 {
		return ""
	}
	return filename[dot+1:]
}

// SetPolicy records the per-view render policy used when invoking
// the syntax hook for that view, keyed by view.View.ID().
func (e *Editor) SetPolicy(viewID int, p syntax.RenderPolicy) {
	e.policies[viewID] = p
}

// Policy returns the render policy for a view, defaulting to
// everything disabled.
func (e *Editor) Policy(viewID int) syntax.RenderPolicy {
	return e.policies[viewID]
}

// AttachTerminal spawns a child shell into a fresh readonly buffer
// and registers it with the editor as both a normal buffer (so it
// can be shown in a view) and a live terminal.
func (e *Editor) AttachTerminal(width, height int) (*buffer.Buffer, error) {
	shell := e.Config.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	b := buffer.New()
	b.Name = "[Terminal]"
	b.Type = buffer.TypeTerminal
	term, err := termio.Spawn(shell, width, height, b)
	if err != nil {
		return nil, err
	}
	e.AddBuffer(b)
	e.terminals[b] = term
	e.focusBuffer(b)
	return b, nil
}

// Terminal returns the live terminal backing b, if b is a terminal
// buffer.
func (e *Editor) Terminal(b *buffer.Buffer) (*termio.Terminal, bool) {
	t, ok := e.terminals[b]
	return t, ok
}

// Render walks the active tab's view tree, driving the syntax hook
// per visible line of each leaf and forwarding draw calls to sink. It
// takes the draw mutex for the duration, the same serialization point
// a terminal reader goroutine's signal handler must also take.
func (e *Editor) Render(sink view.Screen) {
	e.drawMu.Lock()
	defer e.drawMu.Unlock()

	tab := e.Tabs.Active()
	if tab == nil {
		return
	}
	for _, v := range tab.Root.Leaves() {
		v.FollowCursor()
		e.renderView(v, sink)
	}
}

func (e *Editor) renderView(v *view.View, sink view.Screen) {
	if v.Buffer == nil {
		return
	}
	b := v.Buffer
	policy := e.Policy(v.ID())
	state := e.Hook.Initializing(b, b.SyntaxState)
	b.SyntaxState = state

	styles := styleSink{}
	for row := 0; row < v.Geometry.Rows; row++ {
		line := v.TopLine + int64(row)
		if line >= b.LineCount() {
			break
		}
		e.Hook.BeginningOfLine(b, line, state, styles)
		text := b.Line(line)
		for x, c := range []byte(text) {
			e.Hook.Character(b, buffer.Point{int64(x), line}, c, state, policy, styles)
		}
		e.Hook.EndOfLine(b, line, state, styles)
	}
	v.Draw(sink)
}

// styleSink discards style pushes; a real render layer supplies its
// own StyleSink that actually maps StyleKind to terminal color codes.
type styleSink struct{}

func (styleSink) Push(syntax.StyleKind) {}

// DrawMu exposes the editor's render mutex so a termio.Terminal's
// reader goroutine can serialize its own buffer mutation against an
// in-progress render, per the concurrency model.
func (e *Editor) DrawMu() *sync.Mutex { return &e.drawMu }

// Close terminates every live terminal and stops the file watcher.
func (e *Editor) Close() {
	for _, t := range e.terminals {
		_ = t.Close()
	}
	if e.Watcher != nil {
		e.Watcher.Stop()
	}
}
