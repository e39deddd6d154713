package termio

import (
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"

	"github.com/justy989/ce/buffer"
	"github.com/justy989/ce/celog"
)

// redrawBudget is the minimum spacing between coalesced redraw
// signals posted by a Terminal's reader goroutine.
const redrawBudget = 16 * time.Millisecond

// Terminal owns a child shell's pty and projects its output onto a
// readonly Buffer. The reader goroutine mutates the buffer directly
// through readonly entrypoints and signals updated whenever new
// output has been applied, coalesced to at most once per
// redrawBudget.
type Terminal struct {
	Buffer *buffer.Buffer

	cmd    *exec.Cmd
	pty    *os.File
	parser *AnsiParser

	width, height int

	mu       sync.Mutex
	isAlive  bool
	updated  *sync.Cond
	lastSeen uint64
	gen      uint64
}

// Spawn allocates a pty sized width x height, forks shell as its
// child with a pared-down environment, and starts the reader
// goroutine. buf is cleared and adopted as the terminal's own
// readonly buffer.
func Spawn(shell string, width, height int, buf *buffer.Buffer) (*Terminal, error) {
	buf.Status = buffer.StatusReadOnly
	t := &Terminal{
		Buffer: buf,
		parser: NewAnsiParser(buf, width, height),
		width:  width,
		height: height,
	}
	t.updated = sync.NewCond(&t.mu)

	cmd := exec.Command(shell)
	cmd.Env = childEnv()

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, err
	}

	t.cmd = cmd
	t.pty = f
	t.isAlive = true

	go t.readLoop()
	go t.waitLoop()

	return t, nil
}

// childEnv clears the environment except the handful of variables a
// shell needs to look like an interactive login session.
func childEnv() []string {
	keep := []string{"LOGNAME", "USER", "SHELL", "HOME", "TERM"}
	env := make([]string, 0, len(keep))
	for _, k := range keep {
		if v, ok := os.LookupEnv(k); ok {
			env = append(env, k+"="+v)
		}
	}
	return env
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 4096)
	var last time.Time
	for {
		n, err := t.pty.Read(buf)
		if n > 0 {
			t.mu.Lock()
			t.parser.Write(buf[:n])
			t.gen++
			t.mu.Unlock()

			if since := time.Since(last); since >= redrawBudget {
				t.signal()
				last = time.Now()
			}
		}
		if err != nil {
			t.mu.Lock()
			t.isAlive = false
			t.mu.Unlock()
			t.signal()
			return
		}
	}
}

func (t *Terminal) waitLoop() {
	if err := t.cmd.Wait(); err != nil {
		celog.Fine("terminal child exited: %v", err)
	}
}

func (t *Terminal) signal() {
	t.mu.Lock()
	t.lastSeen = t.gen
	t.updated.Broadcast()
	t.mu.Unlock()
}

// WaitForUpdate blocks until the reader has applied output newer
// than the last call observed, or the child has exited. It returns
// whether the terminal is still alive.
func (t *Terminal) WaitForUpdate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := t.lastSeen
	for t.lastSeen == seen && t.isAlive {
		t.updated.Wait()
	}
	return t.isAlive
}

// IsAlive reports whether the child process is still running.
func (t *Terminal) IsAlive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isAlive
}

// Write sends keystrokes through to the child's stdin.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.pty.Write(p)
}

// Resize issues the pty window-size change and updates the parser's
// cached dimensions. Existing buffer content is not reflowed.
func (t *Terminal) Resize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
	t.parser.Resize(width, height)
	return pty.Setsize(t.pty, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
}

// ColorRuns returns the color runs recorded for row of the terminal's
// buffer.
func (t *Terminal) ColorRuns(row int) []ColorRun {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parser.ColorRuns(row)
}

// Close terminates the child process and releases the pty.
func (t *Terminal) Close() error {
	_ = t.cmd.Process.Kill()
	return t.pty.Close()
}
