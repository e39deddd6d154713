package main

import (
	"bufio"
	"io"
	"os"

	"github.com/justy989/ce/celog"
	"github.com/justy989/ce/editor"
	"github.com/justy989/ce/view"
)

// quitKey ends the read loop. The modal interpreter has no notion of
// "quit the process" (that's an ambient CLI concern, not something
// spec.md's core subsystems own), so the entry point itself watches
// for Ctrl+C and Ctrl+D (EOF) to stop reading.
const quitKey rune = 'c'

// run drives the key-read/render loop against stdin until EOF or
// Ctrl+C, rendering with view.NopScreen since no concrete
// terminal-drawing implementation ships with this core (spec.md §9,
// SPEC_FULL.md §4.3).
func run(e *editor.Editor) {
	r := bufio.NewReader(os.Stdin)
	screen := view.NopScreen{}

	for {
		kp, err := decodeKey(r)
		if err != nil {
			if err != io.EOF {
				celog.Error("input read error: %s", err)
			}
			return
		}
		if kp.Ctrl && kp.Key == quitKey {
			return
		}
		e.HandleKey(kp)
		e.Render(screen)
	}
}
