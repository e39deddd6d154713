// Command ce is the process entry point: it parses the CLI flags
// spec.md §6 describes, loads the previous session, opens any files
// named on the command line, and runs the key-read/render loop.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/justy989/ce/celog"
	"github.com/justy989/ce/editor"
)

func main() {
	var (
		configPath = flag.String("c", "", "path to a configuration file")
		saveOnExit = flag.Bool("s", false, "save the message buffer on exit")
		help       = flag.Bool("h", false, "print usage")
	)
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return
	}

	cfg := editor.Config{
		SaveMessagesOnExit: *saveOnExit,
		ConfigPath:         *configPath,
		Shell:              os.Getenv("SHELL"),
	}
	e := editor.New(cfg)
	defer e.Close()

	e.Watcher = editor.NewWatcher()
	go e.Watcher.Observe()

	session := editor.LoadSession()

	for _, filename := range flag.Args() {
		if _, err := e.OpenFile(filename); err != nil {
			celog.Error("could not open %s: %s", filename, err)
		}
	}
	e.ApplySession(session)

	run(e)

	e.SaveSession(e.LastSearch())
	if cfg.SaveMessagesOnExit {
		e.SaveMessages()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ce [-c config] [-s] [-h] <files...>\n")
	flag.PrintDefaults()
}
