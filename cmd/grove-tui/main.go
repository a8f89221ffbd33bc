package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/app"
	"grove/internal/input"
	"grove/internal/tui"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "grove")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	session, err := app.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	var extra input.Producer
	if session.Gesture != nil {
		extra = session.Gesture
	}
	model := tui.NewModel(session.World, extra, session.TPS, session.File.TerminalHold(), cfg.Seed)
	if session.Gesture != nil {
		model.SetStatus("gesture: waiting")
		session.Gesture.OnFire(func(g input.Gesture) {
			model.SetStatus(fmt.Sprintf("gesture: %s -> %s", g, g.Action()))
		})
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
