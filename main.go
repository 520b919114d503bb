package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/player"
	"go-pianoroll/theme"
	"go-pianoroll/track"
	"go-pianoroll/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "write a debug log to "+debug.DefaultPath())
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	if cfg.Debug || *debugFlag {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			fmt.Printf("Warning: debug log disabled: %v\n", err)
		}
		defer debug.Disable()
	}

	// Load theme
	palette := theme.Plasma()
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			fail(err)
		}
	}
	th := theme.New(palette)

	tr := track.New()

	// No output until a port shows up
	pl, err := player.New(tr, nil, uint8(cfg.MIDI.PreviewChannel), cfg.Player.Tempo)
	if err != nil {
		fail(err)
	}
	pv := midi.NewPreviewer(nil, uint8(cfg.MIDI.PreviewChannel),
		time.Duration(cfg.MIDI.PreviewMillis)*time.Millisecond)

	// Create MIDI port manager (handles hot-plug)
	ports := midi.NewPortManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ports.Run(ctx)
	go pl.Run(ctx)

	m, err := tui.NewModel(cfg, tr, pl, ports, pv, th)
	if err != nil {
		fail(err)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func fail(err error) {
	if issue := fmsg.GetIssue(err); issue != "" {
		fmt.Printf("Error: %s\n", issue)
	} else {
		fmt.Printf("Error: %v\n", err)
	}
	debug.Log("main", "fatal: %v", err)
	os.Exit(1)
}
