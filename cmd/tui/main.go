package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/threecushion/backend/internal/audio"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/tui"
)

func main() {
	sound := flag.Bool("sound", false, "play a tone after each edit")
	flag.Parse()

	cfg := config.Load()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[TUI] Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[TUI] Failed to initialize screen: %v", err)
	}

	// Log lines would corrupt the screen while it is active.
	log.SetOutput(io.Discard)

	var player tui.Player
	if *sound {
		cue := audio.NewCue(0.5)
		if err := cue.Initialize(); err == nil {
			defer cue.Close()
			player = cue
		}
	}

	editor := tui.NewEditor(game.InitialLayout(), cfg.Projection())
	app := tui.NewApp(screen, editor, player)
	app.Run()
	screen.Fini()

	log.SetOutput(os.Stderr)
	for _, b := range editor.Layout().Balls() {
		log.Printf("[TUI] %-6s x=%.1f y=%.1f vx=%.1f vy=%.1f", b.Color, b.X, b.Y, b.VX, b.VY)
	}
}
