package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/threecushion/backend/internal/audio"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/desktop"
	"github.com/threecushion/backend/internal/game"
)

func main() {
	sound := flag.Bool("sound", false, "play a tone after each edit")
	flag.Parse()

	cfg := config.Load()

	var player desktop.Player
	if *sound {
		cue := audio.NewCue(0.5)
		if err := cue.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer cue.Close()
			player = cue
		}
	}

	g := desktop.NewGame(game.InitialLayout(), cfg.Projection(), desktop.ZenityPrompter{}, player)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Three-cushion trajectories - 1/2/3 ball, X/Y/V/W edit, R reset, Q quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Failed to run window: %v", err)
	}
}
