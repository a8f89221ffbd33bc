//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"grove/internal/app"
	"grove/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	session, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("grove: %v", err)
	}
	defer session.Close()

	sprites, err := render.LoadSprites(session.File.Sprites)
	if err != nil {
		log.Fatalf("grove: %v", err)
	}

	scale := cfg.WindowScale
	if session.File.Window.Scale > 0 && !flagSet("window-scale") {
		scale = session.File.Window.Scale
	}
	title := session.File.Window.Title
	if title == "" {
		title = "grove: " + session.World.Name()
	}

	game := app.New(session, sprites, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(session.TPS)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
