package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"survivors/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	seed := flag.Int64("seed", 0, "random seed for the first run (0 picks one from the clock)")
	flag.Parse()

	logger := log.New(os.Stderr, "[survivors] ", log.LstdFlags)

	config, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g, err := game.NewGame(config, *seed, nil, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(int(float64(config.ScreenWidth())*config.Window.Scale), int(float64(config.ScreenHeight())*config.Window.Scale))
	ebiten.SetWindowTitle(config.Window.Title)
	ebiten.SetWindowResizable(config.Window.Resizable)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
