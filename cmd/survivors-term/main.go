package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"survivors/sim"
	"survivors/term"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	seed := flag.Int64("seed", 0, "random seed for the first run (0 picks one from the clock)")
	logPath := flag.String("log", "", "write lifecycle logs to this file")
	flag.Parse()

	config := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = sim.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// The terminal is owned by the screen, so logs only go to a file
	var logger *log.Logger
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = log.New(f, "[survivors-term] ", log.LstdFlags)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	app, err := term.NewApp(screen, config, *seed, logger)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	runErr := app.Run(context.Background())
	screen.Fini()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
