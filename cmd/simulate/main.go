package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"survivors/script"
	"survivors/sim"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	seed := flag.Int64("seed", 1, "random seed")
	ticks := flag.Uint64("ticks", 60*60*10, "tick limit, 0 runs until game over")
	scriptPath := flag.String("script", "", "pilot script defining decide(ctx) and optionally choose(ctx); the built-in pilot when empty")
	verbose := flag.Bool("v", false, "log lifecycle events and upgrade choices")
	flag.Parse()

	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	config := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = sim.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	pilot, err := loadPilot(*scriptPath)
	if err != nil {
		log.Fatalf("Failed to load pilot: %v", err)
	}

	s, err := sim.NewSimulation(config, *seed)
	if err != nil {
		log.Fatal(err)
	}

	var runLogger *log.Logger
	if *verbose {
		runLogger = logger
		s.SetLogger(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	out, err := script.NewRunner(pilot, *ticks, runLogger).Run(ctx, s)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	status := "tick limit reached"
	if out.Finished {
		status = "game over"
	}
	fmt.Printf("run %s (%s, seed %d, pilot %s)\n", out.Result.RunID, status, *seed, pilot.Name())
	fmt.Printf("  level reached: %d\n", out.Result.Level)
	fmt.Printf("  wave:          %d\n", out.Result.Wave)
	fmt.Printf("  kills:         %d\n", out.Result.Kills)
	fmt.Printf("  ticks:         %d (%.1fs of play, simulated in %v)\n",
		out.Result.Tick, float64(out.Result.Tick)/60, time.Since(start).Round(time.Millisecond))
	if len(out.Choices) > 0 {
		fmt.Printf("  upgrades:      %s\n", strings.Join(out.Choices, ", "))
	}
}

func loadPilot(path string) (*script.Pilot, error) {
	if path == "" {
		return script.DefaultPilot()
	}
	return script.LoadPilot(path)
}
