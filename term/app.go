package term

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"survivors/sim"
)

// TickRate is the simulation rate of the terminal host
const TickRate = 60

// App runs a simulation on a tcell screen
type App struct {
	screen   tcell.Screen
	config   sim.Config
	renderer *Renderer
	keys     *HeldKeys
	logger   *log.Logger

	sim    *sim.Simulation
	seed   int64
	runs   int
	result *sim.Result
}

// NewApp creates an app drawing on an initialized screen and starts the first run
func NewApp(screen tcell.Screen, config sim.Config, seed int64, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := &App{
		screen:   screen,
		config:   config,
		renderer: NewRenderer(screen, sim.Vec2{X: config.ViewportWidth, Y: config.ViewportHeight}),
		keys:     NewHeldKeys(DefaultHoldTicks),
		logger:   logger,
		seed:     seed,
	}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

// restart replaces the simulation with a fresh running one
func (a *App) restart() error {
	s, err := sim.NewSimulation(a.config, a.seed+int64(a.runs))
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}
	a.runs++
	s.SetObserver(a)
	s.SetLogger(a.logger)
	if err := s.Start(); err != nil {
		return err
	}

	a.sim = s
	a.result = nil
	a.keys.Release()
	return nil
}

// GameOver implements sim.Observer
func (a *App) GameOver(result sim.Result) {
	a.result = &result
}

// Simulation returns the current run
func (a *App) Simulation() *sim.Simulation {
	return a.sim
}

// HandleEvent applies one terminal event; it returns false when the app should quit
func (a *App) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false, nil
		}
		if d, ok := directionOf(ev); ok {
			a.keys.Press(d)
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return true, nil
		}

		switch r := ev.Rune(); {
		case r >= '1' && r <= '9' && a.sim.Phase() == sim.PhaseChoosingUpgrade:
			index := int(r - '1')
			if index < len(a.sim.Snapshot().Choices) {
				if err := a.sim.ChooseUpgrade(index); err != nil {
					return false, err
				}
				a.keys.Release()
			}
		case (r == 'r' || r == 'R') && a.sim.Phase() == sim.PhaseGameOver:
			if err := a.restart(); err != nil {
				return false, err
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true, nil
}

// Tick advances the simulation once and redraws
func (a *App) Tick() {
	a.sim.Step(a.keys)
	a.keys.Advance()
	a.renderer.Draw(a.sim.Snapshot(), a.sim.HUD(), a.result)
}

// Run polls terminal events and ticks at TickRate until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := a.pollEvents(done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			keepGoing, err := a.HandleEvent(ev)
			if err != nil || !keepGoing {
				return err
			}

		case <-ticker.C:
			a.Tick()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed
func (a *App) pollEvents(done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
