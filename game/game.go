package game

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"survivors/sim"
)

// Game adapts a sim.Simulation to ebiten's fixed-rate Update/Draw loop
type Game struct {
	config    Config
	sim       *sim.Simulation
	renderer  *Renderer
	camera    *Camera
	input     *KeyboardInput
	menu      *UpgradeMenu
	particles *ParticleSystem
	profiler  *Profiler
	logger    *log.Logger

	seed   int64
	runs   int
	title  bool
	result *sim.Result
}

// NewGame creates a game showing the title screen.
// Runs use seed, seed+1, ... so restarts differ but stay reproducible.
func NewGame(config Config, seed int64, keys KeySource, logger *log.Logger) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = ebitenKeys{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	camera := NewCamera(config.ViewportWidth, config.ViewportHeight)
	g := &Game{
		config:    config,
		renderer:  NewRenderer(camera, config),
		camera:    camera,
		input:     NewKeyboardInput(keys),
		menu:      &UpgradeMenu{},
		particles: NewParticleSystem(seed),
		logger:    logger,
		seed:      seed,
		title:     true,
	}

	if config.Profiling.Enabled {
		profiler, err := NewProfiler(config.Profiling, logger)
		if err != nil {
			return nil, err
		}
		g.profiler = profiler
	}

	if err := g.newRun(); err != nil {
		return nil, err
	}
	return g, nil
}

// newRun replaces the simulation with a fresh one in PhaseNotStarted
func (g *Game) newRun() error {
	s, err := sim.NewSimulation(g.config.Config, g.seed+int64(g.runs))
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}
	g.runs++
	s.SetMenu(g.menu)
	s.SetObserver(g)
	s.SetLogger(g.logger)

	g.sim = s
	g.menu.Close()
	g.particles.Reset()
	g.result = nil
	return nil
}

// GameOver implements sim.Observer
func (g *Game) GameOver(result sim.Result) {
	g.result = &result
}

// Simulation returns the current run
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Update advances the game by one tick
func (g *Game) Update() error {
	if g.title {
		if g.input.Confirm() {
			g.title = false
			return g.sim.Start()
		}
		return nil
	}

	switch g.sim.Phase() {
	case sim.PhaseRunning:
		g.step()
	case sim.PhaseChoosingUpgrade:
		return g.updateMenu()
	case sim.PhaseGameOver:
		if g.input.ShouldRestart() {
			if err := g.newRun(); err != nil {
				return err
			}
			return g.sim.Start()
		}
	}
	return nil
}

func (g *Game) step() {
	start := time.Now()
	g.sim.Step(g.input)
	took := time.Since(start)

	snap := g.sim.Snapshot()
	g.particles.Observe(snap.Enemies)
	g.particles.Update()

	if g.profiler != nil {
		reason := fmt.Sprintf("tick%d-enemies%d-projectiles%d", snap.Tick, len(snap.Enemies), len(snap.Projectiles))
		g.profiler.ObserveStep(took, reason)
	}
}

// updateMenu handles upgrade selection: number keys pick directly,
// arrows move the highlight and Enter confirms
func (g *Game) updateMenu() error {
	if !g.menu.Open() {
		return nil
	}
	if delta := g.input.MenuDelta(); delta != 0 {
		g.menu.Move(delta)
	}

	index, ok := g.input.ChoiceKey()
	if !ok && g.input.Confirm() {
		index, ok = g.menu.Selected(), true
	}
	if !ok || index >= len(g.menu.Options()) {
		return nil
	}

	// Close first: a chained level-up presents new options during ChooseUpgrade
	g.menu.Close()
	return g.sim.ChooseUpgrade(index)
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, Frame{
		Snapshot:  g.sim.Snapshot(),
		HUD:       g.sim.HUD(),
		Menu:      g.menu,
		Result:    g.result,
		Title:     g.title,
		Particles: g.particles,
	})
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth(), g.config.ScreenHeight()
}

// Close waits for a running profile capture to finish writing
func (g *Game) Close() {
	if g.profiler != nil {
		g.profiler.Wait()
	}
}
