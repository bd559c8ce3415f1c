package sim

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyStarted is returned by Start on a simulation that left PhaseNotStarted
	ErrAlreadyStarted = errors.New("simulation already started")

	// ErrNotChoosing is returned by ChooseUpgrade when no level-up is pending
	ErrNotChoosing = errors.New("no upgrade choice pending")

	// ErrInvalidChoice is returned by ChooseUpgrade for an index outside the offered options
	ErrInvalidChoice = errors.New("invalid upgrade choice")
)

// Phase is the step driver state
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseChoosingUpgrade
	PhaseGameOver
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhaseChoosingUpgrade:
		return "choosing-upgrade"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// State is every mutable entity collection of one run
type State struct {
	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	Orbs        []Orb
	Daggers     []Vec2

	Tick  uint64
	Wave  int
	Kills int
	Phase Phase

	// Choices holds the pending upgrade options while Phase is PhaseChoosingUpgrade
	Choices []Upgrade
}

// Result is reported to the Observer when the run ends
type Result struct {
	RunID string
	Level int
	Wave  int
	Tick  uint64
	Kills int
}

// Simulation is the step driver: it owns the state and advances it one tick per Step
type Simulation struct {
	config Config
	runID  uuid.UUID
	rng    *rand.Rand

	state  State
	lastID EntityID

	spawner     *Spawner
	armory      *Armory
	collisions  *CollisionSystem
	progression *Progression

	menu     Menu
	observer Observer
	logger   *log.Logger

	gameOverSent bool
}

// NewSimulation creates a simulation in PhaseNotStarted.
// Two simulations with the same config and seed evolve identically for identical input.
func NewSimulation(config Config, seed int64) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		config: config,
		runID:  uuid.New(),
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard, "", 0),
	}
	s.spawner = NewSpawner(config, s.rng, s.nextID)
	s.armory = NewArmory(config, s.rng, s.nextID)
	s.collisions = NewCollisionSystem(config, s.nextID)
	s.progression = NewProgression(config, s.rng)

	s.state = State{
		Player:      newPlayer(config),
		Enemies:     make([]Enemy, 0, 64),
		Projectiles: make([]Projectile, 0, 128),
		Orbs:        make([]Orb, 0, 64),
		Phase:       PhaseNotStarted,
	}
	return s, nil
}

// nextID generates the next entity ID of this run
func (s *Simulation) nextID() EntityID {
	s.lastID++
	return s.lastID
}

// SetMenu sets the collaborator that receives upgrade options
func (s *Simulation) SetMenu(menu Menu) {
	s.menu = menu
}

// SetObserver sets the collaborator notified on game over
func (s *Simulation) SetObserver(observer Observer) {
	s.observer = observer
}

// SetLogger sets the lifecycle logger; nil silences it
func (s *Simulation) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s.logger = logger
}

// RunID returns the unique identifier of this run
func (s *Simulation) RunID() string {
	return s.runID.String()
}

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() Config {
	return s.config
}

// Phase returns the current step driver state
func (s *Simulation) Phase() Phase {
	return s.state.Phase
}

// Start moves the simulation from PhaseNotStarted to PhaseRunning
func (s *Simulation) Start() error {
	if s.state.Phase != PhaseNotStarted {
		return fmt.Errorf("%w (phase %s)", ErrAlreadyStarted, s.state.Phase)
	}
	s.state.Phase = PhaseRunning
	s.logger.Printf("run %s started", s.runID)
	return nil
}

// Step advances the simulation by one tick and returns the resulting phase.
// Outside PhaseRunning nothing is mutated.
func (s *Simulation) Step(input Input) Phase {
	st := &s.state
	if st.Phase != PhaseRunning {
		return st.Phase
	}
	st.Tick++

	s.movePlayer(input)

	if enemy, ok := s.spawner.TrySpawn(st.Tick, st.Player.Level); ok {
		st.Enemies = append(st.Enemies, enemy)
		st.Wave++
	}

	s.moveEnemies()
	s.moveOrbs()

	// Existing projectiles move before this tick's volley is fired
	advanceProjectiles(st.Projectiles, s.config.ViewportWidth, s.config.ViewportHeight)
	s.armory.AdvanceDaggers()
	st.Projectiles = append(st.Projectiles, s.armory.Fire(st.Tick, st.Player, st.Enemies)...)
	st.Daggers = s.armory.DaggerPoints(st.Player, st.Daggers[:0])

	died := s.collisions.Resolve(st)
	s.removeDead()

	if died {
		s.endGame()
		return st.Phase
	}

	s.checkProgression()
	return st.Phase
}

// ChooseUpgrade applies the pending option at index and resumes the simulation.
// If the carried-over XP already covers the next level, the next choice is offered at once.
func (s *Simulation) ChooseUpgrade(index int) error {
	st := &s.state
	if st.Phase != PhaseChoosingUpgrade {
		return fmt.Errorf("%w (phase %s)", ErrNotChoosing, st.Phase)
	}
	if index < 0 || index >= len(st.Choices) {
		return fmt.Errorf("%w: %d of %d options", ErrInvalidChoice, index, len(st.Choices))
	}

	chosen := st.Choices[index]
	st.Player = chosen.Apply(st.Player)
	st.Choices = nil
	st.Phase = PhaseRunning
	s.logger.Printf("run %s level %d: chose %s", s.runID, st.Player.Level, chosen)

	s.checkProgression()
	return nil
}

// movePlayer displaces the player by the held keys, then clamps it into the viewport
func (s *Simulation) movePlayer(input Input) {
	p := &s.state.Player
	p.Pos = p.Pos.Add(moveVector(input).Scale(p.Speed))
	p.Pos.X = clamp(p.Pos.X, p.Radius, s.config.ViewportWidth-p.Radius)
	p.Pos.Y = clamp(p.Pos.Y, p.Radius, s.config.ViewportHeight-p.Radius)
}

// moveEnemies walks every enemy toward the player; enemies already touching hold position
func (s *Simulation) moveEnemies() {
	player := s.state.Player
	for i := range s.state.Enemies {
		e := &s.state.Enemies[i]
		delta := player.Pos.Sub(e.Pos)
		if delta.Len() < player.Radius+e.Radius {
			continue
		}
		dir, ok := delta.Normalize()
		if !ok {
			continue
		}
		e.Pos = e.Pos.Add(dir.Scale(e.Speed))
	}
}

// moveOrbs drifts every orb toward the player
func (s *Simulation) moveOrbs() {
	target := s.state.Player.Pos
	for i := range s.state.Orbs {
		o := &s.state.Orbs[i]
		o.Pos = MoveToward(o.Pos, target, s.config.Orb.Speed)
	}
}

// removeDead compacts every collection after the resolution pass
func (s *Simulation) removeDead() {
	st := &s.state
	st.Enemies = compact(st.Enemies, func(e *Enemy) bool { return e.Dead })
	st.Projectiles = compact(st.Projectiles, func(p *Projectile) bool { return p.Dead })
	st.Orbs = compact(st.Orbs, func(o *Orb) bool { return o.Collected })
}

// checkProgression runs the level-up check and hands any choices to the menu
func (s *Simulation) checkProgression() {
	st := &s.state
	choices, leveled := s.progression.Check(st)
	if !leveled {
		return
	}
	s.logger.Printf("run %s reached level %d at tick %d", s.runID, st.Player.Level, st.Tick)
	if len(choices) > 0 && s.menu != nil {
		options := make([]Upgrade, len(choices))
		copy(options, choices)
		s.menu.PresentUpgradeChoices(options)
	}
}

// endGame enters the terminal phase and notifies the observer exactly once
func (s *Simulation) endGame() {
	st := &s.state
	st.Phase = PhaseGameOver
	st.Choices = nil
	if s.gameOverSent {
		return
	}
	s.gameOverSent = true

	result := s.Result()
	s.logger.Printf("run %s over: level %d, wave %d, %d kills in %d ticks",
		result.RunID, result.Level, result.Wave, result.Kills, result.Tick)
	if s.observer != nil {
		s.observer.GameOver(result)
	}
}

// Result returns the run summary; it is final once the phase is PhaseGameOver
func (s *Simulation) Result() Result {
	return Result{
		RunID: s.runID.String(),
		Level: s.state.Player.Level,
		Wave:  s.state.Wave,
		Tick:  s.state.Tick,
		Kills: s.state.Kills,
	}
}
