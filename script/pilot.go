package script

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/dop251/goja"

	"survivors/sim"
)

//go:embed pilots/default.js
var defaultPilotSource string

// deadzone is the per-axis share of a unit move vector below which no key is held.
// sin(22.5°) splits the circle into eight even sectors.
var deadzone = math.Sin(math.Pi / 8)

// ErrNoDecide is returned when a script does not define a decide function
var ErrNoDecide = errors.New("script must define a 'decide' function")

// Decision is returned from pilot scripts
type Decision struct {
	// Movement direction, any magnitude; only the direction is used
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`
}

// Held implements sim.Input by mapping the decision onto the eight key directions
func (d Decision) Held(dir sim.Direction) bool {
	v, ok := sim.Vec2{X: d.MoveX, Y: d.MoveY}.Normalize()
	if !ok {
		return false
	}
	switch dir {
	case sim.DirLeft:
		return v.X < -deadzone
	case sim.DirRight:
		return v.X > deadzone
	case sim.DirUp:
		return v.Y < -deadzone
	case sim.DirDown:
		return v.Y > deadzone
	}
	return false
}

// Pilot runs a JavaScript pilot using goja (pure Go JavaScript engine).
// The script defines decide(ctx) returning {moveX, moveY} and may define
// choose(ctx) returning the index of the upgrade to take.
type Pilot struct {
	mu     sync.Mutex
	name   string
	vm     *goja.Runtime
	decide goja.Callable
	choose goja.Callable
}

// NewPilot compiles code and looks up its entry points
func NewPilot(name, code string) (*Pilot, error) {
	program, err := goja.Compile(name, code, false)
	if err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	vm := goja.New()
	if _, err := vm.RunProgram(program); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	decide, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoDecide)
	}

	p := &Pilot{name: name, vm: vm, decide: decide}
	if choose, ok := goja.AssertFunction(vm.Get("choose")); ok {
		p.choose = choose
	}
	return p, nil
}

// LoadPilot reads a pilot script from disk
func LoadPilot(path string) (*Pilot, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return NewPilot(path, string(code))
}

// DefaultPilot returns the built-in pilot
func DefaultPilot() (*Pilot, error) {
	return NewPilot("default.js", defaultPilotSource)
}

// Name returns the script name the pilot was created with
func (p *Pilot) Name() string {
	return p.name
}

// Decide calls the script's decide function with the given context
func (p *Pilot) Decide(ctx PilotContext) (Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result, err := p.call(p.decide, ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("decide function failed: %w", err)
	}

	// Convert result to JSON and then to Decision
	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize result: %w", err)
	}

	var decision Decision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return Decision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, string(resultJSON))
	}
	return decision, nil
}

// Choose calls the script's choose function; without one the first option is taken
func (p *Pilot) Choose(ctx PilotContext) (int, error) {
	if len(ctx.Choices) == 0 {
		return 0, fmt.Errorf("no choices to pick from")
	}
	if p.choose == nil {
		return 0, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	result, err := p.call(p.choose, ctx)
	if err != nil {
		return 0, fmt.Errorf("choose function failed: %w", err)
	}

	index := int(result.ToInteger())
	if index < 0 || index >= len(ctx.Choices) {
		return 0, fmt.Errorf("choose returned %d, want 0..%d", index, len(ctx.Choices)-1)
	}
	return index, nil
}

// call passes ctx to fn as a plain JS object built from its JSON form
func (p *Pilot) call(fn goja.Callable, ctx PilotContext) (goja.Value, error) {
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize context: %w", err)
	}

	ctxObj, err := p.vm.RunString(fmt.Sprintf("(%s)", string(ctxJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse context: %w", err)
	}
	return fn(goja.Undefined(), ctxObj)
}
