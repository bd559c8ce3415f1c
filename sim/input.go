package sim

// Direction is one of the four movement keys
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Input reports which direction keys are currently held.
// The simulation reads it once per tick during player movement.
type Input interface {
	Held(d Direction) bool
}

// InputFunc adapts a function to Input
type InputFunc func(d Direction) bool

// Held implements Input
func (f InputFunc) Held(d Direction) bool {
	return f(d)
}

// HeldKeys is an Input backed by a set of held directions
type HeldKeys map[Direction]bool

// Held implements Input
func (h HeldKeys) Held(d Direction) bool {
	return h[d]
}

// NoInput holds no keys
var NoInput Input = HeldKeys(nil)

// Menu receives the upgrade options of a level-up.
// The host answers later through Simulation.ChooseUpgrade.
type Menu interface {
	PresentUpgradeChoices(options []Upgrade)
}

// Observer is notified once when the run ends
type Observer interface {
	GameOver(result Result)
}

// moveVector converts held keys into a unit (or zero) displacement direction
func moveVector(input Input) Vec2 {
	if input == nil {
		return Vec2{}
	}
	var v Vec2
	if input.Held(DirLeft) {
		v.X--
	}
	if input.Held(DirRight) {
		v.X++
	}
	if input.Held(DirUp) {
		v.Y--
	}
	if input.Held(DirDown) {
		v.Y++
	}
	unit, ok := v.Normalize()
	if !ok {
		return Vec2{}
	}
	return unit
}
