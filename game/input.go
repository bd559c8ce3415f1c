package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"survivors/sim"
)

// KeySource reports keyboard state; ebiten's polling functions in the game,
// a fake in tests
type KeySource interface {
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
}

// ebitenKeys reads the real keyboard
type ebitenKeys struct{}

func (ebitenKeys) Pressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (ebitenKeys) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// directionKeys maps each movement direction to arrow keys and WASD
var directionKeys = map[sim.Direction][]ebiten.Key{
	sim.DirUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	sim.DirDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	sim.DirLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	sim.DirRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// choiceKeys picks an upgrade directly by its position in the menu
var choiceKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// KeyboardInput provides movement from arrow keys or WASD
type KeyboardInput struct {
	keys KeySource
}

// NewKeyboardInput creates a keyboard input over keys
func NewKeyboardInput(keys KeySource) *KeyboardInput {
	return &KeyboardInput{keys: keys}
}

// Held implements sim.Input
func (k *KeyboardInput) Held(d sim.Direction) bool {
	for _, key := range directionKeys[d] {
		if k.keys.Pressed(key) {
			return true
		}
	}
	return false
}

// ChoiceKey returns the menu position of a just-pressed number key
func (k *KeyboardInput) ChoiceKey() (int, bool) {
	for i, key := range choiceKeys {
		if k.keys.JustPressed(key) {
			return i, true
		}
	}
	return 0, false
}

// MenuDelta returns -1 or +1 when a navigation key was just pressed
func (k *KeyboardInput) MenuDelta() int {
	switch {
	case k.keys.JustPressed(ebiten.KeyArrowUp), k.keys.JustPressed(ebiten.KeyArrowLeft), k.keys.JustPressed(ebiten.KeyW):
		return -1
	case k.keys.JustPressed(ebiten.KeyArrowDown), k.keys.JustPressed(ebiten.KeyArrowRight), k.keys.JustPressed(ebiten.KeyS):
		return 1
	}
	return 0
}

// Confirm returns true when Enter or Space was just pressed
func (k *KeyboardInput) Confirm() bool {
	return k.keys.JustPressed(ebiten.KeyEnter) || k.keys.JustPressed(ebiten.KeySpace)
}

// ShouldRestart returns true when R was just pressed
func (k *KeyboardInput) ShouldRestart() bool {
	return k.keys.JustPressed(ebiten.KeyR)
}
