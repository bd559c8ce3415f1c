package term

import (
	"github.com/gdamore/tcell/v2"

	"survivors/sim"
)

// DefaultHoldTicks covers the gap between a first key press and the terminal's auto-repeat
const DefaultHoldTicks = 20

// HeldKeys tracks directions by recency, since terminals report presses but never releases.
// A direction counts as held for holdTicks after its last press.
type HeldKeys struct {
	holdTicks uint64
	now       uint64
	lastPress map[sim.Direction]uint64
}

// NewHeldKeys creates a tracker with the given hold window
func NewHeldKeys(holdTicks uint64) *HeldKeys {
	return &HeldKeys{
		holdTicks: holdTicks,
		lastPress: make(map[sim.Direction]uint64),
	}
}

// Press records a press of d; the opposite direction is released
func (h *HeldKeys) Press(d sim.Direction) {
	h.lastPress[d] = h.now
	delete(h.lastPress, opposite(d))
}

// Advance moves the tracker clock by one tick
func (h *HeldKeys) Advance() {
	h.now++
}

// Release forgets every press
func (h *HeldKeys) Release() {
	clear(h.lastPress)
}

// Held implements sim.Input
func (h *HeldKeys) Held(d sim.Direction) bool {
	pressed, ok := h.lastPress[d]
	if !ok {
		return false
	}
	return h.now-pressed < h.holdTicks
}

func opposite(d sim.Direction) sim.Direction {
	switch d {
	case sim.DirUp:
		return sim.DirDown
	case sim.DirDown:
		return sim.DirUp
	case sim.DirLeft:
		return sim.DirRight
	default:
		return sim.DirLeft
	}
}

// directionOf maps arrow keys and WASD to a direction
func directionOf(ev *tcell.EventKey) (sim.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return sim.DirUp, true
	case tcell.KeyDown:
		return sim.DirDown, true
	case tcell.KeyLeft:
		return sim.DirLeft, true
	case tcell.KeyRight:
		return sim.DirRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return sim.DirUp, true
		case 's', 'S':
			return sim.DirDown, true
		case 'a', 'A':
			return sim.DirLeft, true
		case 'd', 'D':
			return sim.DirRight, true
		}
	}
	return 0, false
}
