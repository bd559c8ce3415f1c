package game

import "survivors/sim"

// UpgradeMenu holds the options of a pending level-up and the highlighted entry
type UpgradeMenu struct {
	options  []sim.Upgrade
	selected int
}

// PresentUpgradeChoices implements sim.Menu
func (m *UpgradeMenu) PresentUpgradeChoices(options []sim.Upgrade) {
	m.options = options
	m.selected = 0
}

// Open reports whether options are waiting for a choice
func (m *UpgradeMenu) Open() bool {
	return len(m.options) > 0
}

// Options returns the offered upgrades
func (m *UpgradeMenu) Options() []sim.Upgrade {
	return m.options
}

// Selected returns the highlighted index
func (m *UpgradeMenu) Selected() int {
	return m.selected
}

// Move shifts the highlight by delta, wrapping around
func (m *UpgradeMenu) Move(delta int) {
	n := len(m.options)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Close forgets the options once a choice was made
func (m *UpgradeMenu) Close() {
	m.options = nil
	m.selected = 0
}
