package sim

// Snapshot is a read-only copy of the simulation for renderers
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Viewport    Vec2
	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	Orbs        []Orb
	Daggers     []Vec2
	Choices     []Upgrade
}

// HUD holds the plain values a heads-up display shows
type HUD struct {
	RunID    string
	Wave     int
	Level    int
	XP       float64
	XPToNext float64
	HP       float64
	MaxHP    float64
	Tick     uint64
	Kills    int
	Phase    Phase
}

// Snapshot copies the current state; the caller may keep or modify it freely
func (s *Simulation) Snapshot() Snapshot {
	st := &s.state
	return Snapshot{
		Tick:        st.Tick,
		Phase:       st.Phase,
		Viewport:    Vec2{X: s.config.ViewportWidth, Y: s.config.ViewportHeight},
		Player:      st.Player,
		Enemies:     append([]Enemy(nil), st.Enemies...),
		Projectiles: append([]Projectile(nil), st.Projectiles...),
		Orbs:        append([]Orb(nil), st.Orbs...),
		Daggers:     append([]Vec2(nil), st.Daggers...),
		Choices:     append([]Upgrade(nil), st.Choices...),
	}
}

// HUD returns the current display values
func (s *Simulation) HUD() HUD {
	st := &s.state
	return HUD{
		RunID:    s.runID.String(),
		Wave:     st.Wave,
		Level:    st.Player.Level,
		XP:       st.Player.XP,
		XPToNext: s.progression.Threshold(st.Player.Level),
		HP:       st.Player.HP,
		MaxHP:    st.Player.MaxHP,
		Tick:     st.Tick,
		Kills:    st.Kills,
		Phase:    st.Phase,
	}
}
