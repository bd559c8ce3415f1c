package script

import (
	"math"
	"sort"

	"survivors/sim"
)

// NearbyRadius is how far from the player enemies are reported to a pilot
const NearbyRadius = 400.0

// maxNearby caps the entity lists handed to a pilot
const maxNearby = 24

// PilotContext is passed to pilot scripts as input
type PilotContext struct {
	// Player state
	PlayerX      float64 `json:"playerX"`
	PlayerY      float64 `json:"playerY"`
	PlayerHP     float64 `json:"playerHP"`
	PlayerMaxHP  float64 `json:"playerMaxHP"`
	PlayerRadius float64 `json:"playerRadius"`
	AttackRange  float64 `json:"attackRange"`

	// Progress
	Level    int     `json:"level"`
	XP       float64 `json:"xp"`
	XPToNext float64 `json:"xpToNext"`
	Wave     int     `json:"wave"`
	Kills    int     `json:"kills"`
	Tick     uint64  `json:"tick"`

	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`

	// Nearest first
	NearbyEnemies []EntityInfo `json:"nearbyEnemies"`
	Orbs          []EntityInfo `json:"orbs"`

	// Set only while an upgrade choice is pending
	Choices []ChoiceInfo `json:"choices"`
}

// EntityInfo describes an entity relative to the player
type EntityInfo struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	HP       float64 `json:"hp"`
	MaxHP    float64 `json:"maxHP"`
	Radius   float64 `json:"radius"`
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
}

// ChoiceInfo describes one offered upgrade
type ChoiceInfo struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// BuildPilotContext creates a PilotContext from a snapshot and HUD of the same tick
func BuildPilotContext(snap sim.Snapshot, hud sim.HUD) PilotContext {
	p := snap.Player
	ctx := PilotContext{
		PlayerX:        p.Pos.X,
		PlayerY:        p.Pos.Y,
		PlayerHP:       p.HP,
		PlayerMaxHP:    p.MaxHP,
		PlayerRadius:   p.Radius,
		AttackRange:    p.AttackRange,
		Level:          hud.Level,
		XP:             hud.XP,
		XPToNext:       hud.XPToNext,
		Wave:           hud.Wave,
		Kills:          hud.Kills,
		Tick:           hud.Tick,
		ViewportWidth:  snap.Viewport.X,
		ViewportHeight: snap.Viewport.Y,
		NearbyEnemies:  []EntityInfo{},
		Orbs:           []EntityInfo{},
		Choices:        []ChoiceInfo{},
	}

	for _, e := range snap.Enemies {
		if e.Dead {
			continue
		}
		info := relativeTo(p.Pos, e.Pos)
		if info.Distance > NearbyRadius {
			continue
		}
		info.HP = e.HP
		info.MaxHP = e.MaxHP
		info.Radius = e.Radius
		ctx.NearbyEnemies = append(ctx.NearbyEnemies, info)
	}
	ctx.NearbyEnemies = nearestFirst(ctx.NearbyEnemies)

	for _, o := range snap.Orbs {
		if o.Collected {
			continue
		}
		info := relativeTo(p.Pos, o.Pos)
		info.Radius = o.Radius
		ctx.Orbs = append(ctx.Orbs, info)
	}
	ctx.Orbs = nearestFirst(ctx.Orbs)

	for i, u := range snap.Choices {
		ctx.Choices = append(ctx.Choices, ChoiceInfo{
			Index:       i,
			Label:       u.Label(),
			Description: u.Description(),
		})
	}
	return ctx
}

func relativeTo(from, to sim.Vec2) EntityInfo {
	d := to.Sub(from)
	return EntityInfo{
		X:        to.X,
		Y:        to.Y,
		Distance: d.Len(),
		Angle:    math.Atan2(d.Y, d.X),
	}
}

func nearestFirst(infos []EntityInfo) []EntityInfo {
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Distance < infos[j].Distance
	})
	if len(infos) > maxNearby {
		infos = infos[:maxNearby]
	}
	return infos
}
