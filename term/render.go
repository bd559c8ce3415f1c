package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"survivors/sim"
)

// hudRows are reserved at the bottom of the screen
const hudRows = 1

var (
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHurt    = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleBullet  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLaser   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleGrenade = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleBlast   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleDagger  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleOrb     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Glyphs used on the grid
const (
	glyphPlayer  = '@'
	glyphEnemy   = 'e'
	glyphBullet  = '.'
	glyphLaser   = '*'
	glyphGrenade = 'o'
	glyphBlast   = '#'
	glyphDagger  = '+'
	glyphOrb     = '°'
)

// Renderer scales the arena onto the character grid of a tcell screen
type Renderer struct {
	screen   tcell.Screen
	viewport sim.Vec2
}

// NewRenderer creates a renderer for an arena of the given size
func NewRenderer(screen tcell.Screen, viewport sim.Vec2) *Renderer {
	return &Renderer{screen: screen, viewport: viewport}
}

// Cell maps an arena position to a grid cell; ok is false off the arena
func (r *Renderer) Cell(p sim.Vec2) (x, y int, ok bool) {
	w, h := r.screen.Size()
	rows := h - hudRows
	if w <= 0 || rows <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(p.X / r.viewport.X * float64(w)))
	y = int(math.Floor(p.Y / r.viewport.Y * float64(rows)))
	return x, y, x >= 0 && x < w && y >= 0 && y < rows
}

func (r *Renderer) put(p sim.Vec2, glyph rune, style tcell.Style) {
	if x, y, ok := r.Cell(p); ok {
		r.screen.SetContent(x, y, glyph, nil, style)
	}
}

// Draw renders one frame
func (r *Renderer) Draw(snap sim.Snapshot, hud sim.HUD, result *sim.Result) {
	r.screen.Clear()

	for _, o := range snap.Orbs {
		r.put(o.Pos, glyphOrb, styleOrb)
	}
	for _, p := range snap.Projectiles {
		r.drawProjectile(p)
	}
	for _, e := range snap.Enemies {
		style := styleEnemy
		if e.HP < e.MaxHP {
			style = styleHurt
		}
		r.put(e.Pos, glyphEnemy, style)
	}
	for _, d := range snap.Daggers {
		r.put(d, glyphDagger, styleDagger)
	}
	r.put(snap.Player.Pos, glyphPlayer, stylePlayer)

	r.drawHUD(hud)

	switch snap.Phase {
	case sim.PhaseChoosingUpgrade:
		r.drawMenu(snap.Choices, hud.Level)
	case sim.PhaseGameOver:
		r.drawGameOver(result, hud)
	}

	r.screen.Show()
}

func (r *Renderer) drawProjectile(p sim.Projectile) {
	switch p.Kind {
	case sim.ProjectileBullet:
		r.put(p.Pos, glyphBullet, styleBullet)
	case sim.ProjectileLaser:
		r.drawSegment(p.Pos, p.BeamEnd(), glyphLaser, styleLaser)
	case sim.ProjectileGrenade:
		if p.Phase == sim.GrenadeArmed {
			r.put(p.Pos, glyphGrenade, styleGrenade)
			return
		}
		r.drawRing(p.Pos, p.BlastRadius*p.ExplosionProgress(), glyphBlast, styleBlast)
	}
}

// drawSegment samples a segment at roughly one point per cell
func (r *Renderer) drawSegment(a, b sim.Vec2, glyph rune, style tcell.Style) {
	w, _ := r.screen.Size()
	step := r.viewport.X / float64(max(w, 1))
	n := int(sim.Distance(a, b)/step) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		r.put(a.Add(b.Sub(a).Scale(t)), glyph, style)
	}
}

func (r *Renderer) drawRing(center sim.Vec2, radius float64, glyph rune, style tcell.Style) {
	const samples = 24
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / samples
		r.put(center.Add(sim.FromAngle(angle).Scale(radius)), glyph, style)
	}
}

func (r *Renderer) drawHUD(hud sim.HUD) {
	w, h := r.screen.Size()
	line := fmt.Sprintf(" Wave %d  Level %d  XP %.0f/%.0f  HP %.0f/%.0f  Kills %d  [q] quit",
		hud.Wave, hud.Level, hud.XP, hud.XPToNext, hud.HP, hud.MaxHP, hud.Kills)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, styleHUD)
	}
	r.text(0, h-1, line, styleHUD)
}

func (r *Renderer) drawMenu(choices []sim.Upgrade, level int) {
	lines := []string{fmt.Sprintf("Level %d! Choose an upgrade:", level), ""}
	for i, u := range choices {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, u.Label(), u.Description()))
	}
	r.box(lines, styleTitle)
}

func (r *Renderer) drawGameOver(result *sim.Result, hud sim.HUD) {
	level, wave, kills := hud.Level, hud.Wave, hud.Kills
	if result != nil {
		level, wave, kills = result.Level, result.Wave, result.Kills
	}
	r.box([]string{
		"GAME OVER",
		"",
		fmt.Sprintf("Level Reached: %d", level),
		fmt.Sprintf("Wave %d, %d kills", wave, kills),
		"",
		"[r] restart  [q] quit",
	}, styleTitle)
}

// box draws lines centered on the arena, the first line in headStyle
func (r *Renderer) box(lines []string, headStyle tcell.Style) {
	w, h := r.screen.Size()
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	left := max((w-width)/2-2, 0)
	top := max((h-hudRows-len(lines))/2-1, 0)

	for y := top; y < top+len(lines)+2 && y < h-hudRows; y++ {
		for x := left; x < left+width+4 && x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, styleText)
		}
	}
	for i, l := range lines {
		style := styleText
		if i == 0 {
			style = headStyle
		}
		r.text(left+2, top+1+i, l, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, c := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}
