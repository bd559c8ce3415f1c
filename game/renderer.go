package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"survivors/sim"
)

var (
	colorBackground = color.RGBA{20, 20, 40, 255}
	colorPlayer     = color.RGBA{0, 255, 0, 255}
	colorEnemy      = color.RGBA{255, 0, 0, 255}
	colorBullet     = color.RGBA{255, 255, 0, 255}
	colorLaser      = color.RGBA{120, 200, 255, 255}
	colorGrenade    = color.RGBA{90, 90, 60, 255}
	colorBlast      = color.RGBA{255, 140, 0, 255}
	colorDagger     = color.RGBA{230, 230, 230, 255}
	colorOrb        = color.RGBA{80, 220, 255, 255}
	colorRange      = color.RGBA{0, 255, 0, 40}
	colorBarBack    = color.RGBA{100, 0, 0, 255}
	colorBarFill    = color.RGBA{0, 255, 0, 255}
	colorXPBar      = color.RGBA{80, 160, 255, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 170}
	colorPanel      = color.RGBA{30, 30, 60, 240}
	colorHighlight  = color.RGBA{255, 220, 90, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorDimText    = color.RGBA{180, 180, 200, 255}
)

// lineHeight is the advance between text rows in basicfont.Face7x13
const lineHeight = 16

// Camera maps arena coordinates onto the screen
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a camera looking at the center of a width x height arena
func NewCamera(width, height float64) *Camera {
	return &Camera{
		X:      width / 2,
		Y:      height / 2,
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(p sim.Vec2) (float32, float32) {
	sx := (p.X-c.X)*c.Zoom + c.Width/2
	sy := (p.Y-c.Y)*c.Zoom + c.Height/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) sim.Vec2 {
	return sim.Vec2{
		X: (sx-c.Width/2)/c.Zoom + c.X,
		Y: (sy-c.Height/2)/c.Zoom + c.Y,
	}
}

// Scaled converts a world length to screen pixels
func (c *Camera) Scaled(length float64) float32 {
	return float32(length * c.Zoom)
}

// Renderer draws snapshots and overlays
type Renderer struct {
	camera *Camera
	config Config
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera, config Config) *Renderer {
	return &Renderer{camera: camera, config: config}
}

// Frame is everything one Draw call needs
type Frame struct {
	Snapshot sim.Snapshot
	HUD      sim.HUD
	Menu     *UpgradeMenu
	Result   *sim.Result
	Title    bool

	// Particles is optional
	Particles *ParticleSystem
}

// Render draws the arena, the HUD and whichever overlay the phase calls for
func (r *Renderer) Render(screen *ebiten.Image, f Frame) {
	screen.Fill(colorBackground)
	if f.Title {
		r.drawTitle(screen)
		return
	}

	snap := f.Snapshot
	if r.config.Window.ShowAttackRange {
		x, y := r.camera.WorldToScreen(snap.Player.Pos)
		vector.StrokeCircle(screen, x, y, r.camera.Scaled(snap.Player.AttackRange), 1, colorRange, true)
	}
	for _, o := range snap.Orbs {
		r.drawCircle(screen, o.Pos, o.Radius, colorOrb)
	}
	for _, e := range snap.Enemies {
		r.drawCircle(screen, e.Pos, e.Radius, colorEnemy)
		if e.HP < e.MaxHP {
			r.drawHealthBar(screen, e.Pos, e.Radius, e.HP/e.MaxHP)
		}
	}
	for _, p := range snap.Projectiles {
		r.drawProjectile(screen, p)
	}
	for _, d := range snap.Daggers {
		r.drawCircle(screen, d, r.config.Weapons.DaggerHitRadius, colorDagger)
	}
	if f.Particles != nil {
		f.Particles.Draw(screen, r.camera)
	}

	player := snap.Player
	r.drawCircle(screen, player.Pos, player.Radius, colorPlayer)
	r.drawHealthBar(screen, player.Pos, player.Radius, player.HP/player.MaxHP)

	r.drawHUD(screen, f.HUD)

	switch snap.Phase {
	case sim.PhaseChoosingUpgrade:
		r.drawUpgradeMenu(screen, f.Menu, f.HUD.Level)
	case sim.PhaseGameOver:
		r.drawGameOver(screen, f.Result, f.HUD)
	}
}

func (r *Renderer) drawCircle(screen *ebiten.Image, pos sim.Vec2, radius float64, clr color.Color) {
	x, y := r.camera.WorldToScreen(pos)
	vector.DrawFilledCircle(screen, x, y, max(r.camera.Scaled(radius), 1), clr, true)
}

func (r *Renderer) drawProjectile(screen *ebiten.Image, p sim.Projectile) {
	switch p.Kind {
	case sim.ProjectileBullet:
		r.drawCircle(screen, p.Pos, p.Radius, colorBullet)
	case sim.ProjectileLaser:
		x0, y0 := r.camera.WorldToScreen(p.Pos)
		x1, y1 := r.camera.WorldToScreen(p.BeamEnd())
		clr := colorLaser
		if lifetime := r.config.Weapons.LaserLifetime; lifetime > 0 {
			clr.A = uint8(55 + 200*float64(p.Life)/float64(lifetime))
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, r.camera.Scaled(p.Radius), clr, true)
	case sim.ProjectileGrenade:
		if p.Phase == sim.GrenadeArmed {
			r.drawCircle(screen, p.Pos, p.Radius, colorGrenade)
			return
		}
		x, y := r.camera.WorldToScreen(p.Pos)
		progress := p.ExplosionProgress()
		clr := colorBlast
		clr.A = uint8(255 * (1 - progress))
		vector.StrokeCircle(screen, x, y, max(r.camera.Scaled(p.BlastRadius*progress), 1), 3, clr, true)
	}
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, pos sim.Vec2, radius, fraction float64) {
	x, y := r.camera.WorldToScreen(pos)
	width := r.camera.Scaled(radius * 2)
	height := r.camera.Scaled(4)
	barX := x - width/2
	barY := y - r.camera.Scaled(radius) - height - 2

	vector.DrawFilledRect(screen, barX, barY, width, height, colorBarBack, true)
	vector.DrawFilledRect(screen, barX, barY, width*float32(max(fraction, 0)), height, colorBarFill, true)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud sim.HUD) {
	line := fmt.Sprintf("Wave %d   Level %d   XP %.0f/%.0f   HP %.0f/%.0f   Kills %d",
		hud.Wave, hud.Level, hud.XP, hud.XPToNext, hud.HP, hud.MaxHP, hud.Kills)
	drawText(screen, line, 10, 20, colorText)

	// XP progress along the bottom edge
	w := float32(r.camera.Width)
	h := float32(r.camera.Height)
	fraction := float32(0)
	if hud.XPToNext > 0 {
		fraction = float32(min(hud.XP/hud.XPToNext, 1))
	}
	vector.DrawFilledRect(screen, 0, h-4, w*fraction, 4, colorXPBar, false)
}

func (r *Renderer) drawTitle(screen *ebiten.Image) {
	cx := int(r.camera.Width / 2)
	cy := int(r.camera.Height / 2)
	drawCentered(screen, r.config.Window.Title, cx, cy-lineHeight, colorHighlight)
	drawCentered(screen, "Move with arrow keys or WASD. Weapons fire on their own.", cx, cy+lineHeight, colorDimText)
	drawCentered(screen, "Press Enter to start", cx, cy+3*lineHeight, colorText)
}

func (r *Renderer) drawUpgradeMenu(screen *ebiten.Image, menu *UpgradeMenu, level int) {
	r.dim(screen)
	if menu == nil || !menu.Open() {
		return
	}

	options := menu.Options()
	panelW := float32(440)
	panelH := float32((len(options)*2 + 4) * lineHeight)
	px := float32(r.camera.Width)/2 - panelW/2
	py := float32(r.camera.Height)/2 - panelH/2
	vector.DrawFilledRect(screen, px, py, panelW, panelH, colorPanel, false)
	vector.StrokeRect(screen, px, py, panelW, panelH, 2, colorHighlight, false)

	x := int(px) + 20
	y := int(py) + 2*lineHeight
	drawText(screen, fmt.Sprintf("Level %d! Choose an upgrade:", level), x, y, colorHighlight)
	for i, u := range options {
		y += 2 * lineHeight
		clr := colorDimText
		marker := "  "
		if i == menu.Selected() {
			clr = colorText
			marker = "> "
		}
		drawText(screen, fmt.Sprintf("%s%d. %s", marker, i+1, u.Label()), x, y, clr)
		drawText(screen, u.Description(), x+28, y+lineHeight-2, colorDimText)
	}
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, result *sim.Result, hud sim.HUD) {
	r.dim(screen)
	level, wave, kills := hud.Level, hud.Wave, hud.Kills
	if result != nil {
		level, wave, kills = result.Level, result.Wave, result.Kills
	}

	cx := int(r.camera.Width / 2)
	cy := int(r.camera.Height / 2)
	drawCentered(screen, "GAME OVER", cx, cy-2*lineHeight, colorEnemy)
	drawCentered(screen, fmt.Sprintf("Level Reached: %d", level), cx, cy, colorText)
	drawCentered(screen, fmt.Sprintf("Wave %d, %d kills", wave, kills), cx, cy+lineHeight, colorDimText)
	drawCentered(screen, "Press R to restart", cx, cy+3*lineHeight, colorText)
}

func (r *Renderer) dim(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.camera.Width), float32(r.camera.Height), colorOverlay, false)
}

// drawText is a small wrapper that uses the classic text.Draw signature
func drawText(img *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(img, s, basicfont.Face7x13, x, y, clr)
}

// drawCentered draws s horizontally centered on cx; Face7x13 is monospaced
func drawCentered(img *ebiten.Image, s string, cx, y int, clr color.Color) {
	drawText(img, s, cx-len(s)*basicfont.Face7x13.Advance/2, y, clr)
}
