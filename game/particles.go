package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"survivors/sim"
)

// Particle represents a single particle of a kill burst
type Particle struct {
	pos      sim.Vec2
	vel      sim.Vec2
	age      int // age in ticks
	lifetime int // total lifetime in ticks
	color    color.NRGBA
	size     float64
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.age < p.lifetime
}

// ParticleSystem emits short bursts where enemies die. It is cosmetic only
// and never feeds back into the simulation.
type ParticleSystem struct {
	particles    []Particle
	maxParticles int
	rng          *rand.Rand

	perBurst    int
	speedMin    float64
	speedMax    float64
	lifetimeMin int
	lifetimeMax int
	sizeMin     float64
	sizeMax     float64
	colorBase   color.NRGBA

	// lastSeen holds the positions of the enemies alive after the previous step
	lastSeen map[sim.EntityID]sim.Vec2
	seen     map[sim.EntityID]sim.Vec2
}

// NewParticleSystem creates a particle system with kill-burst settings
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		particles:    make([]Particle, 0, 512),
		maxParticles: 2000,
		rng:          rand.New(rand.NewSource(seed)),
		perBurst:     14,
		speedMin:     0.5,
		speedMax:     2.5,
		lifetimeMin:  15,
		lifetimeMax:  35,
		sizeMin:      1,
		sizeMax:      3,
		colorBase:    color.NRGBA{255, 90, 40, 255},
		lastSeen:     make(map[sim.EntityID]sim.Vec2),
		seen:         make(map[sim.EntityID]sim.Vec2),
	}
}

// Observe bursts at every enemy that disappeared since the previous call.
// Enemies only leave the simulation by dying.
func (ps *ParticleSystem) Observe(enemies []sim.Enemy) {
	clear(ps.seen)
	for _, e := range enemies {
		ps.seen[e.ID] = e.Pos
	}
	for id, pos := range ps.lastSeen {
		if _, ok := ps.seen[id]; !ok {
			ps.Burst(pos)
		}
	}
	ps.lastSeen, ps.seen = ps.seen, ps.lastSeen
}

// Reset drops every particle and forgets the tracked enemies
func (ps *ParticleSystem) Reset() {
	ps.particles = ps.particles[:0]
	clear(ps.lastSeen)
}

// Burst emits perBurst particles at pos
func (ps *ParticleSystem) Burst(pos sim.Vec2) {
	for i := 0; i < ps.perBurst && len(ps.particles) < ps.maxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.speedMin + ps.rng.Float64()*(ps.speedMax-ps.speedMin)
		shade := uint8(ps.rng.Intn(80))

		ps.particles = append(ps.particles, Particle{
			pos:      pos,
			vel:      sim.FromAngle(angle).Scale(speed),
			lifetime: ps.lifetimeMin + ps.rng.Intn(ps.lifetimeMax-ps.lifetimeMin+1),
			color:    color.NRGBA{R: ps.colorBase.R, G: ps.colorBase.G + shade, B: ps.colorBase.B, A: ps.colorBase.A},
			size:     ps.sizeMin + ps.rng.Float64()*(ps.sizeMax-ps.sizeMin),
		})
	}
}

// Update ages and moves every particle by one tick
func (ps *ParticleSystem) Update() {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		p.age++
		p.pos = p.pos.Add(p.vel)
		p.vel = p.vel.Scale(0.94)
		if p.IsAlive() {
			kept = append(kept, p)
		}
	}
	ps.particles = kept
}

// Len returns the number of live particles
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Draw renders all particles, fading them out with age
func (ps *ParticleSystem) Draw(screen *ebiten.Image, camera *Camera) {
	for _, p := range ps.particles {
		x, y := camera.WorldToScreen(p.pos)
		clr := p.color
		clr.A = uint8(float64(clr.A) * (1 - float64(p.age)/float64(p.lifetime)))
		vector.DrawFilledCircle(screen, x, y, camera.Scaled(p.size), clr, true)
	}
}
