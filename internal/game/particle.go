package game

import "math"

// Particle is one piece of crash debris. Colour and size interpolate linearly
// from their start to end values over the particle's lifetime.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Age     float64
	MaxLife float64

	StartCol, EndCol   RGB
	StartSize, EndSize float64
}

// Color returns the particle colour at its current age.
func (p *Particle) Color() RGB {
	return lerpRGB(p.StartCol, p.EndCol, p.progress())
}

// Size returns the particle radius at its current age, never below 1.
func (p *Particle) Size() float64 {
	s := math.Floor(p.StartSize + (p.EndSize-p.StartSize)*p.progress())
	return math.Max(1, s)
}

func (p *Particle) progress() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return clampF(p.Age/p.MaxLife, 0, 1)
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Update ages, moves and pulls down every particle, dropping expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Age += dt
		if p.Age >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += ParticleGravity * dt
		i++
	}
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// SpawnCrash throws a burst of debris up and outwards from (x, y).
func (ps *ParticleSystem) SpawnCrash(x, y float64, count int, r *Rand) {
	for _i := 0; _i < count; _i++ {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(100, 250)
		vx := math.Cos(ang) * spd
		vy := -math.Abs(math.Sin(ang) * spd * r.RangeF(1.0, 2.5))
		ps.Add(Particle{
			X: x, Y: y,
			VX: vx, VY: vy,
			MaxLife:  r.RangeF(ParticleMinLife, ParticleMinLife+ParticleLifeRange),
			StartCol: Palette.Debris,
			EndCol: RGB{
				R: uint8(r.Intn(50)),
				G: uint8(r.Intn(50)),
				B: uint8(r.Intn(50)),
			},
			StartSize: r.RangeF(10, 35),
			EndSize:   0,
		})
	}
}
