package game

import "math"

// RotateDir selects which way Rotate turns the ship.
type RotateDir int

const (
	RotateLeft RotateDir = iota
	RotateRight
)

// Lander is the ship state advanced by the flight model. X, Y is the top-left
// corner of the unrotated hull box; y grows downwards.
type Lander struct {
	X, Y          float64
	VX, VY        float64
	Rotation      float64 // degrees in [0, 360), 0 = nose up
	Fuel          float64
	Burning       bool
	ThrustTimer   float64
	Landed        bool
	Width, Height float64

	// Fuel burned per second of thrust.
	ConsumptionRate float64
}

// Point is a world-space position.
type Point struct {
	X, Y float64
}

func NewLander(width, height, fuel float64) *Lander {
	return &Lander{
		Width:           width,
		Height:          height,
		Fuel:            fuel,
		ConsumptionRate: FuelConsumptionRate,
	}
}

// Reset puts the ship back at the spawn point for a new attempt with a random
// sideways drift and tilt.
func (l *Lander) Reset(screenWidth, screenHeight, fuel float64, rng *Rand) {
	l.X = screenWidth/2 - l.Width/2
	l.Y = screenHeight * ShipStartHeightFrac
	l.Fuel = math.Max(0, fuel)
	l.VX = float64(rng.Range(1, ShipMaxStartVX))
	l.VY = 0
	l.Rotation = wrapDegrees(rng.RangeF(-90, 90))
	l.Burning = false
	l.Landed = false
	l.ThrustTimer = 0
}

// Center returns the centre of the hull box.
func (l *Lander) Center() Point {
	return Point{X: l.X + l.Width/2, Y: l.Y + l.Height/2}
}

// Rotate turns the ship by rate*dt degrees.
func (l *Lander) Rotate(dir RotateDir, rate, dt float64) {
	switch dir {
	case RotateLeft:
		l.Rotation -= rate * dt
	case RotateRight:
		l.Rotation += rate * dt
	}
	l.Rotation = wrapDegrees(l.Rotation)
}

// ApplyThrust accelerates the ship along its nose and burns fuel. With an
// empty tank the engine cuts out and nothing is applied.
func (l *Lander) ApplyThrust(force, dt float64) {
	if l.Fuel <= 0 {
		l.Burning = false
		l.Fuel = 0
		return
	}
	rad := l.Rotation * math.Pi / 180
	l.VX += force * math.Sin(rad) * dt
	l.VY += force * -math.Cos(rad) * dt

	l.Fuel -= l.ConsumptionRate * dt
	if l.Fuel < 0 {
		l.Fuel = 0
	}
	l.Burning = true
	l.ThrustTimer += dt
}

func (l *Lander) ApplyGravity(g, dt float64) {
	l.VY += g * dt
}

func (l *Lander) UpdatePosition(dt float64) {
	l.X += l.VX * dt
	l.Y += l.VY * dt
}

// ResetThrust is called when the thrust input is released or the tank runs dry.
func (l *Lander) ResetThrust() {
	l.Burning = false
	l.ThrustTimer = 0
}

// Feet returns the bottom-left and bottom-right hull corners in world space.
func (l *Lander) Feet() (left, right Point) {
	rad := l.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	c := l.Center()
	halfW, halfH := l.Width/2, l.Height/2

	blx, bly := -halfW, halfH
	brx, bry := halfW, halfH

	left = Point{
		X: c.X + blx*cos - bly*sin,
		Y: c.Y + blx*sin + bly*cos,
	}
	right = Point{
		X: c.X + brx*cos - bry*sin,
		Y: c.Y + brx*sin + bry*cos,
	}
	return left, right
}

// Altitude is the distance from the hull bottom down to groundY, never negative.
func (l *Lander) Altitude(groundY float64) float64 {
	return math.Max(0, math.Floor(groundY-(l.Y+l.Height)))
}

// FuelFraction reports the tank level relative to full.
func (l *Lander) FuelFraction(full float64) float64 {
	if full <= 0 {
		return 0
	}
	return clampF(l.Fuel/full, 0, 1)
}
