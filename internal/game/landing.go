package game

import (
	"log/slog"
	"math"
)

// OutcomeKind classifies one landing check.
type OutcomeKind int

const (
	Airborne OutcomeKind = iota
	Safe
	Crash
)

func (k OutcomeKind) String() string {
	switch k {
	case Airborne:
		return "airborne"
	case Safe:
		return "safe"
	case Crash:
		return "crash"
	}
	return "unknown"
}

// LandingOutcome is the result of a landing check. Score is only set for Safe.
type LandingOutcome struct {
	Kind  OutcomeKind
	Score ScoreResult
}

// Limits are the touchdown tolerances.
type Limits struct {
	MaxVY       float64
	MaxVX       float64
	MaxRotation float64
}

func DefaultLimits() Limits {
	return Limits{MaxVY: SafeLandingVY, MaxVX: SafeLandingVX, MaxRotation: MaxSafeRotation}
}

// Contact holds what the evaluator saw under the ship on the tick it touched down.
type Contact struct {
	Left, Right Point
	LeftGround  float64
	RightGround float64
	VelocityOK  bool
	RotationOK  bool
	PositionOK  bool
	LeftOnZone  bool
	RightOnZone bool
}

// Evaluate checks the ship against the terrain. It reports Airborne until
// either foot reaches the ground; on that tick it decides Safe or Crash and a
// safe landing marks the ship as landed and carries the score.
func Evaluate(l *Lander, t *Terrain, lim Limits) LandingOutcome {
	c, touched := CheckContact(l, t, lim)
	if !touched {
		return LandingOutcome{Kind: Airborne}
	}

	slog.Debug("landing contact",
		"x", l.X, "y", l.Y, "vx", l.VX, "vy", l.VY, "rotation", l.Rotation,
		"left_foot_y", c.Left.Y, "left_ground", c.LeftGround, "left_on_zone", c.LeftOnZone,
		"right_foot_y", c.Right.Y, "right_ground", c.RightGround, "right_on_zone", c.RightOnZone,
		"velocity_ok", c.VelocityOK, "rotation_ok", c.RotationOK, "position_ok", c.PositionOK)

	if c.VelocityOK && c.RotationOK && c.PositionOK {
		l.Landed = true
		return LandingOutcome{Kind: Safe, Score: Score(l, t, lim)}
	}
	return LandingOutcome{Kind: Crash}
}

// CheckContact reports whether a foot has reached the terrain and, if so,
// which touchdown conditions hold.
func CheckContact(l *Lander, t *Terrain, lim Limits) (Contact, bool) {
	var c Contact
	c.Left, c.Right = l.Feet()
	c.LeftGround = t.HeightAt(c.Left.X)
	c.RightGround = t.HeightAt(c.Right.X)

	if c.Left.Y < c.LeftGround && c.Right.Y < c.RightGround {
		return c, false
	}

	c.VelocityOK = math.Abs(l.VY) <= lim.MaxVY && math.Abs(l.VX) <= lim.MaxVX
	c.RotationOK = math.Abs(signedDegrees(l.Rotation)) <= lim.MaxRotation

	c.LeftOnZone = t.IsOnFlatZone(c.Left.X, c.Left.Y, FlatZoneSlack)
	c.RightOnZone = t.IsOnFlatZone(c.Right.X, c.Right.Y, FlatZoneSlack)
	level := math.Abs(c.LeftGround-c.RightGround) <= LevelTolerance
	c.PositionOK = level && (c.LeftOnZone || c.RightOnZone)
	return c, true
}
