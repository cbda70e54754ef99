package game

import "math"

// ScoreResult splits a landing score into its base and precision parts.
type ScoreResult struct {
	Multiplier   int
	BaseScore    int
	PerfectBonus int
}

func (s ScoreResult) Total() int { return s.BaseScore + s.PerfectBonus }

// Score rates a landed ship. Narrow pads multiply the base score; the bonus
// rewards how close vy, vx and tilt were to zero relative to their limits.
// A ship that has not landed scores nothing.
func Score(l *Lander, t *Terrain, lim Limits) ScoreResult {
	if !l.Landed {
		return ScoreResult{}
	}

	zoneWidth := 0.0
	if z, ok := t.ZoneAt(l.X + l.Width/2); ok {
		zoneWidth = z.Width()
	}
	mult := Multiplier(zoneWidth, l.Width)

	vyPart := closeness(math.Abs(l.VY), lim.MaxVY)
	vxPart := closeness(math.Abs(l.VX), lim.MaxVX)
	rotPart := closeness(tiltDegrees(l.Rotation), lim.MaxRotation)

	return ScoreResult{
		Multiplier:   mult,
		BaseScore:    BaseLandingScore * mult,
		PerfectBonus: int(math.Floor(PerfectBonus * (vyPart + vxPart + rotPart) / 3)),
	}
}

// closeness maps actual in [0, limit] to 1..0, and anything past the limit to 0.
func closeness(actual, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Max(0, 1-actual/limit)
}
