package game

import (
	"math"
	"sort"
)

// TerrainPoint is one vertex of the terrain polyline (screen coordinates, y down).
type TerrainPoint struct {
	X, Y float64
}

// FlatZone is a horizontal run of constant height that counts as a landing pad.
type FlatZone struct {
	StartX, EndX float64
	Y            float64
}

func (z FlatZone) Width() float64 { return z.EndX - z.StartX }

func (z FlatZone) Contains(x float64) bool { return z.StartX <= x && x <= z.EndX }

// Terrain is the height field for one attempt. It is only ever replaced as a
// whole by Reset; callers must treat Points and Zones as read-only.
type Terrain struct {
	Points       []TerrainPoint
	Zones        []FlatZone
	TotalWidth   float64
	ScreenHeight float64

	minZoneWidth float64
	rng          *Rand
}

// NewTerrain generates a terrain spanning [0, totalWidth] sized for a ship of
// the given width.
func NewTerrain(totalWidth, screenHeight, shipWidth float64, rng *Rand) *Terrain {
	if rng == nil {
		rng = NewRand(1)
	}
	t := &Terrain{
		TotalWidth:   totalWidth,
		ScreenHeight: screenHeight,
		minZoneWidth: shipWidth + FlatZoneMargin,
		rng:          rng,
	}
	t.generate()
	return t
}

// MinZoneWidth is the narrowest flat zone the generator may emit.
func (t *Terrain) MinZoneWidth() float64 { return t.minZoneWidth }

// MinZoneGap is the minimum horizontal distance between consecutive zones.
func (t *Terrain) MinZoneGap() float64 { return t.minZoneWidth * FlatZoneGapFactor }

// Reset discards the polyline and zones and generates a new terrain.
func (t *Terrain) Reset() {
	t.Points = nil
	t.Zones = nil
	t.generate()
}

func (t *Terrain) trendInterval() float64 {
	return float64(t.rng.Range(TerrainTrendMin, TerrainTrendMax))
}

func (t *Terrain) trend() float64 {
	return t.rng.RangeF(-TerrainTrendStrength, TerrainTrendStrength)
}

// generate walks x across the span in small steps. A slow trend gives the
// mountains their shape and per-step jitter gives the rough texture. Flat
// zones are dropped in at random when there is room for them.
func (t *Terrain) generate() {
	minY := t.ScreenHeight - TerrainCeilingOffset
	maxY := t.ScreenHeight - TerrainFloorOffset
	minGap := t.MinZoneGap()

	points := make([]TerrainPoint, 0, int(t.TotalWidth/TerrainSegmentWidth)+2)
	var zones []FlatZone

	x := 0.0
	lastY := t.rng.RangeF(minY+TerrainStartBandLower, maxY-TerrainFloorOffset)
	points = append(points, TerrainPoint{X: x, Y: lastY})

	trend := 0.0
	travelled := 0.0
	interval := t.trendInterval()

	for x < t.TotalWidth {
		travelled += TerrainSegmentWidth
		if travelled >= interval {
			trend = t.trend()
			travelled = 0
			interval = t.trendInterval()
		}

		canFlat := t.rng.Float64() < FlatZoneProbability
		if n := len(zones); n > 0 && x < zones[n-1].EndX+minGap {
			canFlat = false
		}
		width := float64(int(t.minZoneWidth * (1.0 + t.rng.Float64()*FlatZoneWidthSpread)))
		if width < t.minZoneWidth {
			width = t.minZoneWidth
		}
		if x+width >= t.TotalWidth {
			canFlat = false
		}

		if canFlat {
			startX, endX := x, x+width
			flatY := roundHalfUp(lastY)
			for cx := startX; cx < endX; {
				step := min(TerrainSegmentWidth, endX-cx)
				if step <= 0 {
					break
				}
				cx += step
				points = append(points, TerrainPoint{X: cx, Y: flatY})
			}
			zones = append(zones, FlatZone{StartX: startX, EndX: endX, Y: flatY})
			x = endX
			lastY = flatY
			travelled = 0
			interval = t.trendInterval()
			trend = t.trend()
			continue
		}

		jitter := t.rng.RangeF(-TerrainStepJitter, TerrainStepJitter)
		nextY := clampF(lastY+trend*TerrainSegmentWidth+jitter, minY, maxY)

		x += TerrainSegmentWidth
		if x > t.TotalWidth {
			x = t.TotalWidth
		}
		points = append(points, TerrainPoint{X: x, Y: nextY})
		lastY = nextY
	}

	t.Points = points
	t.Zones = zones
}

// HeightAt returns the terrain height at x, interpolated along the polyline
// and rounded to a whole unit. Outside the polyline the nearest end point's
// height is used.
func (t *Terrain) HeightAt(x float64) float64 {
	pts := t.Points
	if len(pts) == 0 {
		return t.ScreenHeight
	}

	// Segments ending left of x-0.5 can neither contain x nor sit on it.
	start := sort.Search(len(pts)-1, func(i int) bool { return pts[i+1].X >= x-0.5 })
	for i := start; i < len(pts)-1; i++ {
		p1, p2 := pts[i], pts[i+1]
		if p2.X <= p1.X {
			// Zero-width segment: only answers for x right on the point.
			if math.Abs(x-p1.X) < 0.5 {
				return roundHalfUp(p1.Y)
			}
			continue
		}
		if p1.X <= x && x <= p2.X {
			f := (x - p1.X) / (p2.X - p1.X)
			return roundHalfUp(p1.Y + f*(p2.Y-p1.Y))
		}
		if p1.X > x+0.5 {
			break
		}
	}

	if x < pts[0].X {
		return roundHalfUp(pts[0].Y)
	}
	if last := pts[len(pts)-1]; x > last.X {
		return roundHalfUp(last.Y)
	}
	return t.ScreenHeight
}

// IsFlatZoneAt reports whether x lies inside any flat zone.
func (t *Terrain) IsFlatZoneAt(x float64) bool {
	_, ok := t.ZoneAt(x)
	return ok
}

// ZoneAt returns the flat zone containing x.
func (t *Terrain) ZoneAt(x float64) (FlatZone, bool) {
	i := sort.Search(len(t.Zones), func(i int) bool { return t.Zones[i].EndX >= x })
	if i < len(t.Zones) && t.Zones[i].Contains(x) {
		return t.Zones[i], true
	}
	return FlatZone{}, false
}

// IsOnFlatZone reports whether (x, y) sits on a flat zone, allowing y to be
// off by up to tolerance units.
func (t *Terrain) IsOnFlatZone(x, y, tolerance float64) bool {
	ty := roundHalfUp(y)
	for _, z := range t.Zones {
		if math.Abs(ty-z.Y) <= tolerance && z.Contains(x) {
			return true
		}
	}
	return false
}

// Multiplier returns the score multiplier for landing on a zone of the given
// width with a ship of shipWidth.
func Multiplier(zoneWidth, shipWidth float64) int {
	switch {
	case zoneWidth < shipWidth*2:
		return 5
	case zoneWidth < shipWidth*3:
		return 3
	}
	return 1
}
