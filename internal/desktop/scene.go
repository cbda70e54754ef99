package desktop

import (
	"math"

	"lander/internal/game"
)

// Vertex buffers built here use the shape layout [x, y, r, g, b, a] in world
// units and are drawn by DrawShapes.

func appendVert(buf []float32, x, y float64, col game.RGB, a float32) []float32 {
	r, g, b := col.Floats()
	return append(buf, float32(x), float32(y), r, g, b, a)
}

// terrainStrip returns the polyline vertices visible between camX and
// camX+viewW, including one point either side so the line reaches the edges.
func terrainStrip(t *game.Terrain, camX, viewW float64, buf []float32) []float32 {
	buf = buf[:0]
	pts := t.Points
	if len(pts) == 0 {
		return buf
	}
	first, last := 0, len(pts)-1
	for first < last && pts[first+1].X < camX {
		first++
	}
	for last > first && pts[last-1].X > camX+viewW {
		last--
	}
	for i := first; i <= last; i++ {
		buf = appendVert(buf, pts[i].X, pts[i].Y, game.Palette.Terrain, 1)
	}
	return buf
}

// padLines returns a thick highlight for every flat zone that overlaps the
// view, as GL_LINES pairs.
func padLines(t *game.Terrain, camX, viewW float64, buf []float32) []float32 {
	buf = buf[:0]
	for _, z := range t.Zones {
		if z.EndX < camX || z.StartX > camX+viewW {
			continue
		}
		for off := 0.0; off < 3; off++ {
			buf = appendVert(buf, z.StartX, z.Y+off, game.Palette.FlatZone, 1)
			buf = appendVert(buf, z.EndX, z.Y+off, game.Palette.FlatZone, 1)
		}
	}
	return buf
}

// shipLines returns the lander outline as GL_LINES pairs, rotated about its
// centre. The feet sit on the bottom corners of the hull box, matching
// Lander.Feet. A flame is added while burning; flicker in [0,1] varies its length.
func shipLines(l *game.Lander, flicker float64, buf []float32) []float32 {
	buf = buf[:0]
	c := l.Center()
	w, h := l.Width, l.Height
	sin, cos := math.Sincos(l.Rotation * math.Pi / 180)
	seg := func(x1, y1, x2, y2 float64, col game.RGB) {
		buf = appendVert(buf, c.X+x1*cos-y1*sin, c.Y+x1*sin+y1*cos, col, 1)
		buf = appendVert(buf, c.X+x2*cos-y2*sin, c.Y+x2*sin+y2*cos, col, 1)
	}

	hull := game.Palette.Hull
	legs := game.Palette.Legs

	// Ascent stage.
	seg(-0.25*w, -0.5*h, 0.25*w, -0.5*h, hull)
	seg(0.25*w, -0.5*h, 0.4*w, -0.2*h, hull)
	seg(0.4*w, -0.2*h, -0.4*w, -0.2*h, hull)
	seg(-0.4*w, -0.2*h, -0.25*w, -0.5*h, hull)
	// Descent stage.
	seg(-0.35*w, -0.2*h, -0.35*w, 0.15*h, hull)
	seg(0.35*w, -0.2*h, 0.35*w, 0.15*h, hull)
	seg(-0.35*w, 0.15*h, 0.35*w, 0.15*h, hull)
	// Legs and pads.
	seg(-0.35*w, 0.05*h, -0.5*w, 0.5*h, legs)
	seg(0.35*w, 0.05*h, 0.5*w, 0.5*h, legs)
	seg(-0.5*w, 0.5*h, -0.38*w, 0.5*h, legs)
	seg(0.38*w, 0.5*h, 0.5*w, 0.5*h, legs)

	if l.Burning {
		flame := h * (0.5 + 0.5*flicker)
		seg(-0.15*w, 0.15*h, 0, 0.15*h+flame, game.Palette.Flame)
		seg(0.15*w, 0.15*h, 0, 0.15*h+flame, game.Palette.Flame)
		seg(-0.07*w, 0.15*h, 0, 0.15*h+flame*0.6, game.Palette.FlameTip)
		seg(0.07*w, 0.15*h, 0, 0.15*h+flame*0.6, game.Palette.FlameTip)
	}
	return buf
}

// debrisSprites returns crash particles in the debris layout
// [x, y, size, r, g, b, a].
func debrisSprites(ps *game.ParticleSystem, buf []float32) []float32 {
	buf = buf[:0]
	for i := range ps.P {
		p := &ps.P[i]
		r, g, b := p.Color().Floats()
		buf = append(buf, float32(p.X), float32(p.Y), float32(p.Size()), r, g, b, 1)
	}
	return buf
}

// fuelBar returns a gauge at (x, y): the fill as two triangles and the frame
// as GL_LINES pairs. Both slices share buf.
func fuelBar(x, y, w, h, frac float64, buf []float32) (tris, frame []float32) {
	buf = buf[:0]
	col := game.FuelColor(frac)
	fw := w * math.Max(0, math.Min(1, frac))
	buf = appendVert(buf, x, y, col, 0.9)
	buf = appendVert(buf, x+fw, y, col, 0.9)
	buf = appendVert(buf, x, y+h, col, 0.9)
	buf = appendVert(buf, x+fw, y, col, 0.9)
	buf = appendVert(buf, x+fw, y+h, col, 0.9)
	buf = appendVert(buf, x, y+h, col, 0.9)
	split := len(buf)

	text := game.Palette.Text
	buf = appendVert(buf, x, y, text, 1)
	buf = appendVert(buf, x+w, y, text, 1)
	buf = appendVert(buf, x+w, y, text, 1)
	buf = appendVert(buf, x+w, y+h, text, 1)
	buf = appendVert(buf, x+w, y+h, text, 1)
	buf = appendVert(buf, x, y+h, text, 1)
	buf = appendVert(buf, x, y+h, text, 1)
	buf = appendVert(buf, x, y, text, 1)
	return buf[:split], buf[split:]
}
