package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"lander/internal/game"
)

// hudRows is the number of rows at the top reserved for the status line.
const hudRows = 1

func colorOf(c game.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func styleOf(c game.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(colorOf(c)).Background(colorOf(game.Palette.Sky))
}

// Renderer draws a session onto a character grid. The visible world
// (ScreenWidth by ScreenHeight units) is stretched over the whole grid below
// the status line.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// grid maps world coordinates to cells for the current screen size.
type grid struct {
	cols, rows   int
	camX         float64
	unitX, unitY float64 // world units per cell
}

func (r *Renderer) grid(s *game.GameSession) grid {
	cols, rows := r.screen.Size()
	rows -= hudRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return grid{
		cols:  cols,
		rows:  rows,
		camX:  s.Camera.EffectiveX(),
		unitX: s.Config.ScreenWidth / float64(cols),
		unitY: s.Config.ScreenHeight / float64(rows),
	}
}

func (g grid) cell(x, y float64) (int, int) {
	cx := int(math.Floor((x - g.camX) / g.unitX))
	cy := int(math.Floor(y/g.unitY)) + hudRows
	return cx, cy
}

// worldX is the world x at the centre of column c.
func (g grid) worldX(c int) float64 {
	return g.camX + (float64(c)+0.5)*g.unitX
}

func (r *Renderer) put(x, y int, ch rune, st tcell.Style) {
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

func (r *Renderer) text(x, y int, s string, st tcell.Style) {
	for i, ch := range []rune(s) {
		r.put(x+i, y, ch, st)
	}
}

func (r *Renderer) centered(y int, s string, st tcell.Style) {
	cols, _ := r.screen.Size()
	r.text((cols-len([]rune(s)))/2, y, s, st)
}

// Draw renders one frame. now is used for blinking only.
func (r *Renderer) Draw(s *game.GameSession, now float64) {
	r.screen.SetStyle(styleOf(game.Palette.Text))
	r.screen.Clear()
	g := r.grid(s)

	r.drawTerrain(s.Terrain, g)
	if s.ShipVisible() {
		r.drawShip(s.Lander, g, now)
	}
	r.drawDebris(s.Particles, g)
	r.drawHUD(s, g, now)
	r.drawOverlay(s)
}

func (r *Renderer) drawTerrain(t *game.Terrain, g grid) {
	ground := styleOf(game.Palette.Terrain)
	fill := styleOf(game.Palette.Terrain.Mul(80))
	pad := styleOf(game.Palette.FlatZone).Bold(true)
	for c := 0; c < g.cols; c++ {
		x := g.worldX(c)
		_, row := g.cell(x, t.HeightAt(x))
		if t.IsFlatZoneAt(x) {
			r.put(c, row, '=', pad)
		} else {
			r.put(c, row, surfaceGlyph(t, x, g.unitX), ground)
		}
		for y := row + 1; y < g.rows+hudRows; y++ {
			r.put(c, y, '░', fill)
		}
	}
}

// surfaceGlyph picks a slope character from the height change across a cell.
func surfaceGlyph(t *game.Terrain, x, unitX float64) rune {
	dy := t.HeightAt(x+unitX/2) - t.HeightAt(x-unitX/2)
	switch {
	case dy < -unitX*0.5:
		return '/'
	case dy > unitX*0.5:
		return '\\'
	}
	return '_'
}

// shipGlyph returns the hull character for a rotation in degrees.
func shipGlyph(rotation float64) rune {
	deg := math.Mod(math.Mod(rotation, 360)+360, 360)
	switch {
	case deg < 45 || deg >= 315:
		return 'A'
	case deg < 135:
		return '>'
	case deg < 225:
		return 'V'
	}
	return '<'
}

func (r *Renderer) drawShip(l *game.Lander, g grid, now float64) {
	c := l.Center()
	cx, cy := g.cell(c.X, c.Y)
	hull := styleOf(game.Palette.Hull).Bold(true)
	legs := styleOf(game.Palette.Legs)

	left, right := l.Feet()
	lx, ly := g.cell(left.X, left.Y)
	rx, ry := g.cell(right.X, right.Y)
	if lx == cx && ly == cy {
		lx--
	}
	if rx == cx && ry == cy {
		rx++
	}
	r.put(lx, ly, '/', legs)
	r.put(rx, ry, '\\', legs)
	r.put(cx, cy, shipGlyph(l.Rotation), hull)

	if l.Burning {
		// Flame trails opposite the thrust direction.
		sin, cos := math.Sincos(l.Rotation * math.Pi / 180)
		fx, fy := g.cell(c.X-sin*l.Height, c.Y+cos*l.Height)
		col := game.Palette.Flame
		if int(now*10)%2 == 0 {
			col = game.Palette.FlameTip
		}
		r.put(fx, fy, '*', styleOf(col))
	}
}

func (r *Renderer) drawDebris(ps *game.ParticleSystem, g grid) {
	for i := range ps.P {
		p := &ps.P[i]
		x, y := g.cell(p.X, p.Y)
		ch := '.'
		if p.Size() > 15 {
			ch = '*'
		}
		r.put(x, y, ch, styleOf(p.Color()))
	}
}

func (r *Renderer) drawHUD(s *game.GameSession, g grid, now float64) {
	if s.State != game.StateFlying && s.State != game.StateResult {
		return
	}
	r.text(0, 0, s.HUD().String(), styleOf(game.Palette.Text))
	if s.LowFuel() && int(now*3)%2 == 0 {
		cols, _ := r.screen.Size()
		r.text(cols-len("LOW FUEL"), 0, "LOW FUEL", styleOf(game.Palette.Warning).Bold(true))
	}

	label := styleOf(game.Palette.FlatZone)
	for _, z := range s.Terrain.Zones {
		mid := (z.StartX + z.EndX) / 2
		x, y := g.cell(mid, z.Y)
		txt := s.ZoneLabel(z)
		if x < 0 || x >= g.cols {
			continue
		}
		r.text(x-len(txt)/2, y+1, txt, label)
	}
}

func roleStyle(role game.TextRole) tcell.Style {
	switch role {
	case game.RoleTitle:
		return styleOf(game.Palette.Highlight).Bold(true)
	case game.RoleHighlight:
		return styleOf(game.Palette.Highlight)
	case game.RoleWarning:
		return styleOf(game.Palette.Warning).Bold(true)
	case game.RoleHint:
		return styleOf(game.Palette.Text).Dim(true)
	}
	return styleOf(game.Palette.Text)
}

func (r *Renderer) drawOverlay(s *game.GameSession) {
	lines := s.Overlay()
	if len(lines) == 0 {
		return
	}
	_, rows := r.screen.Size()
	step := 2
	if len(lines)*step > rows-hudRows {
		step = 1
	}
	y := (rows - len(lines)*step) / 2
	for _, l := range lines {
		if l.Text != "" {
			r.centered(y, l.Text, roleStyle(l.Role))
		}
		y += step
	}
}
