package desktop

import (
	"fmt"

	"lander/internal/game"
)

func roleStyle(role game.TextRole) (float32, game.RGB) {
	switch role {
	case game.RoleTitle:
		return 4.0, game.Palette.Highlight
	case game.RoleHighlight:
		return 2.5, game.Palette.Highlight
	case game.RoleWarning:
		return 2.5, game.Palette.Warning
	case game.RoleHint:
		return 1.5, game.Palette.Text
	}
	return 2.0, game.Palette.Text
}

// RenderHUD draws all text and the fuel gauge on top of the scene. Sizes are
// given for a 1280 wide framebuffer and scaled with it.
func RenderHUD(r *Renderer, s *game.GameSession, now float64) {
	ui := float32(r.fbW) / float32(s.Config.ScreenWidth)
	if ui <= 0 {
		ui = 1
	}

	if s.State == game.StateFlying || s.State == game.StateResult {
		r.DrawString(s.HUD().String(), int(10*ui), int(10*ui), 1.5*ui, game.Palette.Text)
		if s.LowFuel() && int(now*3)%2 == 0 {
			r.DrawString("LOW FUEL", int(10*ui), int(60*ui), 2.0*ui, game.Palette.Warning)
		}
		drawZoneLabels(r, s, ui)
	}

	lines := s.Overlay()
	if len(lines) > 0 {
		total := 0
		for _, l := range lines {
			scale, _ := roleStyle(l.Role)
			total += r.atlas.LineHeight(scale*ui) + int(8*ui)
		}
		y := r.fbH/2 - total/2
		for _, l := range lines {
			scale, col := roleStyle(l.Role)
			if l.Text != "" {
				r.DrawStringCentered(l.Text, y, scale*ui, col)
			}
			y += r.atlas.LineHeight(scale*ui) + int(8*ui)
		}
	}

	if s.State == game.StateFlying {
		label := fmt.Sprintf("ATTEMPT %d", s.Attempt)
		x := r.fbW - r.atlas.TextWidth(label, 1.5*ui) - int(10*ui)
		r.DrawString(label, x, int(10*ui), 1.5*ui, game.Palette.Text)
	}

	r.FlushText()
}

// drawZoneLabels writes each visible pad's multiplier just under it.
func drawZoneLabels(r *Renderer, s *game.GameSession, ui float32) {
	camX := s.Camera.EffectiveX()
	scale := 1.5 * ui
	for _, z := range s.Terrain.Zones {
		mid := (z.StartX + z.EndX) / 2
		if mid < camX || mid > camX+s.Config.ScreenWidth {
			continue
		}
		label := s.ZoneLabel(z)
		sx := int(float32(mid-camX)*r.view.Scale) - r.atlas.TextWidth(label, scale)/2
		sy := int(float32(z.Y+6) * r.view.Scale)
		r.DrawString(label, sx, sy, scale, game.Palette.FlatZone)
	}
}
