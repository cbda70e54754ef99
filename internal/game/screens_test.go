package game

import (
	"strings"
	"testing"

	"lander/internal/scores"
)

func overlayText(lines []TextLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestOverlayPerState(t *testing.T) {
	s, _ := newTestSession(t, nil)
	tests := []struct {
		state GameState
		setup func()
		want  []string
	}{
		{StateTitle, nil, []string{"LUNAR LANDER", "SPACE"}},
		{StateResult, func() {
			s.Message = "CRASHED! SCORE: 0"
			s.LastOutcome = LandingOutcome{Kind: Crash}
			s.Lander.Fuel = 321.7
		}, []string{"CRASHED! SCORE: 0", "Fuel left: 321", "continue"}},
		{StateEnteringInitials, func() {
			s.TotalScore = 1500
			s.Initials = "A"
		}, []string{"GAME OVER", "Final Score: 1500", "A__"}},
		{StateScoreboard, func() {
			s.HighScores = []scores.HighScore{{Initials: "ABC", Score: 900}}
		}, []string{"HIGH SCORES", " 1. ABC     900", "restart"}},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			s.State = tt.state
			if tt.setup != nil {
				tt.setup()
			}
			got := overlayText(s.Overlay())
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("overlay missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestOverlayResultRoles(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.State = StateResult
	s.LastOutcome = LandingOutcome{Kind: Safe}
	if got := s.Overlay()[0].Role; got != RoleHighlight {
		t.Errorf("safe landing role = %v, want highlight", got)
	}
	s.LastOutcome = LandingOutcome{Kind: Crash}
	if got := s.Overlay()[0].Role; got != RoleWarning {
		t.Errorf("crash role = %v, want warning", got)
	}
}

func TestOverlayFlyingIsEmpty(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Start()
	if lines := s.Overlay(); len(lines) != 0 {
		t.Errorf("Overlay while flying = %+v", lines)
	}
}

func TestLowFuel(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Start()
	if s.LowFuel() {
		t.Error("LowFuel with a full tank")
	}
	s.Lander.Fuel = LowFuelThreshold
	if !s.LowFuel() {
		t.Error("LowFuel = false at the threshold")
	}
}
