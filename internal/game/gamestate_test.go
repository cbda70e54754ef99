package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lander/internal/scores"
)

const tick = 1.0 / FPS * GameSpeedFactor

func newTestSession(t *testing.T, store scores.Store) (*GameSession, *[]Event) {
	t.Helper()
	cfg := DefaultConfig()
	s := newGameSession(cfg, store, NewRand(1234))
	s.Wait()
	var events []Event
	s.Events.SubscribeAll(func(e Event) { events = append(events, e) })
	return s, &events
}

// flatten swaps the session terrain for level ground at y 600 with one pad
// under the spawn point and parks the ship upright with its feet on it.
func flatten(s *GameSession) {
	s.Terrain.Points = []TerrainPoint{{0, 600}, {s.Terrain.TotalWidth, 600}}
	s.Terrain.Zones = []FlatZone{{StartX: 500, EndX: 800, Y: 600}}
	l := s.Lander
	l.X = 640 - l.Width/2
	l.Y = 600 - l.Height
	l.VX, l.VY, l.Rotation = 0, 0, 0
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestSessionStartsOnTitle(t *testing.T) {
	s, events := newTestSession(t, nil)
	if s.State != StateTitle {
		t.Fatalf("State = %v, want title", s.State)
	}
	s.Step(tick, Controls{Thrust: true})
	if s.Lander.Fuel != StartFuel {
		t.Error("input consumed fuel on the title screen")
	}

	s.Start()
	if s.State != StateFlying {
		t.Fatalf("State = %v after Start, want flying", s.State)
	}
	if s.Attempt != 1 || countEvents(*events, EventAttemptStart) != 1 {
		t.Errorf("Attempt = %d, attempt_start events = %d", s.Attempt, countEvents(*events, EventAttemptStart))
	}
	if !s.ShipVisible() {
		t.Error("ship hidden while flying")
	}
}

func TestSessionThrustEvents(t *testing.T) {
	s, events := newTestSession(t, nil)
	s.Start()
	flatten(s)
	s.Lander.Y = 100

	s.Step(tick, Controls{Thrust: true})
	s.Step(tick, Controls{Thrust: true})
	s.Step(tick, Controls{})

	if n := countEvents(*events, EventThrustStart); n != 1 {
		t.Errorf("thrust_start events = %d, want 1", n)
	}
	if n := countEvents(*events, EventThrustStop); n != 1 {
		t.Errorf("thrust_stop events = %d, want 1", n)
	}
	if s.Lander.Fuel >= StartFuel {
		t.Errorf("fuel = %v, want less than %v", s.Lander.Fuel, StartFuel)
	}
}

func TestSessionLowFuelWarnsOnce(t *testing.T) {
	s, events := newTestSession(t, nil)
	s.Start()
	flatten(s)
	s.Lander.Y = 100
	s.Lander.Fuel = LowFuelThreshold + 1

	for _i := 0; _i < 10; _i++ {
		s.Step(tick, Controls{Thrust: true})
	}
	if n := countEvents(*events, EventLowFuel); n != 1 {
		t.Errorf("low_fuel events = %d, want 1", n)
	}
}

func TestSessionSafeLandingAndContinue(t *testing.T) {
	s, events := newTestSession(t, nil)
	s.Start()
	flatten(s)
	s.Lander.VY = 3
	fuel := s.Lander.Fuel

	s.Step(tick, Controls{})
	if s.State != StateResult {
		t.Fatalf("State = %v, want result", s.State)
	}
	if s.LastOutcome.Kind != Safe {
		t.Fatalf("outcome = %v, want safe", s.LastOutcome.Kind)
	}
	if countEvents(*events, EventSafeLanding) != 1 {
		t.Error("no safe_landing event")
	}
	score := s.AttemptScore
	if score != s.LastOutcome.Score.Total() || score < BaseLandingScore {
		t.Errorf("AttemptScore = %d, outcome total %d", score, s.LastOutcome.Score.Total())
	}
	if !strings.Contains(s.Message, "SAFE LANDING") {
		t.Errorf("Message = %q", s.Message)
	}
	if !s.ShipVisible() {
		t.Error("landed ship hidden")
	}

	// The result is terminal: further ticks change nothing.
	y := s.Lander.Y
	s.Step(tick, Controls{Thrust: true})
	if s.Lander.Y != y || s.Lander.Fuel != fuel {
		t.Error("ship moved after landing")
	}

	s.Continue()
	if s.State != StateFlying || s.Attempt != 2 {
		t.Fatalf("State = %v, Attempt = %d after Continue", s.State, s.Attempt)
	}
	if s.TotalScore != score {
		t.Errorf("TotalScore = %d, want %d", s.TotalScore, score)
	}
	if s.Lander.Fuel != fuel {
		t.Errorf("fuel = %v after Continue, want %v carried over", s.Lander.Fuel, fuel)
	}
	if s.Lander.Landed {
		t.Error("Landed still set on the new attempt")
	}
}

func TestSessionCrashPenalty(t *testing.T) {
	s, events := newTestSession(t, nil)
	s.Start()
	flatten(s)
	s.Lander.VY = 30
	fuel := s.Lander.Fuel

	s.Step(tick, Controls{})
	if s.LastOutcome.Kind != Crash || s.State != StateResult {
		t.Fatalf("outcome = %v state = %v, want crash/result", s.LastOutcome.Kind, s.State)
	}
	if s.Lander.Fuel != fuel-CrashFuelPenalty {
		t.Errorf("fuel = %v, want %v", s.Lander.Fuel, fuel-CrashFuelPenalty)
	}
	if s.AttemptScore != 0 || s.Message != "CRASHED! SCORE: 0" {
		t.Errorf("AttemptScore = %d, Message = %q", s.AttemptScore, s.Message)
	}
	if len(s.Particles.P) != CrashParticles {
		t.Errorf("debris = %d, want %d", len(s.Particles.P), CrashParticles)
	}
	if s.Camera.ShakeTimer <= 0 {
		t.Error("crash did not shake the camera")
	}
	if s.ShipVisible() {
		t.Error("wrecked ship still visible")
	}
	if countEvents(*events, EventCrash) != 1 {
		t.Error("no crash event")
	}

	// Debris keeps flying on the result screen.
	x := s.Particles.P[0].X
	s.Step(tick, Controls{})
	if s.Particles.P[0].X == x && s.Particles.P[0].VX != 0 {
		t.Error("debris frozen on the result screen")
	}
}

func TestSessionGameOverAndInitials(t *testing.T) {
	board := scores.NewBoard(nil)
	s, events := newTestSession(t, board)
	s.Start()
	s.TotalScore = 700
	flatten(s)
	s.Lander.VY = 30
	s.Lander.Fuel = 150

	s.Step(tick, Controls{})
	if s.State != StateEnteringInitials {
		t.Fatalf("State = %v, want entering_initials", s.State)
	}
	if s.Lander.Fuel != 0 {
		t.Errorf("fuel = %v, want clamped to 0", s.Lander.Fuel)
	}
	if countEvents(*events, EventGameOver) != 1 {
		t.Error("no game_over event")
	}

	s.SubmitInitials()
	if s.State != StateEnteringInitials {
		t.Fatal("submitted with no initials")
	}
	for _, r := range "a1bcd" {
		s.TypeInitial(r)
	}
	if s.Initials != "ABC" {
		t.Fatalf("Initials = %q, want ABC", s.Initials)
	}
	s.Backspace()
	s.TypeInitial('z')
	if s.Initials != "ABZ" {
		t.Fatalf("Initials = %q, want ABZ", s.Initials)
	}

	s.SubmitInitials()
	if s.State != StateScoreboard {
		t.Fatalf("State = %v, want scoreboard", s.State)
	}
	s.Wait()
	want := []scores.HighScore{{Initials: "ABZ", Score: 700}}
	if len(s.HighScores) != 1 || s.HighScores[0] != want[0] {
		t.Errorf("HighScores = %+v, want %+v", s.HighScores, want)
	}

	s.Restart()
	if s.State != StateTitle || s.TotalScore != 0 || s.Lander.Fuel != StartFuel {
		t.Errorf("after Restart state=%v total=%d fuel=%v", s.State, s.TotalScore, s.Lander.Fuel)
	}
}

type failingStore struct{}

func (failingStore) AddScore(context.Context, string, int) error {
	return errors.New("disk on fire")
}

func (failingStore) TopScores(context.Context) ([]scores.HighScore, error) {
	return nil, errors.New("disk on fire")
}

func TestSessionSurvivesStoreFailure(t *testing.T) {
	s, _ := newTestSession(t, failingStore{})
	s.Start()
	flatten(s)
	s.Lander.VY = 30
	s.Lander.Fuel = 10
	s.Step(tick, Controls{})
	for _, r := range "xyz" {
		s.TypeInitial(r)
	}
	s.SubmitInitials()
	s.Wait()
	if s.State != StateScoreboard {
		t.Errorf("State = %v, want scoreboard", s.State)
	}
	if len(s.HighScores) != 0 {
		t.Errorf("HighScores = %+v, want none", s.HighScores)
	}
}

func TestSessionCommandsIgnoredInWrongState(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Continue()
	s.Restart()
	s.TypeInitial('a')
	s.SubmitInitials()
	if s.State != StateTitle || s.Initials != "" {
		t.Errorf("State = %v, Initials = %q", s.State, s.Initials)
	}

	s.Start()
	s.Start()
	if s.Attempt != 1 {
		t.Errorf("Attempt = %d after double Start, want 1", s.Attempt)
	}
}

func TestHUDStatus(t *testing.T) {
	h := HUDStatus{Altitude: 120, VertVel: -3, HorVel: 7, Rotation: 15, Fuel: 1999, Score: 1234}
	want := "Alt:  120 | Vert Vel:   -3 | Hor Vel:    7 | Rotation:  15 | Fuel: 1999 | Score:    1234"
	if got := h.String(); got != want {
		t.Errorf("HUD = %q\nwant  %q", got, want)
	}
}

func TestSessionHUD(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Start()
	flatten(s)
	s.Lander.Y -= 40
	s.Lander.VY, s.Lander.VX = -2.5, 3.9
	s.TotalScore = 42

	h := s.HUD()
	if h.Altitude != 40 || h.VertVel != -3 || h.HorVel != 3 || h.Score != 42 {
		t.Errorf("HUD() = %+v", h)
	}
}

func TestZoneLabel(t *testing.T) {
	s, _ := newTestSession(t, nil)
	w := s.Lander.Width
	tests := []struct {
		width float64
		want  string
	}{
		{w * 1.5, "5X"},
		{w * 2.5, "3X"},
		{w * 4, "1X"},
	}
	for _, tt := range tests {
		z := FlatZone{StartX: 0, EndX: tt.width}
		if got := s.ZoneLabel(z); got != tt.want {
			t.Errorf("ZoneLabel(width %v) = %q, want %q", tt.width, got, tt.want)
		}
	}
}
