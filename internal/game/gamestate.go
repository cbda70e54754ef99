package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"lander/internal/scores"
)

type GameState int

const (
	StateTitle            GameState = iota
	StateFlying                     // ship in the air, input live
	StateResult                     // landed or crashed, waiting for continue
	StateEnteringInitials           // out of fuel, typing initials
	StateScoreboard                 // high-score table, waiting for restart
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateFlying:
		return "flying"
	case StateResult:
		return "result"
	case StateEnteringInitials:
		return "entering_initials"
	case StateScoreboard:
		return "scoreboard"
	}
	return "unknown"
}

// Controls is the input sampled for one tick.
type Controls struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
}

const storeTimeout = 5 * time.Second

// GameSession owns everything one player's game mutates: terrain, ship,
// debris, camera and score counters. Step and the command methods must be
// called from a single goroutine; only leaderboard I/O runs elsewhere.
type GameSession struct {
	State     GameState
	Config    Config
	Limits    Limits
	Terrain   *Terrain
	Lander    *Lander
	Particles *ParticleSystem
	Camera    Camera
	Events    *EventBus

	TotalScore   int
	AttemptScore int
	Attempt      int
	LastOutcome  LandingOutcome
	Message      string
	Initials     string
	HighScores   []scores.HighScore

	lowFuelWarned bool
	rng           *Rand
	store         scores.Store
	scoreUpdates  chan []scores.HighScore
	pending       sync.WaitGroup
}

// NewGameSession builds a session on the title screen with a terrain and
// ship ready for the first attempt. store may be nil.
func NewGameSession(cfg Config, store scores.Store) *GameSession {
	return newGameSession(cfg, store, NewRand(uint64(time.Now().UnixNano())))
}

func newGameSession(cfg Config, store scores.Store, rng *Rand) *GameSession {
	w, h := ShipSize(cfg.ScreenWidth)
	s := &GameSession{
		State:        StateTitle,
		Config:       cfg,
		Limits:       DefaultLimits(),
		Terrain:      NewTerrain(cfg.ScreenWidth*TerrainWidthScreens, cfg.ScreenHeight, w, rng),
		Lander:       NewLander(w, h, cfg.StartFuel),
		Particles:    NewParticleSystem(MaxParticles),
		Events:       NewEventBus(),
		rng:          rng,
		store:        store,
		scoreUpdates: make(chan []scores.HighScore, 8),
	}
	s.Lander.Reset(cfg.ScreenWidth, cfg.ScreenHeight, cfg.StartFuel, rng)
	s.Camera.Follow(s.Lander.X, cfg.ScreenWidth, s.Terrain.TotalWidth)
	s.refreshScores()
	return s
}

// Start leaves the title screen and begins a fresh game with a full tank.
func (s *GameSession) Start() {
	if s.State != StateTitle {
		return
	}
	s.TotalScore = 0
	s.Attempt = 0
	s.beginAttempt(s.Config.StartFuel)
}

// Continue moves from a landing result to the next attempt, banking the
// attempt score and keeping the remaining fuel.
func (s *GameSession) Continue() {
	if s.State != StateResult {
		return
	}
	s.TotalScore += s.AttemptScore
	s.beginAttempt(s.Lander.Fuel)
}

// Restart returns from the high-score table to the title screen.
func (s *GameSession) Restart() {
	if s.State != StateScoreboard {
		return
	}
	s.resetAttemptState()
	s.Terrain.Reset()
	s.Lander.Reset(s.Config.ScreenWidth, s.Config.ScreenHeight, s.Config.StartFuel, s.rng)
	s.TotalScore = 0
	s.State = StateTitle
}

func (s *GameSession) beginAttempt(fuel float64) {
	s.resetAttemptState()
	s.Terrain.Reset()
	s.Lander.Reset(s.Config.ScreenWidth, s.Config.ScreenHeight, fuel, s.rng)
	s.Camera.Follow(s.Lander.X, s.Config.ScreenWidth, s.Terrain.TotalWidth)
	s.Attempt++
	s.State = StateFlying
	c := s.Lander.Center()
	s.Events.Emit(Event{Type: EventAttemptStart, X: c.X, Y: c.Y, Data: s.Attempt})
}

func (s *GameSession) resetAttemptState() {
	s.AttemptScore = 0
	s.LastOutcome = LandingOutcome{}
	s.Message = ""
	s.Initials = ""
	s.lowFuelWarned = false
	s.Lander.ResetThrust()
	s.Particles.Clear()
	s.Camera.ShakeTimer = 0
}

// Step advances the session by dt seconds of simulation time (already passed
// through StepDuration). Input is ignored outside StateFlying but debris and
// camera shake keep moving.
func (s *GameSession) Step(dt float64, in Controls) {
	s.drainScoreUpdates()
	s.Particles.Update(dt)
	s.Camera.UpdateShake(dt, s.rng)

	if s.State != StateFlying {
		return
	}

	l := s.Lander
	if in.RotateLeft {
		l.Rotate(RotateLeft, RotationSpeed, dt)
	}
	if in.RotateRight {
		l.Rotate(RotateRight, RotationSpeed, dt)
	}
	if in.Thrust && l.Fuel > 0 {
		wasBurning := l.Burning
		l.ApplyThrust(Thrust, dt)
		if !wasBurning && l.Burning {
			s.emitAtShip(EventThrustStart, 0)
		}
	} else {
		s.cutThrust()
	}

	l.ApplyGravity(Gravity, dt)
	l.UpdatePosition(dt)
	s.Camera.Follow(l.X, s.Config.ScreenWidth, s.Terrain.TotalWidth)

	switch {
	case l.Fuel <= LowFuelThreshold && l.Fuel > 0 && !s.lowFuelWarned:
		s.lowFuelWarned = true
		s.emitAtShip(EventLowFuel, int(l.Fuel))
	case l.Fuel > LowFuelThreshold:
		s.lowFuelWarned = false
	}

	outcome := Evaluate(l, s.Terrain, s.Limits)
	if outcome.Kind == Airborne {
		return
	}
	s.settle(outcome)
}

// settle applies a Safe or Crash result and decides whether the game is over.
func (s *GameSession) settle(outcome LandingOutcome) {
	l := s.Lander
	s.LastOutcome = outcome
	s.cutThrust()

	switch outcome.Kind {
	case Safe:
		s.AttemptScore = outcome.Score.Total()
		s.Message = fmt.Sprintf("%d SAFE LANDING + %d BONUS = %d TOTAL",
			outcome.Score.BaseScore, outcome.Score.PerfectBonus, s.AttemptScore)
		s.emitAtShip(EventSafeLanding, s.AttemptScore)
	case Crash:
		s.AttemptScore = 0
		s.Message = "CRASHED! SCORE: 0"
		l.Fuel -= CrashFuelPenalty
		if l.Fuel < 0 {
			l.Fuel = 0
		}
		c := l.Center()
		s.Particles.SpawnCrash(c.X, c.Y, CrashParticles, s.rng)
		s.Camera.AddShake(6, 0.6)
		s.emitAtShip(EventCrash, 0)
	}

	slog.Info("attempt settled",
		"attempt", s.Attempt, "outcome", outcome.Kind.String(),
		"score", s.AttemptScore, "fuel", int(l.Fuel))

	if l.Fuel <= 0 {
		s.TotalScore += s.AttemptScore
		s.AttemptScore = 0
		s.Message = ""
		s.Initials = ""
		s.State = StateEnteringInitials
		s.emitAtShip(EventGameOver, s.TotalScore)
		return
	}
	s.State = StateResult
}

func (s *GameSession) cutThrust() {
	wasBurning := s.Lander.Burning
	s.Lander.ResetThrust()
	if wasBurning {
		s.emitAtShip(EventThrustStop, 0)
	}
}

func (s *GameSession) emitAtShip(t EventType, data int) {
	c := s.Lander.Center()
	s.Events.Emit(Event{Type: t, X: c.X, Y: c.Y, Data: data})
}

// TypeInitial appends a letter while entering initials.
func (s *GameSession) TypeInitial(r rune) {
	if s.State != StateEnteringInitials || len(s.Initials) >= MaxInitials {
		return
	}
	if r > unicode.MaxASCII || !unicode.IsLetter(r) {
		return
	}
	s.Initials += string(unicode.ToUpper(r))
}

func (s *GameSession) Backspace() {
	if s.State != StateEnteringInitials || s.Initials == "" {
		return
	}
	s.Initials = s.Initials[:len(s.Initials)-1]
}

// SubmitInitials sends the final score to the leaderboard once three letters
// are in and shows the table.
func (s *GameSession) SubmitInitials() {
	if s.State != StateEnteringInitials || len(s.Initials) != MaxInitials {
		return
	}
	s.submitScore(s.Initials, s.TotalScore)
	s.State = StateScoreboard
}

// submitScore hands the score to the store off the tick goroutine.
func (s *GameSession) submitScore(initials string, score int) {
	if s.store == nil {
		return
	}
	store := s.store
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.AddScore(ctx, initials, score); err != nil {
			slog.Warn("high score not saved", "initials", initials, "score", score, "error", err)
		}
		s.fetchScores(ctx, store)
	}()
}

// refreshScores reloads the table in the background.
func (s *GameSession) refreshScores() {
	if s.store == nil {
		return
	}
	store := s.store
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		s.fetchScores(ctx, store)
	}()
}

func (s *GameSession) fetchScores(ctx context.Context, store scores.Store) {
	top, err := store.TopScores(ctx)
	if err != nil {
		slog.Warn("high scores unavailable", "error", err)
		return
	}
	select {
	case s.scoreUpdates <- top:
	default:
		slog.Debug("dropping stale high score update")
	}
}

func (s *GameSession) drainScoreUpdates() {
	for {
		select {
		case top := <-s.scoreUpdates:
			s.HighScores = top
		default:
			return
		}
	}
}

// Wait blocks until background leaderboard calls finish and applies their
// results. Frontends call it on shutdown so a final score is not lost.
func (s *GameSession) Wait() {
	s.pending.Wait()
	s.drainScoreUpdates()
}

// ShipVisible reports whether renderers should draw the ship.
func (s *GameSession) ShipVisible() bool {
	switch s.State {
	case StateFlying:
		return true
	case StateResult:
		return s.Lander.Landed
	}
	return false
}

// ZoneLabel returns the multiplier text shown under a flat zone.
func (s *GameSession) ZoneLabel(z FlatZone) string {
	return fmt.Sprintf("%dX", Multiplier(z.Width(), s.Lander.Width))
}

// HUDStatus is the numeric readout shown while flying.
type HUDStatus struct {
	Altitude int
	VertVel  int
	HorVel   int
	Rotation int
	Fuel     int
	Score    int
}

func (h HUDStatus) String() string {
	return fmt.Sprintf("Alt: %4d | Vert Vel: %4d | Hor Vel: %4d | Rotation: %3d | Fuel: %4d | Score: %7d",
		h.Altitude, h.VertVel, h.HorVel, h.Rotation, h.Fuel, h.Score)
}

func (s *GameSession) HUD() HUDStatus {
	l := s.Lander
	ground := s.Terrain.HeightAt(l.Center().X)
	return HUDStatus{
		Altitude: int(l.Altitude(ground)),
		VertVel:  floorInt(l.VY),
		HorVel:   floorInt(l.VX),
		Rotation: floorInt(l.Rotation),
		Fuel:     floorInt(l.Fuel),
		Score:    s.TotalScore,
	}
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

// OpenScoreStore picks the remote score server when configured, otherwise
// the local JSON file.
func OpenScoreStore(cfg Config) scores.Store {
	if cfg.ScoresURL != "" {
		return scores.NewClient(cfg.ScoresURL)
	}
	return scores.OpenFileStore(cfg.ScoresFile)
}
