package term

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"lander/internal/game"
	"lander/internal/scores"
)

const frameInterval = time.Second / game.FPS

// App ties a session to a terminal screen.
type App struct {
	screen  tcell.Screen
	session *game.GameSession
	render  *Renderer
	latch   keyLatch
	start   time.Time
	last    time.Time
}

func newApp(screen tcell.Screen, session *game.GameSession, now time.Time) *App {
	return &App{
		screen:  screen,
		session: session,
		render:  NewRenderer(screen),
		start:   now,
		last:    now,
	}
}

// HandleEvent processes one terminal event and reports whether to keep running.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Tick advances the session to now and redraws.
func (a *App) Tick(now time.Time) {
	dt := game.StepDuration(now.Sub(a.last).Seconds())
	a.last = now

	var ctl game.Controls
	if a.session.State == game.StateFlying {
		ctl = a.latch.Controls(now)
	}
	a.session.Step(dt, ctl)

	a.render.Draw(a.session, now.Sub(a.start).Seconds())
	a.screen.Show()
}

// Run plays the game in the terminal until Escape or Ctrl-C.
func Run(cfg game.Config, store scores.Store) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	session := game.NewGameSession(cfg, store)
	defer session.Wait()

	if !cfg.Mute {
		snd, err := NewSound()
		if err != nil {
			slog.Warn("audio init failed, continuing without sound", "error", err)
		} else {
			defer snd.Close()
			snd.Attach(session.Events)
		}
	}

	app := newApp(screen, session, time.Now())
	cols, rows := screen.Size()
	slog.Info("terminal frontend started", "cols", cols, "rows", rows)

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !app.HandleEvent(ev, time.Now()) {
				slog.Info("terminal frontend stopped", "total_score", session.TotalScore, "attempts", session.Attempt)
				return nil
			}
		case now := <-ticker.C:
			app.Tick(now)
		}
	}
}
