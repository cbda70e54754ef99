package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"lander/internal/game"
)

// latchHold is how long a flight key counts as held after its last key
// event. Terminals send no key-up, so holding relies on auto-repeat; the
// hold must outlast the usual repeat delay.
const latchHold = 300 * time.Millisecond

type control int

const (
	ctlLeft control = iota
	ctlRight
	ctlThrust
	ctlCount
)

// keyLatch turns a stream of key presses into held controls.
type keyLatch struct {
	until [ctlCount]time.Time
}

func (k *keyLatch) press(c control, now time.Time) {
	k.until[c] = now.Add(latchHold)
}

func (k *keyLatch) held(c control, now time.Time) bool {
	return now.Before(k.until[c])
}

func (k *keyLatch) reset() {
	k.until = [ctlCount]time.Time{}
}

// Controls returns the flight input at now.
func (k *keyLatch) Controls(now time.Time) game.Controls {
	return game.Controls{
		RotateLeft:  k.held(ctlLeft, now),
		RotateRight: k.held(ctlRight, now),
		Thrust:      k.held(ctlThrust, now),
	}
}

// flightControl maps a key to a flight control.
func flightControl(key tcell.Key, ch rune) (control, bool) {
	switch key {
	case tcell.KeyLeft:
		return ctlLeft, true
	case tcell.KeyRight:
		return ctlRight, true
	case tcell.KeyUp:
		return ctlThrust, true
	case tcell.KeyRune:
		switch ch {
		case 'a', 'A':
			return ctlLeft, true
		case 'd', 'D':
			return ctlRight, true
		case 'w', 'W', ' ':
			return ctlThrust, true
		}
	}
	return 0, false
}

// handleKey applies one key press to the session. It returns false when the
// player asked to quit.
func (a *App) handleKey(key tcell.Key, ch rune, now time.Time) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return false
	}
	s := a.session
	enter := key == tcell.KeyEnter

	switch s.State {
	case game.StateTitle:
		if enter || (key == tcell.KeyRune && ch == ' ') {
			s.Start()
			a.latch.reset()
		}
	case game.StateFlying:
		if c, ok := flightControl(key, ch); ok {
			a.latch.press(c, now)
		}
	case game.StateResult:
		if key == tcell.KeyRune && (ch == 'c' || ch == 'C') {
			s.Continue()
			a.latch.reset()
		}
	case game.StateEnteringInitials:
		switch {
		case key == tcell.KeyRune:
			s.TypeInitial(ch)
		case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
			s.Backspace()
		case enter:
			s.SubmitInitials()
		}
	case game.StateScoreboard:
		if key == tcell.KeyRune && (ch == 'r' || ch == 'R') {
			s.Restart()
		}
	}
	return true
}
