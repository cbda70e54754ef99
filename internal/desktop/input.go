package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"lander/internal/game"
)

type Input struct {
	prevKeys map[glfw.Key]bool
	typed    []rune
}

func NewInput(window *glfw.Window) *Input {
	in := &Input{prevKeys: make(map[glfw.Key]bool)}
	window.SetCharCallback(func(_ *glfw.Window, ch rune) {
		in.typed = append(in.typed, ch)
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// TakeTyped returns the characters typed since the last call.
func (in *Input) TakeTyped() []rune {
	out := in.typed
	in.typed = nil
	return out
}

func anyDown(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// FlightControls samples the held flight keys.
func FlightControls(window *glfw.Window) game.Controls {
	return game.Controls{
		RotateLeft:  anyDown(window, glfw.KeyLeft, glfw.KeyA),
		RotateRight: anyDown(window, glfw.KeyRight, glfw.KeyD),
		Thrust:      anyDown(window, glfw.KeyUp, glfw.KeyW, glfw.KeySpace),
	}
}

// HandleCommands applies the one-shot keys for the session's current state.
// Every tracked key is polled each frame so edge detection stays correct.
func (in *Input) HandleCommands(window *glfw.Window, s *game.GameSession) {
	space := in.JustPressed(window, glfw.KeySpace)
	cont := in.JustPressed(window, glfw.KeyC)
	restart := in.JustPressed(window, glfw.KeyR)
	enter := in.JustPressed(window, glfw.KeyEnter) || in.JustPressed(window, glfw.KeyKPEnter)
	backspace := in.JustPressed(window, glfw.KeyBackspace)
	typed := in.TakeTyped()

	switch s.State {
	case game.StateTitle:
		if space || enter {
			s.Start()
		}
	case game.StateResult:
		if cont {
			s.Continue()
		}
	case game.StateEnteringInitials:
		for _, ch := range typed {
			s.TypeInitial(ch)
		}
		if backspace {
			s.Backspace()
		}
		if enter {
			s.SubmitInitials()
		}
	case game.StateScoreboard:
		if restart {
			s.Restart()
		}
	}
}
