package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"lander/internal/game"
	"lander/internal/scores"
)

// Fuel gauge placement in screen units.
const (
	gaugeX, gaugeY = 10.0, 40.0
	gaugeW, gaugeH = 200.0, 10.0
)

// RunDesktop opens a window and runs the game until it is closed or Escape is
// pressed. It must be called from the main goroutine.
func RunDesktop(cfg game.Config, store scores.Store) error {
	runtime.LockOSThread()

	window, err := initWindow(int(cfg.ScreenWidth), int(cfg.ScreenHeight), "Lunar Lander")
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	var audio *Audio
	if !cfg.Mute {
		audio, err = NewAudio()
		if err != nil {
			slog.Warn("audio init failed, continuing without sound", "error", err)
			audio = nil
		}
	}
	defer audio.Close()

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	sr, sg, sb := game.Palette.Sky.Floats()
	gl.ClearColor(sr, sg, sb, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	session := game.NewGameSession(cfg, store)
	defer session.Wait()
	if audio != nil {
		audio.Attach(session.Events)
	}
	input := NewInput(window)
	flicker := game.NewRand(0xF1A3E)

	slog.Info("desktop frontend started", "width", cfg.ScreenWidth, "height", cfg.ScreenHeight, "mute", cfg.Mute)

	// Reusable render buffers.
	var terrainBuf, padBuf, shipBuf, debrisBuf, gaugeBuf []float32

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := game.StepDuration(now - last)
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		input.HandleCommands(window, session)
		var ctl game.Controls
		if session.State == game.StateFlying {
			ctl = FlightControls(window)
		}
		session.Step(dt, ctl)

		if session.State == game.StateTitle {
			audio.StartMusic()
		}

		scale := float32(float64(fbW) / cfg.ScreenWidth)
		camX := session.Camera.EffectiveX()
		view := View{CamX: camX, CamY: session.Camera.ShakeY, Scale: scale}

		rend.BeginFrame(view, fbW, fbH)

		terrainBuf = terrainStrip(session.Terrain, camX, cfg.ScreenWidth, terrainBuf)
		rend.DrawShapes(terrainBuf, gl.LINE_STRIP)
		padBuf = padLines(session.Terrain, camX, cfg.ScreenWidth, padBuf)
		rend.DrawShapes(padBuf, gl.LINES)

		if session.ShipVisible() {
			shipBuf = shipLines(session.Lander, flicker.Float64(), shipBuf)
			rend.DrawShapes(shipBuf, gl.LINES)
		}
		debrisBuf = debrisSprites(session.Particles, debrisBuf)
		rend.DrawDebris(debrisBuf)

		// HUD uses a fixed view without shake.
		rend.SetView(View{Scale: scale})
		if session.State == game.StateFlying || session.State == game.StateResult {
			tris, frame := fuelBar(gaugeX, gaugeY, gaugeW, gaugeH, session.Lander.FuelFraction(cfg.StartFuel), gaugeBuf)
			rend.DrawShapes(tris, gl.TRIANGLES)
			rend.DrawShapes(frame, gl.LINES)
			gaugeBuf = tris[:0]
		}
		RenderHUD(rend, session, now)

		window.SwapBuffers()
	}

	slog.Info("desktop frontend stopped", "total_score", session.TotalScore, "attempts", session.Attempt)
	return nil
}
