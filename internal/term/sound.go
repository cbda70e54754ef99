package term

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"lander/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short tones for session events through the system speaker.
type Sound struct {
	mixer  *beep.Mixer
	thrust *beep.Ctrl
}

// NewSound initializes the speaker and starts an empty mixer on it.
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &Sound{mixer: &beep.Mixer{}}
	s.thrust = &beep.Ctrl{Streamer: newVolume(&rumble{seed: uint64(time.Now().UnixNano())}, 0.25), Paused: true}
	s.mixer.Add(s.thrust)
	speaker.Play(s.mixer)
	return s, nil
}

// Attach subscribes the sound to session events.
func (s *Sound) Attach(bus *game.EventBus) {
	bus.Subscribe(game.EventAttemptStart, func(game.Event) { s.play(chime(660, 990)) })
	bus.Subscribe(game.EventThrustStart, func(game.Event) { s.setThrust(true) })
	bus.Subscribe(game.EventThrustStop, func(game.Event) { s.setThrust(false) })
	bus.Subscribe(game.EventLowFuel, func(game.Event) { s.play(alarm()) })
	bus.Subscribe(game.EventSafeLanding, func(game.Event) { s.play(chime(523.25, 659.25, 783.99, 1046.5)) })
	bus.Subscribe(game.EventCrash, func(game.Event) { s.play(boom()) })
	bus.Subscribe(game.EventGameOver, func(game.Event) { s.play(chime(329.63, 261.63, 220)) })
}

func (s *Sound) play(st beep.Streamer) {
	if s == nil || st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Sound) setThrust(on bool) {
	if s == nil {
		return
	}
	speaker.Lock()
	s.thrust.Paused = !on
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (s *Sound) Close() {
	if s == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero is
// mapped to a silent stream.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a sine note of the given length with a short fade at both ends.
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	n := sampleRate.N(d)
	return &fade{Streamer: beep.Take(n, sine), total: n, edge: sampleRate.N(8 * time.Millisecond)}
}

// chime plays freqs one after another.
func chime(freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		if t := tone(f, 110*time.Millisecond); t != nil {
			notes = append(notes, t)
		}
	}
	return newVolume(beep.Seq(notes...), 0.3)
}

// alarm is three short high beeps.
func alarm() beep.Streamer {
	var parts []beep.Streamer
	for _i := 0; _i < 3; _i++ {
		if t := tone(880, 90*time.Millisecond); t != nil {
			parts = append(parts, t, beep.Silence(sampleRate.N(60*time.Millisecond)))
		}
	}
	return newVolume(beep.Seq(parts...), 0.3)
}

// boom is a decaying burst of low-passed noise.
func boom() beep.Streamer {
	n := sampleRate.N(900 * time.Millisecond)
	return newVolume(beep.Take(n, &decay{
		Streamer: &rumble{seed: uint64(time.Now().UnixNano())},
		total:    n,
	}), 0.8)
}

// fade applies a linear attack and release of edge samples each.
type fade struct {
	beep.Streamer
	pos, total, edge int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if f.edge > 0 {
			g = math.Min(1, math.Min(float64(f.pos)/float64(f.edge), float64(f.total-f.pos)/float64(f.edge)))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

// decay fades its input out exponentially over total samples.
type decay struct {
	beep.Streamer
	pos, total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-4 * float64(d.pos) / float64(d.total))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

// rumble is endless low-passed noise.
type rumble struct {
	seed uint64
	lp   float64
}

func (r *rumble) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		r.seed = r.seed*6364136223846793005 + 1442695040888963407
		noise := float64(int64(r.seed>>33)-int64(1<<30)) / float64(1<<30)
		r.lp = r.lp*0.9 + noise*0.1
		v := math.Max(-1, math.Min(1, r.lp*3))
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }
