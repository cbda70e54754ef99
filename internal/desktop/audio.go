package desktop

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"lander/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundStart SoundKind = iota
	SoundLanding
	SoundCrash
	SoundLowFuel
	SoundGameOver
)

const (
	sfxVolume    = 0.55
	thrustVolume = 0.35
	musicVolume  = 0.12
)

// Audio plays procedural effects, a looping engine rumble and title music.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}

	mu     sync.Mutex
	thrust oto.Player
	music  oto.Player
}

func NewAudio() (*Audio, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Audio{ctx: ctx, ready: ready}, nil
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Attach wires the audio to session events.
func (a *Audio) Attach(bus *game.EventBus) {
	bus.Subscribe(game.EventAttemptStart, func(game.Event) {
		a.StopMusic()
		a.Play(SoundStart)
	})
	bus.Subscribe(game.EventThrustStart, func(game.Event) { a.SetThrust(true) })
	bus.Subscribe(game.EventThrustStop, func(game.Event) { a.SetThrust(false) })
	bus.Subscribe(game.EventLowFuel, func(game.Event) { a.Play(SoundLowFuel) })
	bus.Subscribe(game.EventSafeLanding, func(game.Event) { a.Play(SoundLanding) })
	bus.Subscribe(game.EventCrash, func(game.Event) { a.Play(SoundCrash) })
	bus.Subscribe(game.EventGameOver, func(game.Event) { a.Play(SoundGameOver) })
}

// Play plays a procedurally generated sound effect.
func (a *Audio) Play(kind SoundKind) {
	if !a.isReady() {
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			slog.Debug("close sound player", "error", err)
		}
	}()
}

// SetThrust starts or pauses the engine loop.
func (a *Audio) SetThrust(on bool) {
	if !a.isReady() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.thrust == nil {
		a.thrust = a.ctx.NewPlayer(&thrustReader{seed: uint64(time.Now().UnixNano())})
		a.thrust.SetVolume(thrustVolume)
	}
	if on {
		a.thrust.Play()
	} else {
		a.thrust.Pause()
	}
}

// StartMusic begins the title drone if it is not already playing.
func (a *Audio) StartMusic() {
	if !a.isReady() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music != nil {
		return
	}
	a.music = a.ctx.NewPlayer(&musicReader{})
	a.music.SetVolume(musicVolume)
	a.music.Play()
}

func (a *Audio) StopMusic() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music != nil {
		a.music.Close()
		a.music = nil
	}
}

// Close stops the loops. One-shot effects finish on their own.
func (a *Audio) Close() {
	if a == nil {
		return
	}
	a.StopMusic()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.thrust != nil {
		a.thrust.Close()
		a.thrust = nil
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundStart:
		return genStart()
	case SoundLanding:
		return genLanding()
	case SoundCrash:
		return genCrash(uint64(time.Now().UnixNano()))
	case SoundLowFuel:
		return genLowFuel()
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// genStart: two rising FM blips.
func genStart() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 660.0
		if p >= 0.5 {
			freq = 990.0
		}
		local := math.Mod(p, 0.5) * 2
		env := adsr(local, 0.02, 0.4, 0.2, 0.3)
		putStereoF32(buf, i, softSat(fm(t, freq, 1.0, 0.8)*env*0.35))
	}
	return buf
}

// genLanding: ascending FM bell arpeggio.
func genLanding() []byte {
	freqs := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := SampleRate * 90 / 1000
	tail := int(0.3 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for i := start; i < total; i++ {
			t := float64(i-start) / SampleRate
			p := float64(i-start) / float64(dur)
			env := adsr(p, 0.01, 0.3, 0.25, 0.5)
			mix[i] += fm(t, freq, 3.5, 1.6*env) * env * 0.22
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: sub boom, noise crack and a long rumble tail.
func genCrash(seed uint64) []byte {
	dur := 1.1
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp1, lp2, rumLP := 0.0, 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 90.0 * math.Pow(16.0/90.0, p*3.1)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*3.2) * 0.78

		crack := 0.0
		if p < 0.018 {
			crack = lcg(&seed) * (1 - p/0.018) * 0.6
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*4.0) * 0.47

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*1.5) * 0.26

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.86))
	}
	return buf
}

// genLowFuel: three short alarm beeps.
func genLowFuel() []byte {
	const beeps = 3
	beepLen := int(0.09 * SampleRate)
	gap := int(0.06 * SampleRate)
	n := beeps*(beepLen+gap) - gap
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		local := i % (beepLen + gap)
		if local >= beepLen {
			continue
		}
		t := float64(i) / SampleRate
		env := adsr(float64(local)/float64(beepLen), 0.05, 0.2, 0.7, 0.2)
		s := math.Sin(2*math.Pi*880*t) + 0.3*math.Sin(2*math.Pi*1760*t)
		putStereoF32(buf, i, softSat(s*env*0.3))
	}
	return buf
}

// genGameOver: falling three-note FM phrase.
func genGameOver() []byte {
	dur := 0.9
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.16}, // C4
		{220.00, 0.32}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// thrustReader is an endless low-passed noise rumble with a slow wobble.
type thrustReader struct {
	seed  uint64
	lp    float64
	frame int
}

func (r *thrustReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	for i := 0; i < samples; i++ {
		r.lp = r.lp*0.92 + lcg(&r.seed)*0.08
		t := float64(r.frame) / SampleRate
		wobble := 0.8 + 0.2*math.Sin(2*math.Pi*7*t)
		putStereoF32(p, i, softSat(r.lp*wobble*2.2))
		r.frame++
	}
	return samples * 8, nil
}

// musicReader is the title drone: a slow two-chord FM pad.
type musicReader struct {
	frame int
}

var titleChords = [][]float64{
	{110.00, 164.81, 220.00}, // A2 E3 A3
	{98.00, 146.83, 196.00},  // G2 D3 G3
}

func (m *musicReader) Read(p []byte) (int, error) {
	const chordLen = 4.0 // seconds
	samples := len(p) / 8
	for i := 0; i < samples; i++ {
		t := float64(m.frame) / SampleRate
		idx := int(t/chordLen) % len(titleChords)
		local := math.Mod(t, chordLen) / chordLen
		env := 0.6 + 0.4*math.Sin(math.Pi*local)
		s := 0.0
		for _, f := range titleChords[idx] {
			s += fm(t, f, 2.0, 0.4) * 0.18
		}
		putStereoF32(p, i, softSat(s*env))
		m.frame++
	}
	return samples * 8, nil
}
