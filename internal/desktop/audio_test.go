package desktop

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func samplesOf(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestGeneratedSoundsAreBounded(t *testing.T) {
	for _, kind := range []SoundKind{SoundStart, SoundLanding, SoundCrash, SoundLowFuel, SoundGameOver} {
		buf := generateSound(kind)
		if len(buf) == 0 || len(buf)%8 != 0 {
			t.Fatalf("sound %d: %d bytes", kind, len(buf))
		}
		peak := float32(0)
		s := samplesOf(buf)
		for i := 0; i < len(s); i += 2 {
			if s[i] != s[i+1] {
				t.Fatalf("sound %d: channels differ at frame %d", kind, i/2)
			}
			if math.IsNaN(float64(s[i])) || s[i] > 1 || s[i] < -1 {
				t.Fatalf("sound %d: sample %v out of range", kind, s[i])
			}
			peak = max(peak, float32(math.Abs(float64(s[i]))))
		}
		if peak == 0 {
			t.Fatalf("sound %d is silent", kind)
		}
	}
}

func TestCrashIsDeterministicPerSeed(t *testing.T) {
	a, b := genCrash(7), genCrash(7)
	if string(a) != string(b) {
		t.Fatal("same seed produced different crash sounds")
	}
}

func TestLoopReadersFillBuffer(t *testing.T) {
	p := make([]byte, 4096)
	for name, r := range map[string]io.Reader{
		"thrust": &thrustReader{seed: 1},
		"music":  &musicReader{},
	} {
		n, err := r.Read(p)
		if err != nil || n != len(p) {
			t.Fatalf("%s: read %d, %v", name, n, err)
		}
	}
}

func TestSoundReaderEOF(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3}}
	p := make([]byte, 2)
	if n, _ := r.Read(p); n != 2 {
		t.Fatalf("first read %d", n)
	}
	if n, _ := r.Read(p); n != 1 {
		t.Fatalf("second read %d", n)
	}
	if _, err := r.Read(p); err == nil {
		t.Fatal("expected EOF")
	}
}

func TestAdsrShape(t *testing.T) {
	if v := adsr(0, 0.1, 0.2, 0.5, 0.2); v != 0 {
		t.Fatalf("start = %v", v)
	}
	if v := adsr(0.1, 0.1, 0.2, 0.5, 0.2); math.Abs(v-1) > 1e-9 {
		t.Fatalf("peak = %v", v)
	}
	if v := adsr(0.5, 0.1, 0.2, 0.5, 0.2); v != 0.5 {
		t.Fatalf("sustain = %v", v)
	}
	if v := adsr(1, 0.1, 0.2, 0.5, 0.2); math.Abs(v) > 1e-9 {
		t.Fatalf("end = %v", v)
	}
}

func TestNilAudioIsSilent(t *testing.T) {
	var a *Audio
	a.Play(SoundCrash)
	a.SetThrust(true)
	a.StartMusic()
	a.StopMusic()
	a.Close()
}
