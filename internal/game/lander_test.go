package game

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestLanderRotateWraps(t *testing.T) {
	tests := []struct {
		start float64
		dir   RotateDir
		dt    float64
		want  float64
	}{
		{0, RotateRight, 0.5, 50},
		{0, RotateLeft, 0.5, 310},
		{350, RotateRight, 0.2, 10},
		{10, RotateLeft, 0.05, 5},
		{180, RotateLeft, 3.6, 180},
	}
	for _, tt := range tests {
		l := NewLander(25, 18, StartFuel)
		l.Rotation = tt.start
		l.Rotate(tt.dir, RotationSpeed, tt.dt)
		if math.Abs(l.Rotation-tt.want) > 1e-6 {
			t.Errorf("Rotate(%v from %v, dt %v) = %v, want %v", tt.dir, tt.start, tt.dt, l.Rotation, tt.want)
		}
		if l.Rotation < 0 || l.Rotation >= 360 {
			t.Errorf("rotation %v outside [0, 360)", l.Rotation)
		}
	}
}

func TestApplyThrustDirection(t *testing.T) {
	l := NewLander(25, 18, StartFuel)
	l.ApplyThrust(Thrust, 0.1)
	if math.Abs(l.VY+Thrust*0.1) > eps || math.Abs(l.VX) > eps {
		t.Errorf("upright thrust gave v = (%v, %v), want (0, %v)", l.VX, l.VY, -Thrust*0.1)
	}
	if !l.Burning {
		t.Error("Burning = false after thrust")
	}

	l = NewLander(25, 18, StartFuel)
	l.Rotation = 90
	l.ApplyThrust(Thrust, 0.1)
	if math.Abs(l.VX-Thrust*0.1) > eps || math.Abs(l.VY) > 1e-6 {
		t.Errorf("thrust at 90 gave v = (%v, %v), want (%v, 0)", l.VX, l.VY, Thrust*0.1)
	}
}

func TestFuelDecreasesUnderThrust(t *testing.T) {
	l := NewLander(25, 18, 100)
	prev := l.Fuel
	for i := 0; i < 1000 && l.Fuel > 0; i++ {
		l.ApplyThrust(Thrust, 0.05)
		if l.Fuel >= prev {
			t.Fatalf("step %d: fuel %v did not drop from %v", i, l.Fuel, prev)
		}
		if l.Fuel < 0 {
			t.Fatalf("step %d: fuel went negative: %v", i, l.Fuel)
		}
		prev = l.Fuel
	}
	if l.Fuel != 0 {
		t.Fatalf("fuel = %v after burning out, want 0", l.Fuel)
	}

	vx, vy := l.VX, l.VY
	l.ApplyThrust(Thrust, 0.05)
	if l.Burning {
		t.Error("Burning = true with an empty tank")
	}
	if l.VX != vx || l.VY != vy {
		t.Error("thrust applied with an empty tank")
	}
	if l.Fuel != 0 {
		t.Errorf("fuel = %v, want 0", l.Fuel)
	}
}

func TestGravityAndPosition(t *testing.T) {
	l := NewLander(25, 18, StartFuel)
	l.X, l.Y, l.VX = 100, 100, 2
	l.ApplyGravity(Gravity, 0.5)
	l.UpdatePosition(0.5)
	if l.VY != Gravity*0.5 {
		t.Errorf("VY = %v, want %v", l.VY, Gravity*0.5)
	}
	if l.X != 101 || l.Y != 100+Gravity*0.25 {
		t.Errorf("position = (%v, %v), want (101, %v)", l.X, l.Y, 100+Gravity*0.25)
	}
}

func TestResetThrust(t *testing.T) {
	l := NewLander(25, 18, StartFuel)
	l.ApplyThrust(Thrust, 0.2)
	l.ResetThrust()
	if l.Burning || l.ThrustTimer != 0 {
		t.Errorf("after ResetThrust burning=%v timer=%v", l.Burning, l.ThrustTimer)
	}
}

func TestLanderReset(t *testing.T) {
	rng := NewRand(9)
	l := NewLander(25, 18, StartFuel)
	for _i := 0; _i < 50; _i++ {
		l.Reset(1280, 960, 500, rng)
		if l.X != 1280/2-12.5 || math.Abs(l.Y-320) > 1e-9 {
			t.Fatalf("spawn = (%v, %v), want (627.5, 320)", l.X, l.Y)
		}
		if l.VX < 1 || l.VX > ShipMaxStartVX || l.VY != 0 {
			t.Fatalf("spawn velocity = (%v, %v)", l.VX, l.VY)
		}
		if tilt := math.Abs(signedDegrees(l.Rotation)); tilt > 90 {
			t.Fatalf("spawn tilt = %v, want <= 90", tilt)
		}
		if l.Fuel != 500 || l.Landed || l.Burning {
			t.Fatalf("reset left fuel=%v landed=%v burning=%v", l.Fuel, l.Landed, l.Burning)
		}
	}
}

func TestFeet(t *testing.T) {
	l := NewLander(20, 10, StartFuel)
	l.X, l.Y = 100, 200

	left, right := l.Feet()
	if math.Abs(left.X-100) > eps || math.Abs(left.Y-210) > eps {
		t.Errorf("upright left foot = %+v, want (100, 210)", left)
	}
	if math.Abs(right.X-120) > eps || math.Abs(right.Y-210) > eps {
		t.Errorf("upright right foot = %+v, want (120, 210)", right)
	}

	l.Rotation = 180
	left, right = l.Feet()
	if math.Abs(left.X-120) > 1e-6 || math.Abs(left.Y-200) > 1e-6 {
		t.Errorf("inverted left foot = %+v, want (120, 200)", left)
	}
	if math.Abs(right.X-100) > 1e-6 || math.Abs(right.Y-200) > 1e-6 {
		t.Errorf("inverted right foot = %+v, want (100, 200)", right)
	}
}

func TestAltitude(t *testing.T) {
	l := NewLander(20, 10, StartFuel)
	l.Y = 100
	if got := l.Altitude(150.7); got != 40 {
		t.Errorf("Altitude = %v, want 40", got)
	}
	if got := l.Altitude(90); got != 0 {
		t.Errorf("Altitude below ground = %v, want 0", got)
	}
}
