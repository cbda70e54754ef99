package game

import (
	"math"
	"testing"
)

func checkTerrain(t *testing.T, tr *Terrain) {
	t.Helper()
	if len(tr.Points) < 2 {
		t.Fatalf("terrain has %d points", len(tr.Points))
	}
	if tr.Points[0].X != 0 {
		t.Errorf("first point x = %v, want 0", tr.Points[0].X)
	}
	if last := tr.Points[len(tr.Points)-1].X; last < tr.TotalWidth {
		t.Errorf("last point x = %v, want >= %v", last, tr.TotalWidth)
	}
	for i := 1; i < len(tr.Points); i++ {
		if tr.Points[i].X < tr.Points[i-1].X {
			t.Fatalf("point %d x = %v goes back from %v", i, tr.Points[i].X, tr.Points[i-1].X)
		}
	}
	for i, z := range tr.Zones {
		if z.Width() < tr.MinZoneWidth() {
			t.Errorf("zone %d width = %v, want >= %v", i, z.Width(), tr.MinZoneWidth())
		}
		if z.EndX > tr.TotalWidth {
			t.Errorf("zone %d ends at %v past %v", i, z.EndX, tr.TotalWidth)
		}
		if i == 0 {
			continue
		}
		prev := tr.Zones[i-1]
		if z.StartX <= prev.EndX {
			t.Errorf("zone %d [%v,%v] overlaps zone %d [%v,%v]", i, z.StartX, z.EndX, i-1, prev.StartX, prev.EndX)
		}
		if gap := z.StartX - prev.EndX; gap < tr.MinZoneGap() {
			t.Errorf("gap before zone %d = %v, want >= %v", i, gap, tr.MinZoneGap())
		}
	}
}

func TestTerrainGenerationShape(t *testing.T) {
	shipW, _ := ShipSize(1280)
	zones := 0
	for seed := uint64(1); seed <= 20; seed++ {
		tr := NewTerrain(1280*TerrainWidthScreens, 960, shipW, NewRand(seed))
		checkTerrain(t, tr)
		zones += len(tr.Zones)

		for _, z := range tr.Zones {
			mid := (z.StartX + z.EndX) / 2
			if got := tr.HeightAt(mid); got != z.Y {
				t.Errorf("seed %d: HeightAt(%v) = %v on zone at y %v", seed, mid, got, z.Y)
			}
		}
	}
	if zones == 0 {
		t.Error("no flat zones generated across 20 terrains")
	}
}

func TestTerrainMinZoneWidth(t *testing.T) {
	tr := NewTerrain(1000, 960, 25, NewRand(3))
	if got := tr.MinZoneWidth(); got != 29 {
		t.Errorf("MinZoneWidth() = %v, want 29", got)
	}
	if got := tr.MinZoneGap(); got != 261 {
		t.Errorf("MinZoneGap() = %v, want 261", got)
	}
}

func TestTerrainResetTwice(t *testing.T) {
	tr := NewTerrain(12800, 960, 25, NewRand(42))
	first := append([]TerrainPoint(nil), tr.Points...)

	tr.Reset()
	checkTerrain(t, tr)
	tr.Reset()
	checkTerrain(t, tr)

	same := len(first) == len(tr.Points)
	for i := 0; same && i < len(first); i++ {
		same = first[i] == tr.Points[i]
	}
	if same {
		t.Error("Reset produced the same terrain as the original")
	}
}

func TestHeightAtDefinedEverywhere(t *testing.T) {
	tr := NewTerrain(12800, 960, 25, NewRand(7))
	for _, p := range tr.Points {
		if h := tr.HeightAt(p.X); math.IsNaN(h) || math.IsInf(h, 0) {
			t.Fatalf("HeightAt(%v) = %v", p.X, h)
		}
	}
	for x := 0.0; x <= tr.TotalWidth; x += 0.7 {
		if h := tr.HeightAt(x); math.IsNaN(h) || math.IsInf(h, 0) {
			t.Fatalf("HeightAt(%v) = %v", x, h)
		}
	}
}

func TestHeightAt(t *testing.T) {
	tr := &Terrain{
		Points:       []TerrainPoint{{0, 100}, {10, 200}},
		TotalWidth:   10,
		ScreenHeight: 960,
	}
	tests := []struct {
		x    float64
		want float64
	}{
		{5, 150},
		{0, 100},
		{10, 200},
		{2.5, 125},
		{0.05, 101}, // 100.5 rounds up
		{-20, 100},  // clamped to the first point
		{50, 200},   // clamped to the last point
	}
	for _, tt := range tests {
		if got := tr.HeightAt(tt.x); got != tt.want {
			t.Errorf("HeightAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestHeightAtDegenerateSegment(t *testing.T) {
	tr := &Terrain{
		Points:       []TerrainPoint{{0, 100}, {10, 100}, {10, 300}, {20, 300}},
		TotalWidth:   20,
		ScreenHeight: 960,
	}
	if got := tr.HeightAt(10); got != 100 {
		t.Errorf("HeightAt(10) = %v, want 100", got)
	}
	if got := tr.HeightAt(15); got != 300 {
		t.Errorf("HeightAt(15) = %v, want 300", got)
	}
}

func TestHeightAtEmpty(t *testing.T) {
	tr := &Terrain{ScreenHeight: 600}
	if got := tr.HeightAt(5); got != 600 {
		t.Errorf("HeightAt on empty terrain = %v, want 600", got)
	}
}

func TestFlatZoneMembership(t *testing.T) {
	tr := &Terrain{
		Points: []TerrainPoint{{0, 80}, {200, 80}},
		Zones:  []FlatZone{{StartX: 100, EndX: 150, Y: 80}},
	}
	tests := []struct {
		x    float64
		want bool
	}{
		{120, true},
		{100, true},
		{150, true},
		{99, false},
		{151, false},
	}
	for _, tt := range tests {
		if got := tr.IsFlatZoneAt(tt.x); got != tt.want {
			t.Errorf("IsFlatZoneAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	if !tr.IsOnFlatZone(120, 84, FlatZoneSlack) {
		t.Error("IsOnFlatZone(120, 84) = false, want true")
	}
	if tr.IsOnFlatZone(120, 86, FlatZoneSlack) {
		t.Error("IsOnFlatZone(120, 86) = true, want false")
	}
	if tr.IsOnFlatZone(160, 80, FlatZoneSlack) {
		t.Error("IsOnFlatZone(160, 80) = true, want false")
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		zone, ship float64
		want       int
	}{
		{40, 25, 5},
		{49, 25, 5},
		{50, 25, 3},
		{74, 25, 3},
		{75, 25, 1},
		{200, 25, 1},
	}
	for _, tt := range tests {
		if got := Multiplier(tt.zone, tt.ship); got != tt.want {
			t.Errorf("Multiplier(%v, %v) = %d, want %d", tt.zone, tt.ship, got, tt.want)
		}
	}
}
