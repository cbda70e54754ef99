package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Floats returns the colour as 0..1 components.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

var Palette = struct {
	Sky       RGB
	Terrain   RGB
	FlatZone  RGB
	Hull      RGB
	Legs      RGB
	Flame     RGB
	FlameTip  RGB
	Text      RGB
	Highlight RGB
	Warning   RGB
	Debris    RGB
}{
	Sky:       RGB{R: 0, G: 0, B: 0},
	Terrain:   RGB{R: 255, G: 255, B: 255},
	FlatZone:  RGB{R: 255, G: 255, B: 255},
	Hull:      RGB{R: 200, G: 200, B: 200},
	Legs:      RGB{R: 160, G: 160, B: 160},
	Flame:     RGB{R: 255, G: 165, B: 0},
	FlameTip:  RGB{R: 255, G: 230, B: 120},
	Text:      RGB{R: 255, G: 255, B: 255},
	Highlight: RGB{R: 100, G: 255, B: 100},
	Warning:   RGB{R: 255, G: 80, B: 80},
	Debris:    RGB{R: 255, G: 255, B: 255},
}

// FuelColor returns green/yellow/red based on the tank fraction.
func FuelColor(frac float64) RGB {
	if frac > 0.6 {
		return RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return RGB{R: 220, G: 220, B: 60}
	}
	return RGB{R: 220, G: 60, B: 60}
}
