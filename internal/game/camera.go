package game

// Camera scrolls horizontally over the terrain. Y never moves: the terrain is
// laid out in screen coordinates.
type Camera struct {
	X float64 // world x of the left screen edge

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world units
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// Follow centres the view on x, clamped so it never scrolls past either end
// of the terrain.
func (c *Camera) Follow(x, screenWidth, totalWidth float64) {
	maxX := totalWidth - screenWidth
	if maxX < 0 {
		maxX = 0
	}
	c.X = clampF(x-screenWidth/2, 0, maxX)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and picks new random offsets.
func (c *Camera) UpdateShake(dt float64, r *Rand) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = r.RangeF(-mag, mag)
	c.ShakeY = r.RangeF(-mag, mag)
}

// EffectiveX returns the scroll position with shake applied.
func (c *Camera) EffectiveX() float64 {
	return c.X + c.ShakeX
}
