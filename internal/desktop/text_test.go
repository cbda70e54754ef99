package desktop

import "testing"

func TestFontAtlasLayout(t *testing.T) {
	a := buildFontAtlas()
	if a.cellW != 7 || a.cellH != 13 {
		t.Fatalf("cell = %dx%d, want 7x13", a.cellW, a.cellH)
	}
	b := a.img.Bounds()
	if b.Dx() != 7*fontCols || b.Dy() != 13*fontRows {
		t.Fatalf("atlas = %dx%d", b.Dx(), b.Dy())
	}

	// 'A' must leave ink in its cell.
	idx := int('A') - fontFirst
	x0, y0 := (idx%fontCols)*a.cellW, (idx/fontCols)*a.cellH
	ink := false
	for y := y0; y < y0+a.cellH && !ink; y++ {
		for x := x0; x < x0+a.cellW; x++ {
			if a.img.NRGBAAt(x, y).A > 0 {
				ink = true
				break
			}
		}
	}
	if !ink {
		t.Fatal("glyph A is blank")
	}
}

func TestGlyphUV(t *testing.T) {
	a := buildFontAtlas()
	u0, v0, u1, v1, ok := a.glyphUV(' ')
	if !ok || u0 != 0 || v0 != 0 {
		t.Fatalf("space uv = %v %v %v %v ok=%v", u0, v0, u1, v1, ok)
	}
	if u1 <= u0 || v1 <= v0 {
		t.Fatal("degenerate glyph rectangle")
	}
	for _, ch := range []rune{0x1f, 0x7f, 'é'} {
		if _, _, _, _, ok := a.glyphUV(ch); ok {
			t.Fatalf("glyph %q should be missing", ch)
		}
	}
}

func TestTextMetrics(t *testing.T) {
	a := buildFontAtlas()
	if w := a.TextWidth("ABCD", 2); w != 56 {
		t.Fatalf("width = %d, want 56", w)
	}
	if w := a.TextWidth("AB\nABCDE\nA", 1); w != 35 {
		t.Fatalf("multiline width = %d, want 35", w)
	}
	if h := a.LineHeight(1.5); h != 19 {
		t.Fatalf("line height = %d, want 19", h)
	}
}
