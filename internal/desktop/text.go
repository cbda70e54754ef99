package desktop

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"lander/internal/game"
)

// Font atlas layout: printable ASCII (32..126) in a 16x6 grid of 7x13 cells.
const (
	fontFirst = 32
	fontLast  = 126
	fontCols  = 16
	fontRows  = (fontLast - fontFirst + fontCols) / fontCols
)

type fontAtlas struct {
	img          *image.NRGBA
	cellW, cellH int
}

// buildFontAtlas rasterizes the basicfont glyphs into a white-on-transparent
// grid, one glyph per cell.
func buildFontAtlas() *fontAtlas {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	img := image.NewNRGBA(image.Rect(0, 0, cellW*fontCols, cellH*fontRows))

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for ch := fontFirst; ch <= fontLast; ch++ {
		idx := ch - fontFirst
		x := (idx % fontCols) * cellW
		y := (idx / fontCols) * cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(ch)))
	}
	return &fontAtlas{img: img, cellW: cellW, cellH: cellH}
}

// glyphUV returns the atlas texture coordinates for ch.
func (a *fontAtlas) glyphUV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < fontFirst || ch > fontLast {
		return 0, 0, 0, 0, false
	}
	idx := int(ch) - fontFirst
	col, row := idx%fontCols, idx/fontCols
	w := float32(a.img.Bounds().Dx())
	h := float32(a.img.Bounds().Dy())
	u0 = float32(col*a.cellW) / w
	v0 = float32(row*a.cellH) / h
	u1 = float32((col+1)*a.cellW) / w
	v1 = float32((row+1)*a.cellH) / h
	return u0, v0, u1, v1, true
}

// TextWidth returns the width in pixels of the longest line of text at scale.
func (a *fontAtlas) TextWidth(text string, scale float32) int {
	lineLen, maxLineLen := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			maxLineLen = max(maxLineLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLineLen = max(maxLineLen, lineLen)
	return int(float32(maxLineLen*a.cellW) * scale)
}

// LineHeight returns the height in pixels of one line at scale.
func (a *fontAtlas) LineHeight(scale float32) int {
	return int(float32(a.cellH) * scale)
}

// InitFont builds the font atlas and sets up the text rendering pipeline.
func (r *Renderer) InitFont() error {
	r.atlas = buildFontAtlas()
	b := r.atlas.img.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.atlas.img.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 1024*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// DrawChar queues a single character as a textured quad in framebuffer pixels.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col game.RGB) {
	u0, v0, u1, v1, ok := r.atlas.glyphUV(ch)
	if !ok {
		return
	}
	w := float32(r.atlas.cellW) * scale
	h := float32(r.atlas.cellH) * scale
	cr, cg, cb := col.Floats()

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawString queues a string at framebuffer pixel position (sx, sy).
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col game.RGB) {
	advance := float32(r.atlas.cellW) * scale
	lineAdvance := float32(r.atlas.cellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// DrawStringCentered queues text centred horizontally on the framebuffer.
func (r *Renderer) DrawStringCentered(text string, sy int, scale float32, col game.RGB) {
	r.DrawString(text, r.fbW/2-r.atlas.TextWidth(text, scale)/2, sy, scale, col)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText() {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(r.fbW), float32(r.fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
