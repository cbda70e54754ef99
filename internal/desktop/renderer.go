package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"lander/internal/game"
)

const (
	shapeStride  = 6 // x, y, r, g, b, a
	debrisStride = 7 // x, y, size, r, g, b, a

	maxShapeVerts  = 64 * 1024
	maxDebrisVerts = game.MaxParticles
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// View is what the GPU needs to place world coordinates on the framebuffer.
type View struct {
	CamX, CamY float64 // world position of the top-left corner
	Scale      float32 // framebuffer pixels per world unit
}

type Renderer struct {
	// Shape program: terrain, pads and ship outline.
	shapeProg uint32
	shapeVAO  uint32
	shapeVBO  uint32

	shUCamera     int32
	shUScale      int32
	shUResolution int32

	// Debris program: point sprites.
	debrisProg uint32
	debrisVAO  uint32
	debrisVBO  uint32

	dbUCamera     int32
	dbUScale      int32
	dbUResolution int32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
	atlas        *fontAtlas

	view     View
	fbW, fbH int
}

func NewRenderer() (*Renderer, error) {
	shapeProg, err := linkProgram(shapeVertSrc, shapeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shape program: %w", err)
	}
	debrisProg, err := linkProgram(debrisVertSrc, debrisFragSrc)
	if err != nil {
		gl.DeleteProgram(shapeProg)
		return nil, fmt.Errorf("debris program: %w", err)
	}

	r := &Renderer{
		shapeProg:  shapeProg,
		debrisProg: debrisProg,
	}

	// Shape VAO/VBO: streaming buffer, 6 floats per vertex.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	stride := int32(shapeStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxShapeVerts*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aWorldPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aColor
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	r.shapeVAO = vao
	r.shapeVBO = vbo

	gl.UseProgram(shapeProg)
	r.shUCamera = gl.GetUniformLocation(shapeProg, gl.Str("uCamera\x00"))
	r.shUScale = gl.GetUniformLocation(shapeProg, gl.Str("uScale\x00"))
	r.shUResolution = gl.GetUniformLocation(shapeProg, gl.Str("uResolution\x00"))

	// Debris VAO/VBO: 7 floats per sprite.
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	stride = int32(debrisStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxDebrisVerts*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aWorldPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aSize
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	r.debrisVAO = vao
	r.debrisVBO = vbo

	gl.UseProgram(debrisProg)
	r.dbUCamera = gl.GetUniformLocation(debrisProg, gl.Str("uCamera\x00"))
	r.dbUScale = gl.GetUniformLocation(debrisProg, gl.Str("uScale\x00"))
	r.dbUResolution = gl.GetUniformLocation(debrisProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.shapeVBO, r.debrisVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeVAO, r.debrisVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeProg, r.debrisProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(v View, fbW, fbH int) {
	r.view = v
	r.fbW, r.fbH = fbW, fbH
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetView switches the world-to-framebuffer mapping mid-frame, e.g. to draw
// HUD shapes in unscrolled screen units.
func (r *Renderer) SetView(v View) { r.view = v }

// DrawShapes renders a vertex buffer in the given primitive mode
// (gl.LINES, gl.LINE_STRIP or gl.TRIANGLES).
// buf format: [x, y, r, g, b, a] * N.
func (r *Renderer) DrawShapes(buf []float32, mode uint32) {
	count := len(buf) / shapeStride
	if count == 0 {
		return
	}
	if count > maxShapeVerts {
		count = maxShapeVerts
	}

	gl.UseProgram(r.shapeProg)
	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)

	gl.Uniform2f(r.shUCamera, float32(r.view.CamX), float32(r.view.CamY))
	gl.Uniform1f(r.shUScale, r.view.Scale)
	gl.Uniform2f(r.shUResolution, float32(r.fbW), float32(r.fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*shapeStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawDebris renders crash particles as round point sprites.
// buf format: [x, y, size, r, g, b, a] * N.
func (r *Renderer) DrawDebris(buf []float32) {
	count := len(buf) / debrisStride
	if count == 0 {
		return
	}
	if count > maxDebrisVerts {
		count = maxDebrisVerts
	}

	gl.UseProgram(r.debrisProg)
	gl.BindVertexArray(r.debrisVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.debrisVBO)

	gl.Uniform2f(r.dbUCamera, float32(r.view.CamX), float32(r.view.CamY))
	gl.Uniform1f(r.dbUScale, r.view.Scale)
	gl.Uniform2f(r.dbUResolution, float32(r.fbW), float32(r.fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*debrisStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}
