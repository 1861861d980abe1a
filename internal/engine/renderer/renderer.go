// Package renderer draws the tracked input state with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

var palette = map[whatinput.Method]Color{
	whatinput.MethodInitial:  {0.10, 0.10, 0.15},
	whatinput.MethodKeyboard: {0.80, 0.55, 0.10},
	whatinput.MethodMouse:    {0.15, 0.45, 0.80},
	whatinput.MethodTouch:    {0.20, 0.70, 0.35},
}

// ColorFor returns the colour used for m.
func ColorFor(m whatinput.Method) Color {
	if c, ok := palette[m]; ok {
		return c
	}
	return palette[whatinput.MethodInitial]
}

// BarHeight returns the height of the input bar for a viewport height.
func BarHeight(height int) int {
	h := height / 8
	if h < 4 {
		h = 4
	}
	if h > height {
		h = height
	}
	return h
}

// Renderer fills the window with the intent colour and draws a bar in the
// input colour along the top edge.
type Renderer struct {
	width  int
	height int
	input  whatinput.Method
	intent whatinput.Method
}

// New creates a renderer. It must be called after the OpenGL context exists.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		input:  whatinput.MethodInitial,
		intent: whatinput.MethodInitial,
	}
	r.Resize(width, height)
	return r, nil
}

// SetState records the methods to draw on the next frame.
func (r *Renderer) SetState(input, intent whatinput.Method) {
	r.input = input
	r.intent = intent
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Draw renders one frame.
func (r *Renderer) Draw() {
	bg := ColorFor(r.intent)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	bar := BarHeight(r.height)
	fg := ColorFor(r.input)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, int32(r.height-bar), int32(r.width), int32(bar))
	gl.ClearColor(fg.R, fg.G, fg.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}
