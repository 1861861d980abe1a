package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// SDLK_SCANCODE_MASK: set on keycodes derived from scancodes
const scancodeMask = 1 << 30

// keys without a printable ASCII code
var namedKeys = map[sdl.Keycode]int{
	sdl.K_BACKSPACE:    8,
	sdl.K_TAB:          9,
	sdl.K_RETURN:       13,
	sdl.K_KP_ENTER:     13,
	sdl.K_PAUSE:        19,
	sdl.K_CAPSLOCK:     20,
	sdl.K_ESCAPE:       27,
	sdl.K_SPACE:        32,
	sdl.K_PAGEUP:       33,
	sdl.K_PAGEDOWN:     34,
	sdl.K_END:          35,
	sdl.K_HOME:         36,
	sdl.K_LEFT:         37,
	sdl.K_UP:           38,
	sdl.K_RIGHT:        39,
	sdl.K_DOWN:         40,
	sdl.K_INSERT:       45,
	sdl.K_DELETE:       46,
	sdl.K_LSHIFT:       whatinput.KeyShift,
	sdl.K_RSHIFT:       whatinput.KeyShift,
	sdl.K_LCTRL:        whatinput.KeyControl,
	sdl.K_RCTRL:        whatinput.KeyControl,
	sdl.K_LALT:         whatinput.KeyAlt,
	sdl.K_RALT:         whatinput.KeyAlt,
	sdl.K_LGUI:         whatinput.KeyMetaLeft,
	sdl.K_RGUI:         whatinput.KeyMetaRight,
	sdl.K_APPLICATION:  whatinput.KeyMetaRight,
	sdl.K_NUMLOCKCLEAR: 144,
	sdl.K_SCROLLLOCK:   145,
}

// KeyCode converts an SDL keycode to the legacy key code numbering used by
// key policies. Keys without an equivalent map above 1000 so they
// still count as keyboard input.
func KeyCode(sym sdl.Keycode) int {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return 'A' + int(sym-sdl.K_a)
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return '0' + int(sym-sdl.K_0)
	case sym >= sdl.K_F1 && sym <= sdl.K_F12:
		return 112 + int(sym-sdl.K_F1)
	}
	if code, ok := namedKeys[sym]; ok {
		return code
	}
	if sym == sdl.K_UNKNOWN {
		return 0
	}
	return 1000 + int(sym&^scancodeMask)
}
