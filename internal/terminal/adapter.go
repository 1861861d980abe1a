package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 |
	tcell.Button5 | tcell.Button6 | tcell.Button7 | tcell.Button8

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// Capabilities describes the event families a terminal produces.
func Capabilities() whatinput.Capabilities {
	return whatinput.Capabilities{Wheel: whatinput.EventWheel}
}

// Adapter converts tcell events into whatinput events.
type Adapter struct {
	buttons tcell.ButtonMask
}

// Translate converts ev. Mouse reports carry the button state rather than
// transitions, so the adapter remembers which buttons were down.
func (a *Adapter) Translate(ev tcell.Event) (whatinput.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		code := KeyCode(e)
		if code == 0 {
			return whatinput.Event{}, false
		}
		return whatinput.Event{Type: whatinput.EventKeyDown, Key: code, Time: e.When()}, true

	case *tcell.EventMouse:
		x, y := e.Position()
		out := whatinput.Event{ScreenX: float64(x), ScreenY: float64(y), Time: e.When()}

		buttons := e.Buttons()
		pressed := buttons & buttonMask
		newlyPressed := pressed &^ a.buttons
		a.buttons = pressed

		switch {
		case buttons&wheelMask != 0:
			out.Type = whatinput.EventWheel
		case newlyPressed != 0:
			out.Type = whatinput.EventMouseDown
		default:
			out.Type = whatinput.EventMouseMove
		}
		return out, true

	case *tcell.EventFocus:
		// focus events carry no timestamp; the tracker clock is used
		if e.Focused {
			return whatinput.Event{
				Type:   whatinput.EventFocusIn,
				Target: &whatinput.Target{Tag: "terminal"},
			}, true
		}
		return whatinput.Event{Type: whatinput.EventFocusOut}, true
	}

	return whatinput.Event{}, false
}

var namedKeys = map[tcell.Key]int{
	tcell.KeyBackspace:  8,
	tcell.KeyBackspace2: 8,
	tcell.KeyTab:        9,
	tcell.KeyBacktab:    9,
	tcell.KeyEnter:      13,
	tcell.KeyEscape:     27,
	tcell.KeyPgUp:       33,
	tcell.KeyPgDn:       34,
	tcell.KeyEnd:        35,
	tcell.KeyHome:       36,
	tcell.KeyLeft:       37,
	tcell.KeyUp:         38,
	tcell.KeyRight:      39,
	tcell.KeyDown:       40,
	tcell.KeyInsert:     45,
	tcell.KeyDelete:     46,
}

// KeyCode maps a key event onto legacy key codes. Letters, digits and space
// keep their ASCII codes; other printable runes are moved above 1000 so
// punctuation never collides with modifier codes.
func KeyCode(e *tcell.EventKey) int {
	k := e.Key()
	if k == tcell.KeyRune {
		return runeCode(e.Rune())
	}
	if code, ok := namedKeys[k]; ok {
		return code
	}
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return 112 + int(k-tcell.KeyF1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return 'A' + int(k-tcell.KeyCtrlA)
	case k == tcell.KeyNUL:
		return 0
	}
	return 2000 + int(k)
}

func runeCode(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return int(r)
	}
	return 1000 + int(r)
}
