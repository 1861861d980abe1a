package whatinput

import "time"

// Event type names understood by the classification table.
const (
	EventKeyDown        = "keydown"
	EventKeyUp          = "keyup"
	EventMouseDown      = "mousedown"
	EventMouseMove      = "mousemove"
	EventPointerDown    = "pointerdown"
	EventPointerMove    = "pointermove"
	EventMSPointerDown  = "MSPointerDown"
	EventMSPointerMove  = "MSPointerMove"
	EventTouchStart     = "touchstart"
	EventTouchEnd       = "touchend"
	EventWheel          = "wheel"
	EventMouseWheel     = "mousewheel"
	EventDOMMouseScroll = "DOMMouseScroll"
	EventFocusIn        = "focusin"
	EventFocusOut       = "focusout"
)

// Legacy pointer kind codes.
const (
	PointerCodeTouch = 2
	PointerCodePen   = 3
	PointerCodeMouse = 4
)

// Target describes the element an event was delivered to.
type Target struct {
	// Tag is the element's tag name. An empty tag means the target could
	// not be identified.
	Tag     string
	Classes []string
	// InForm is set when the element sits inside a form.
	InForm bool
}

// Event is a raw interaction event.
type Event struct {
	Type string

	// Key is the key code of keyboard events. Zero means no key code.
	Key int

	// PointerType is the pointer kind name ("mouse", "pen", "touch").
	PointerType string
	// PointerCode is the legacy numeric pointer kind. It takes precedence
	// over PointerType when non-zero.
	PointerCode int

	ScreenX float64
	ScreenY float64

	Target *Target

	// Time is when the event happened. The tracker clock is used when zero.
	Time time.Time
}
