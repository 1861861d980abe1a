package whatinput

// Capabilities describes which event families the host platform delivers.
// They are negotiated once, when a Table is built.
type Capabilities struct {
	// PointerEvents selects the unified pointer event family.
	PointerEvents bool `yaml:"pointer_events" toml:"pointer_events"`
	// MSPointerEvents selects the legacy prefixed pointer family. It is
	// only consulted when PointerEvents is false.
	MSPointerEvents bool `yaml:"ms_pointer_events" toml:"ms_pointer_events"`
	// TouchEvents enables touchstart/touchend when no pointer family is
	// available.
	TouchEvents bool `yaml:"touch_events" toml:"touch_events"`
	// Wheel is the wheel event name: wheel, mousewheel or DOMMouseScroll.
	Wheel string `yaml:"wheel" toml:"wheel"`
}

// DefaultCapabilities returns the capabilities of a modern platform.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		PointerEvents: true,
		Wheel:         EventWheel,
	}
}

// Route selects how the tracker handles an event type.
type Route int

// Routes.
const (
	RouteNone Route = iota
	RouteInput
	RouteIntent
	RouteFocusIn
	RouteFocusOut
)

func (r Route) String() string {
	switch r {
	case RouteInput:
		return "input"
	case RouteIntent:
		return "intent"
	case RouteFocusIn:
		return "focusin"
	case RouteFocusOut:
		return "focusout"
	}
	return "none"
}

// Binding pairs an event type with the route it is delivered to.
type Binding struct {
	Event string
	Route Route
}

// Table maps event type names to input methods and routes. It is immutable
// once built.
type Table struct {
	methods  map[string]Method
	bindings []Binding
	wheel    string
}

var baseMethods = map[string]Method{
	EventKeyDown:       MethodKeyboard,
	EventKeyUp:         MethodKeyboard,
	EventMouseDown:     MethodMouse,
	EventMouseMove:     MethodMouse,
	EventMSPointerDown: MethodPointer,
	EventMSPointerMove: MethodPointer,
	EventPointerDown:   MethodPointer,
	EventPointerMove:   MethodPointer,
	EventTouchStart:    MethodTouch,
	EventTouchEnd:      MethodTouch,
}

// NewTable negotiates caps into a classification table.
func NewTable(caps Capabilities) *Table {
	wheel := caps.Wheel
	switch wheel {
	case EventWheel, EventMouseWheel, EventDOMMouseScroll:
	default:
		wheel = EventWheel
	}

	t := &Table{
		methods: make(map[string]Method, len(baseMethods)+1),
		wheel:   wheel,
	}
	for name, m := range baseMethods {
		t.methods[name] = m
	}
	t.methods[wheel] = MethodMouse

	switch {
	case caps.PointerEvents:
		t.bind(EventPointerDown, RouteInput)
		t.bind(EventPointerMove, RouteIntent)
	case caps.MSPointerEvents:
		t.bind(EventMSPointerDown, RouteInput)
		t.bind(EventMSPointerMove, RouteIntent)
	default:
		t.bind(EventMouseDown, RouteInput)
		t.bind(EventMouseMove, RouteIntent)
		if caps.TouchEvents {
			t.bind(EventTouchStart, RouteInput)
			t.bind(EventTouchEnd, RouteInput)
		}
	}

	t.bind(wheel, RouteIntent)
	t.bind(EventKeyDown, RouteInput)
	t.bind(EventKeyUp, RouteInput)
	t.bind(EventFocusIn, RouteFocusIn)
	t.bind(EventFocusOut, RouteFocusOut)

	return t
}

func (t *Table) bind(event string, r Route) {
	t.bindings = append(t.bindings, Binding{Event: event, Route: r})
}

// Bindings returns the event types the tracker listens to, in listen order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Route returns the route bound to eventType.
func (t *Table) Route(eventType string) Route {
	for _, b := range t.bindings {
		if b.Event == eventType {
			return b.Route
		}
	}
	return RouteNone
}

// Wheel returns the negotiated wheel event name.
func (t *Table) Wheel() string {
	return t.wheel
}

// Method returns the coarse category of eventType without pointer
// resolution.
func (t *Table) Method(eventType string) (Method, bool) {
	m, ok := t.methods[eventType]
	return m, ok
}

// Classify returns the input method of ev. Pointer-family events are
// resolved to mouse or touch through the event's pointer kind; an
// unresolvable kind yields an empty method with ok still true. Unknown event
// types report ok == false.
func (t *Table) Classify(ev Event) (Method, bool) {
	m, ok := t.methods[ev.Type]
	if !ok {
		return "", false
	}
	if m == MethodPointer {
		m = resolvePointer(ev)
	}
	return m, true
}

var pointerCodes = map[int]Method{
	PointerCodeTouch: MethodTouch,
	PointerCodePen:   MethodTouch,
	PointerCodeMouse: MethodMouse,
}

func resolvePointer(ev Event) Method {
	if ev.PointerCode != 0 {
		return pointerCodes[ev.PointerCode]
	}
	// pen is treated like touch
	if ev.PointerType == "pen" {
		return MethodTouch
	}
	return Method(ev.PointerType)
}
