package whatinput

import "time"

// DefaultTouchWindow is how long after any event a mouse event is still
// treated as the synthetic follow-up of a touch.
const DefaultTouchWindow = 200 * time.Millisecond

// TouchGuard suppresses the synthetic mouse events touchscreens emit right
// after a real touch.
type TouchGuard struct {
	Window time.Duration
	last   time.Time
}

// Suppress reports whether an event of method m arriving at now must be
// ignored given the committed input current. The guard records now as the
// latest event time on every call.
func (g *TouchGuard) Suppress(m, current Method, now time.Time) bool {
	window := g.Window
	if window <= 0 {
		window = DefaultTouchWindow
	}
	suppress := m == MethodMouse &&
		current == MethodTouch &&
		!g.last.IsZero() &&
		now.Sub(g.last) < window

	g.last = now
	return suppress
}

// Last returns the time of the most recent event seen by the guard.
func (g *TouchGuard) Last() time.Time {
	return g.last
}

// Reset forgets the last event time.
func (g *TouchGuard) Reset() {
	g.last = time.Time{}
}

// ScrollGuard tells wheel scrolling apart from real pointer movement.
// Some platforms fire move events with unchanged screen coordinates while
// the page scrolls underneath the pointer.
type ScrollGuard struct {
	x, y      float64
	seen      bool
	scrolling bool
}

// Observe records the coordinates of a move-class event and reports whether
// the pointer is considered to be scrolling.
func (g *ScrollGuard) Observe(x, y float64) bool {
	if g.seen && g.x == x && g.y == y {
		g.scrolling = true
		return true
	}
	g.scrolling = false
	g.x, g.y = x, y
	g.seen = true
	return false
}

// Scrolling reports the result of the last observation.
func (g *ScrollGuard) Scrolling() bool {
	return g.scrolling
}

// Reset forgets the recorded coordinates.
func (g *ScrollGuard) Reset() {
	*g = ScrollGuard{}
}
