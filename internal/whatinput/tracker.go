package whatinput

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a Tracker.
type Options struct {
	// Table overrides capability negotiation.
	Table *Table
	// Capabilities is negotiated into a Table when Table is nil.
	Capabilities Capabilities
	// TouchWindow defaults to DefaultTouchWindow.
	TouchWindow time.Duration
	// IgnoredKeys replaces the default ignore set when non-nil.
	IgnoredKeys []int
	// SpecificKeys sets the initial specific set.
	SpecificKeys []int
	// Now is the clock used for events without a timestamp.
	Now    func() time.Time
	Logger *zap.Logger
}

// SetupConfig is passed to Setup.
type SetupConfig struct {
	// AttributePrefix defaults to DefaultAttributePrefix.
	AttributePrefix string
}

// form controls whose keyboard interaction preserves the current intent
var formTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

type commit struct {
	channel Channel
	method  Method
}

// Tracker classifies events from a Source into the current input and intent
// methods and mirrors them to a Surface.
type Tracker struct {
	source   Source
	surface  Surface
	table    *Table
	now      func() time.Time
	log      *zap.Logger
	notifier *Notifier

	mu      sync.Mutex
	attrs   Attributes
	stops   []func()
	input   Method
	intent  Method
	element string
	classes []string
	inForm  bool
	keys    KeyPolicy
	touch   TouchGuard
	scroll  ScrollGuard
}

// New creates a tracker reading from src and writing to surface. Nothing is
// observed until Setup is called. A nil surface discards attributes.
func New(src Source, surface Surface, opts Options) *Tracker {
	table := opts.Table
	if table == nil {
		table = NewTable(opts.Capabilities)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if surface == nil {
		surface = LogSurface{}
	}
	window := opts.TouchWindow
	if window <= 0 {
		window = DefaultTouchWindow
	}

	t := &Tracker{
		source:   src,
		surface:  surface,
		table:    table,
		now:      now,
		log:      log,
		notifier: NewNotifier(log),
		attrs:    AttributeNames(DefaultAttributePrefix),
		input:    MethodInitial,
		intent:   MethodInitial,
		keys:     NewKeyPolicy(),
		touch:    TouchGuard{Window: window},
	}
	if opts.IgnoredKeys != nil {
		t.keys.SetIgnored(opts.IgnoredKeys)
	}
	if len(opts.SpecificKeys) > 0 {
		t.keys.SetSpecific(opts.SpecificKeys)
	}
	return t
}

// Setup starts listening to every event type of the table. Calling it twice
// registers the handlers twice.
func (t *Tracker) Setup(cfg SetupConfig) {
	prefix := cfg.AttributePrefix
	if prefix == "" {
		prefix = DefaultAttributePrefix
	}

	t.mu.Lock()
	t.attrs = AttributeNames(prefix)
	t.mu.Unlock()

	if t.source == nil {
		t.log.Warn("tracker has no event source")
		return
	}

	bindings := t.table.Bindings()
	stops := make([]func(), 0, len(bindings))
	for _, b := range bindings {
		stops = append(stops, t.source.Listen(b.Event, t.handler(b.Route)))
	}

	t.mu.Lock()
	t.stops = append(t.stops, stops...)
	t.mu.Unlock()

	t.log.Debug("tracker set up",
		zap.String("prefix", prefix),
		zap.Int("listeners", len(stops)),
		zap.String("wheel", t.table.Wheel()),
	)
}

// Teardown stops listening, removes every mirrored attribute and resets the
// tracked state. Listeners are detached first so no event can mirror state
// after the attributes are gone.
func (t *Tracker) Teardown() {
	t.mu.Lock()
	stops := t.stops
	t.stops = nil
	t.mu.Unlock()

	for _, stop := range stops {
		stop()
	}

	t.mu.Lock()
	for _, name := range t.attrs.All() {
		t.surface.RemoveAttribute(name)
	}
	t.input = MethodInitial
	t.intent = MethodInitial
	t.element = ""
	t.classes = nil
	t.inForm = false
	t.touch.Reset()
	t.scroll.Reset()
	t.mu.Unlock()

	t.log.Debug("tracker torn down", zap.Int("listeners", len(stops)))
}

func (t *Tracker) handler(r Route) EventHandler {
	switch r {
	case RouteInput:
		return t.handleInput
	case RouteIntent:
		return t.handleIntent
	case RouteFocusIn:
		return t.handleFocusIn
	case RouteFocusOut:
		return func(Event) { t.handleFocusOut() }
	}
	return func(Event) {}
}

// Ask returns the committed value of ch.
func (t *Tracker) Ask(ch Channel) Method {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ch == ChannelIntent {
		return t.intent
	}
	return t.input
}

// Element returns the lowercase tag name of the focused element, or an empty
// string when nothing is focused.
func (t *Tracker) Element() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.element
}

// Classes returns the class list of the focused element.
func (t *Tracker) Classes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.classes == nil {
		return nil
	}
	return append([]string(nil), t.classes...)
}

// SetIgnoredKeys replaces the ignored key codes.
func (t *Tracker) SetIgnoredKeys(codes []int) {
	t.mu.Lock()
	t.keys.SetIgnored(codes)
	t.mu.Unlock()
}

// SetSpecificKeys replaces the specific key codes. When non-empty only these
// codes count as keyboard input.
func (t *Tracker) SetSpecificKeys(codes []int) {
	t.mu.Lock()
	t.keys.SetSpecific(codes)
	t.mu.Unlock()
}

// RegisterOnChange registers l for changes of ch (ChannelInput when empty).
func (t *Tracker) RegisterOnChange(l Listener, ch Channel) {
	t.notifier.Register(l, ch)
}

// UnregisterOnChange removes the first registration of l.
func (t *Tracker) UnregisterOnChange(l Listener) {
	t.notifier.Unregister(l)
}

func (t *Tracker) timestamp(ev Event) time.Time {
	if ev.Time.IsZero() {
		return t.now()
	}
	return ev.Time
}

func (t *Tracker) handleInput(ev Event) {
	t.mu.Lock()
	commits := t.applyInput(ev)
	t.mu.Unlock()

	t.notify(commits)
}

func (t *Tracker) applyInput(ev Event) []commit {
	m, ok := t.table.Classify(ev)
	if !ok {
		return nil
	}

	var shouldUpdate bool
	switch m {
	case MethodKeyboard:
		shouldUpdate = ev.Key != 0 && t.keys.Qualifies(ev.Key)
	case MethodMouse, MethodTouch:
		shouldUpdate = true
	}

	// keep touch from being overridden by the synthetic mouse event that follows it
	if t.touch.Suppress(m, t.input, t.timestamp(ev)) {
		shouldUpdate = false
	}
	if !shouldUpdate {
		return nil
	}

	var commits []commit
	if t.input != m {
		t.input = m
		commits = append(commits, t.commit(ChannelInput, m))
	}
	if t.intent != m && (m != MethodKeyboard || !t.inFormField()) {
		t.intent = m
		commits = append(commits, t.commit(ChannelIntent, m))
	}
	return commits
}

// inFormField reports whether keyboard activity on the focused element should
// leave the intent alone.
func (t *Tracker) inFormField() bool {
	if !formTags[t.element] {
		return false
	}
	return t.element != "button" || t.inForm
}

func (t *Tracker) handleIntent(ev Event) {
	t.mu.Lock()
	commits := t.applyIntent(ev)
	t.mu.Unlock()

	t.notify(commits)
}

func (t *Tracker) applyIntent(ev Event) []commit {
	m, ok := t.table.Classify(ev)
	if !ok {
		return nil
	}

	scrolling := t.scroll.Observe(ev.ScreenX, ev.ScreenY)
	suppressed := t.touch.Suppress(m, t.input, t.timestamp(ev))

	wheel := ev.Type == t.table.Wheel()
	legacyWheel := wheel && (ev.Type == EventMouseWheel || ev.Type == EventDOMMouseScroll)

	allowed := (!scrolling && !suppressed) || (wheel && scrolling) || legacyWheel
	if !allowed || !m.Committable() || t.intent == m {
		return nil
	}

	t.intent = m
	return []commit{t.commit(ChannelIntent, m)}
}

func (t *Tracker) handleFocusIn(ev Event) {
	if ev.Target == nil || ev.Target.Tag == "" {
		// unidentifiable targets, such as the inside of an svg element
		t.handleFocusOut()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.element = strings.ToLower(ev.Target.Tag)
	t.inForm = ev.Target.InForm
	t.surface.SetAttribute(t.attrs.Element, t.element)

	if len(ev.Target.Classes) > 0 {
		t.classes = append([]string(nil), ev.Target.Classes...)
		t.surface.SetAttribute(t.attrs.Classes, strings.Join(t.classes, ","))
	} else if t.classes != nil {
		t.classes = nil
		t.surface.RemoveAttribute(t.attrs.Classes)
	}

	t.log.Debug("element focused", zap.String("element", t.element), zap.Strings("classes", t.classes))
}

func (t *Tracker) handleFocusOut() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.element = ""
	t.classes = nil
	t.inForm = false
	t.surface.RemoveAttribute(t.attrs.Element)
	t.surface.RemoveAttribute(t.attrs.Classes)
}

// commit mirrors the new value of ch. Callers hold t.mu.
func (t *Tracker) commit(ch Channel, m Method) commit {
	t.surface.SetAttribute(t.attrs.For(ch), m.String())
	t.log.Debug("method changed", zap.String("channel", string(ch)), zap.String("method", m.String()))
	return commit{channel: ch, method: m}
}

func (t *Tracker) notify(commits []commit) {
	for _, c := range commits {
		t.notifier.Notify(c.channel, c.method)
	}
}
