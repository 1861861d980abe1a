package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want int
	}{
		{"lower letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), 65},
		{"upper letter", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModShift), 90},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), 55},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), 32},
		{"bracket stays clear of meta", tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone), 1000 + '['},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 13},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 9},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 27},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 37},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), 40},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), 112},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), 123},
		{"ctrl-a", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyCode(tt.ev); got != tt.want {
				t.Errorf("KeyCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdapterTranslate(t *testing.T) {
	var a Adapter

	tests := []struct {
		name     string
		ev       tcell.Event
		wantType string
		wantOK   bool
	}{
		{"key", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), whatinput.EventKeyDown, true},
		{"motion", tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone), whatinput.EventMouseMove, true},
		{"press", tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), whatinput.EventMouseDown, true},
		{"drag", tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone), whatinput.EventMouseMove, true},
		{"release", tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone), whatinput.EventMouseMove, true},
		{"press again", tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone), whatinput.EventMouseDown, true},
		{"wheel", tcell.NewEventMouse(5, 4, tcell.WheelDown, tcell.ModNone), whatinput.EventWheel, true},
		{"focus", tcell.NewEventFocus(true), whatinput.EventFocusIn, true},
		{"blur", tcell.NewEventFocus(false), whatinput.EventFocusOut, true},
		{"resize", tcell.NewEventResize(80, 24), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Translate(tt.ev)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
		})
	}
}

func TestAdapterTranslateDetails(t *testing.T) {
	var a Adapter

	ev, _ := a.Translate(tcell.NewEventMouse(12, 7, tcell.Button1, tcell.ModNone))
	if ev.ScreenX != 12 || ev.ScreenY != 7 {
		t.Errorf("position = (%v, %v), want (12, 7)", ev.ScreenX, ev.ScreenY)
	}
	if ev.Time.IsZero() {
		t.Error("mouse event has no timestamp")
	}

	ev, _ = a.Translate(tcell.NewEventFocus(true))
	if ev.Target == nil || ev.Target.Tag != "terminal" {
		t.Errorf("focus target = %+v, want terminal", ev.Target)
	}
	if !ev.Time.IsZero() {
		t.Errorf("focus Time = %v, want zero so the tracker clock applies", ev.Time)
	}
}

func TestCapabilities(t *testing.T) {
	table := whatinput.NewTable(Capabilities())

	if table.Wheel() != whatinput.EventWheel {
		t.Errorf("Wheel() = %q, want %q", table.Wheel(), whatinput.EventWheel)
	}
	if table.Route(whatinput.EventMouseDown) != whatinput.RouteInput {
		t.Error("mousedown should be routed to the input path")
	}
	if table.Route(whatinput.EventTouchStart) != whatinput.RouteNone {
		t.Error("terminals never produce touch events")
	}
}

func TestTrackerThroughAdapter(t *testing.T) {
	d := whatinput.NewDispatcher()
	tr := whatinput.New(d, nil, whatinput.Options{Capabilities: Capabilities()})
	tr.Setup(whatinput.SetupConfig{})
	defer tr.Teardown()

	var a Adapter
	feed := func(ev tcell.Event) {
		if wev, ok := a.Translate(ev); ok {
			d.Dispatch(wev)
		}
	}

	feed(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if got := tr.Ask(whatinput.ChannelInput); got != whatinput.MethodKeyboard {
		t.Fatalf("input = %v, want keyboard", got)
	}

	// motion changes intent only
	feed(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	feed(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	if got := tr.Ask(whatinput.ChannelIntent); got != whatinput.MethodMouse {
		t.Errorf("intent = %v, want mouse", got)
	}
	if got := tr.Ask(whatinput.ChannelInput); got != whatinput.MethodKeyboard {
		t.Errorf("input = %v, want keyboard", got)
	}

	feed(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone))
	if got := tr.Ask(whatinput.ChannelInput); got != whatinput.MethodMouse {
		t.Errorf("input = %v, want mouse", got)
	}

	feed(tcell.NewEventFocus(true))
	if got := tr.Element(); got != "terminal" {
		t.Errorf("Element() = %q, want terminal", got)
	}
	feed(tcell.NewEventFocus(false))
	if got := tr.Element(); got != "" {
		t.Errorf("Element() = %q after blur, want empty", got)
	}
}
