package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

func newTestSession(t *testing.T) (*Session, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	d := whatinput.NewDispatcher()
	tr := whatinput.New(d, nil, whatinput.Options{Capabilities: Capabilities()})
	tr.Setup(whatinput.SetupConfig{})
	t.Cleanup(tr.Teardown)

	return NewSession(screen, tr, d, nil), screen
}

func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestSessionHandleEvent(t *testing.T) {
	s, screen := newTestSession(t)

	if quit := s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); quit {
		t.Fatal("a plain key should not quit")
	}

	st := s.Status()
	if st.Input != whatinput.MethodKeyboard || st.Intent != whatinput.MethodKeyboard {
		t.Errorf("status = %+v, want keyboard/keyboard", st)
	}
	if st.Events != 1 {
		t.Errorf("Events = %d, want 1", st.Events)
	}

	if row := screenRow(screen, 1); !strings.Contains(row, "input:") || !strings.Contains(row, "keyboard") {
		t.Errorf("row 1 = %q, want the input method", row)
	}
	if row := screenRow(screen, 2); !strings.Contains(row, "keyboard") {
		t.Errorf("row 2 = %q, want the intent method", row)
	}
}

func TestSessionFocusShowsElement(t *testing.T) {
	s, screen := newTestSession(t)

	s.HandleEvent(tcell.NewEventFocus(true))
	if row := screenRow(screen, 3); !strings.Contains(row, "terminal") {
		t.Errorf("row 3 = %q, want the focused element", row)
	}

	s.HandleEvent(tcell.NewEventFocus(false))
	if row := screenRow(screen, 3); !strings.HasSuffix(row, "-") {
		t.Errorf("row 3 = %q, want no element", row)
	}
}

func TestSessionFocusEventDoesNotPanic(t *testing.T) {
	s, _ := newTestSession(t)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("HandleEvent(focus) panicked: %v", r)
		}
	}()

	if quit := s.HandleEvent(tcell.NewEventFocus(true)); quit {
		t.Fatal("focus should not quit")
	}
	if got := s.Status().Element; got != "terminal" {
		t.Errorf("Element = %q, want terminal", got)
	}
	if got := s.Status().Events; got != 1 {
		t.Errorf("Events = %d, want 1", got)
	}
}

func TestSessionQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
	}{
		{"escape", tcell.KeyEscape},
		{"ctrl-c", tcell.KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			if !s.HandleEvent(tcell.NewEventKey(tt.key, 0, tcell.ModNone)) {
				t.Error("HandleEvent() = false, want quit")
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	st := Status{
		Input:   whatinput.MethodMouse,
		Intent:  whatinput.MethodTouch,
		Classes: []string{"a", "b"},
		Events:  3,
	}

	want := [][2]string{
		{"input", "mouse"},
		{"intent", "touch"},
		{"element", "-"},
		{"classes", "a,b"},
		{"events", "3"},
	}
	got := st.Lines()
	if len(got) != len(want) {
		t.Fatalf("len(Lines()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
