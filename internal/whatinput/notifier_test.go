package whatinput

import "testing"

type recorder struct {
	got []Method
}

func (r *recorder) MethodChanged(m Method) {
	r.got = append(r.got, m)
}

type valueListener struct {
	fn func(Method)
}

func (v valueListener) MethodChanged(m Method) { v.fn(m) }

func TestNotifierOrderAndChannels(t *testing.T) {
	n := NewNotifier(nil)

	var order []string
	n.Register(OnChange(func(Method) { order = append(order, "a") }), ChannelInput)
	n.Register(OnChange(func(Method) { order = append(order, "b") }), ChannelIntent)
	n.Register(OnChange(func(Method) { order = append(order, "c") }), ChannelInput)

	n.Notify(ChannelInput, MethodMouse)
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("order = %v, want [a c]", order)
	}
}

func TestNotifierUnregisterFirstMatch(t *testing.T) {
	n := NewNotifier(nil)
	r := &recorder{}
	other := &recorder{}

	n.Register(r, ChannelInput)
	n.Register(other, ChannelInput)
	n.Register(r, ChannelIntent)

	// the match at index 0 must be found
	if !n.Unregister(r) {
		t.Fatal("Unregister returned false for registered listener")
	}
	if n.Len() != 2 {
		t.Fatalf("Len = %d, want 2", n.Len())
	}

	n.Notify(ChannelInput, MethodKeyboard)
	n.Notify(ChannelIntent, MethodTouch)
	if len(r.got) != 1 || r.got[0] != MethodTouch {
		t.Errorf("r got %v, want [touch]", r.got)
	}
	if len(other.got) != 1 {
		t.Errorf("other got %v", other.got)
	}

	if !n.Unregister(r) {
		t.Error("second Unregister did not find the intent registration")
	}
	if n.Unregister(r) {
		t.Error("Unregister found a listener that is gone")
	}
	if n.Unregister(nil) {
		t.Error("Unregister(nil) reported success")
	}
}

func TestNotifierRecoversPanics(t *testing.T) {
	n := NewNotifier(nil)
	after := &recorder{}

	n.Register(OnChange(func(Method) { panic("boom") }), ChannelInput)
	n.Register(after, ChannelInput)

	n.Notify(ChannelInput, MethodMouse)
	if len(after.got) != 1 {
		t.Errorf("listener after a panicking one got %v", after.got)
	}
}

func TestNotifierRejectsUnusableListeners(t *testing.T) {
	n := NewNotifier(nil)
	n.Register(nil, ChannelInput)
	n.Register(valueListener{fn: func(Method) {}}, ChannelInput)
	if n.Len() != 0 {
		t.Errorf("Len = %d, want 0", n.Len())
	}
}

func TestNotifierSelfUnregister(t *testing.T) {
	n := NewNotifier(nil)
	calls := 0
	var l *FuncListener
	l = OnChange(func(Method) {
		calls++
		n.Unregister(l)
	})
	n.Register(l, ChannelInput)

	n.Notify(ChannelInput, MethodMouse)
	n.Notify(ChannelInput, MethodTouch)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
