// Package whatinput tracks which input method a user is currently interacting with.
//
// Raw interaction events (keys, mouse, touch, pointer, wheel and focus
// changes) are classified into a small vocabulary of methods. Two values are
// kept: the last committed input (a click, tap or key press) and the last
// intent (any qualifying signal, including hover and wheel movement). Both
// are mirrored to a Surface as attributes and announced to registered
// listeners.
package whatinput

// Method is an input method.
type Method string

// Input methods.
const (
	MethodInitial  Method = "initial"
	MethodKeyboard Method = "keyboard"
	MethodMouse    Method = "mouse"
	MethodTouch    Method = "touch"

	// MethodPointer is only produced while classifying pointer-family
	// events and is always resolved to mouse or touch before it is used.
	MethodPointer Method = "pointer"
)

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// Committable reports whether m may be stored as an input or intent value.
func (m Method) Committable() bool {
	switch m {
	case MethodKeyboard, MethodMouse, MethodTouch:
		return true
	}
	return false
}

// Channel selects which of the two tracked values an operation refers to.
type Channel string

// Channels.
const (
	ChannelInput  Channel = "input"
	ChannelIntent Channel = "intent"
)

// ParseChannel converts a channel name. An empty name selects ChannelInput.
func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case "", ChannelInput:
		return ChannelInput, true
	case ChannelIntent:
		return ChannelIntent, true
	}
	return "", false
}
