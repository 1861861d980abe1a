// Package input translates SDL2 events into whatinput events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// SDL_TOUCH_MOUSEID: mouse events synthesized from touch carry this id.
const touchMouseID = ^uint32(0)

// Capabilities describes the event families produced by this adapter: plain
// mouse and touch events, no pointer family.
func Capabilities() whatinput.Capabilities {
	return whatinput.Capabilities{
		TouchEvents: true,
		Wheel:       whatinput.EventWheel,
	}
}

// EventType is an application-level event the main loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed application event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
}

// Sink receives translated events.
type Sink interface {
	Dispatch(ev whatinput.Event) int
}

// Input polls SDL and feeds a Sink.
type Input struct {
	sink   Sink
	epoch  time.Time
	mouseX float64
	mouseY float64
	events []Event
}

// New creates an input handler feeding sink. SDL timestamps are measured
// from the moment New is called.
func New(sink Sink) *Input {
	return &Input{
		sink:   sink,
		epoch:  time.Now(),
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events, dispatches them and collects application events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Handle(event) {
			quit = true
		}
	}
	return quit
}

// Handle processes one SDL event and reports whether it requests quitting.
func (i *Input) Handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Sym})
		}
	}

	if ev, ok := i.Translate(event); ok && i.sink != nil {
		i.sink.Dispatch(ev)
	}
	return false
}

// Translate converts an SDL event into a whatinput event.
func (i *Input) Translate(event sdl.Event) (whatinput.Event, bool) {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		ev := whatinput.Event{Key: KeyCode(e.Keysym.Sym), Time: i.at(e.Timestamp)}
		if e.Type == sdl.KEYDOWN {
			ev.Type = whatinput.EventKeyDown
		} else {
			ev.Type = whatinput.EventKeyUp
		}
		return ev, true

	case *sdl.MouseButtonEvent:
		// SDL sends the synthetic press before the FINGERDOWN it came from
		if e.Type != sdl.MOUSEBUTTONDOWN || e.Which == touchMouseID {
			return whatinput.Event{}, false
		}
		i.mouseX, i.mouseY = float64(e.X), float64(e.Y)
		return whatinput.Event{
			Type:    whatinput.EventMouseDown,
			ScreenX: i.mouseX,
			ScreenY: i.mouseY,
			Time:    i.at(e.Timestamp),
		}, true

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return whatinput.Event{}, false
		}
		i.mouseX, i.mouseY = float64(e.X), float64(e.Y)
		return whatinput.Event{
			Type:    whatinput.EventMouseMove,
			ScreenX: i.mouseX,
			ScreenY: i.mouseY,
			Time:    i.at(e.Timestamp),
		}, true

	case *sdl.MouseWheelEvent:
		if e.Which == touchMouseID {
			return whatinput.Event{}, false
		}
		// wheel events report where the pointer rests
		return whatinput.Event{
			Type:    whatinput.EventWheel,
			ScreenX: i.mouseX,
			ScreenY: i.mouseY,
			Time:    i.at(e.Timestamp),
		}, true

	case *sdl.TouchFingerEvent:
		ev := whatinput.Event{Time: i.at(e.Timestamp)}
		switch e.Type {
		case sdl.FINGERDOWN:
			ev.Type = whatinput.EventTouchStart
		case sdl.FINGERUP:
			ev.Type = whatinput.EventTouchEnd
		default:
			return whatinput.Event{}, false
		}
		return ev, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			return whatinput.Event{
				Type:   whatinput.EventFocusIn,
				Target: &whatinput.Target{Tag: "window"},
				Time:   i.at(e.Timestamp),
			}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return whatinput.Event{Type: whatinput.EventFocusOut, Time: i.at(e.Timestamp)}, true
		}
	}

	return whatinput.Event{}, false
}

func (i *Input) at(ms uint32) time.Time {
	return i.epoch.Add(time.Duration(ms) * time.Millisecond)
}

// Events returns the application events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(key sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
