package whatinput

import "sync"

// EventHandler handles one event.
type EventHandler func(Event)

// Source delivers raw events to handlers registered per event type.
type Source interface {
	// Listen registers h for eventType and returns a function that removes
	// that registration.
	Listen(eventType string, h EventHandler) (stop func())
}

type handlerEntry struct {
	h EventHandler
}

// Dispatcher is a Source fed by platform adapters. Handlers run on the
// goroutine calling Dispatch, in registration order.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[string][]*handlerEntry
}

// NewDispatcher creates a dispatcher without handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]*handlerEntry)}
}

// Listen implements Source.
func (d *Dispatcher) Listen(eventType string, h EventHandler) func() {
	e := &handlerEntry{h: h}

	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], e)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(eventType, e) })
	}
}

func (d *Dispatcher) remove(eventType string, e *handlerEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.handlers[eventType]
	for i, cur := range list {
		if cur == e {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(d.handlers, eventType)
		return
	}
	d.handlers[eventType] = list
}

// Dispatch delivers ev to the handlers of ev.Type and returns how many ran.
func (d *Dispatcher) Dispatch(ev Event) int {
	d.mu.Lock()
	list := append([]*handlerEntry(nil), d.handlers[ev.Type]...)
	d.mu.Unlock()

	for _, e := range list {
		e.h(ev)
	}
	return len(list)
}

// Listeners returns the number of handlers registered for eventType.
func (d *Dispatcher) Listeners(eventType string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[eventType])
}
