package whatinput

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultAttributePrefix is prepended to every mirrored attribute name.
const DefaultAttributePrefix = "data-"

// Surface receives the attributes mirroring the tracked state.
type Surface interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// Attributes holds the mirrored attribute names for one prefix.
type Attributes struct {
	Input   string
	Intent  string
	Element string
	Classes string
}

// AttributeNames returns the attribute names for prefix.
func AttributeNames(prefix string) Attributes {
	return Attributes{
		Input:   prefix + "whatinput",
		Intent:  prefix + "whatintent",
		Element: prefix + "whatelement",
		Classes: prefix + "whatclasses",
	}
}

// For returns the attribute mirroring channel ch.
func (a Attributes) For(ch Channel) string {
	if ch == ChannelIntent {
		return a.Intent
	}
	return a.Input
}

// All returns every attribute name.
func (a Attributes) All() []string {
	return []string{a.Input, a.Intent, a.Element, a.Classes}
}

// AttributeMap is an in-memory Surface.
type AttributeMap struct {
	mu    sync.RWMutex
	attrs map[string]string
}

// NewAttributeMap creates an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{attrs: make(map[string]string)}
}

// SetAttribute implements Surface.
func (a *AttributeMap) SetAttribute(name, value string) {
	a.mu.Lock()
	a.attrs[name] = value
	a.mu.Unlock()
}

// RemoveAttribute implements Surface.
func (a *AttributeMap) RemoveAttribute(name string) {
	a.mu.Lock()
	delete(a.attrs, name)
	a.mu.Unlock()
}

// Get returns the value of name.
func (a *AttributeMap) Get(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.attrs[name]
	return v, ok
}

// Len returns the number of attributes present.
func (a *AttributeMap) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.attrs)
}

// Snapshot returns a copy of all attributes.
func (a *AttributeMap) Snapshot() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]string, len(a.attrs))
	for k, v := range a.attrs {
		out[k] = v
	}
	return out
}

// LogSurface logs every attribute change and forwards it to Next when set.
type LogSurface struct {
	Log  *zap.Logger
	Next Surface
}

// SetAttribute implements Surface.
func (s LogSurface) SetAttribute(name, value string) {
	if s.Log != nil {
		s.Log.Debug("set attribute", zap.String("name", name), zap.String("value", value))
	}
	if s.Next != nil {
		s.Next.SetAttribute(name, value)
	}
}

// RemoveAttribute implements Surface.
func (s LogSurface) RemoveAttribute(name string) {
	if s.Log != nil {
		s.Log.Debug("remove attribute", zap.String("name", name))
	}
	if s.Next != nil {
		s.Next.RemoveAttribute(name)
	}
}
