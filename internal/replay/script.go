// Package replay drives scripted event sequences through a tracker and
// records what it commits.
//
// Scripts are YAML documents. Event times are offsets from a fixed epoch so
// a replay is deterministic regardless of the wall clock.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// Script errors.
var (
	ErrUnknownChannel = errors.New("unknown channel")
	ErrUnknownMethod  = errors.New("unknown method")
	ErrMissingType    = errors.New("event has no type")
	ErrOutOfOrder     = errors.New("event offsets go backwards")
)

// Script is a sequence of raw events plus the tracker settings to replay
// them with. Zero-valued settings fall back to the replay defaults.
type Script struct {
	Name         string                  `yaml:"name"`
	Prefix       string                  `yaml:"prefix"`
	IgnoredKeys  []int                   `yaml:"ignored_keys"`
	SpecificKeys []int                   `yaml:"specific_keys"`
	TouchWindow  time.Duration           `yaml:"touch_window"`
	Capabilities *whatinput.Capabilities `yaml:"capabilities"`
	// Listen lists the channels whose changes are recorded. Both channels
	// are recorded when empty.
	Listen []string `yaml:"listen"`
	Events []Step   `yaml:"events"`
}

// Step is one scripted event.
type Step struct {
	At          time.Duration `yaml:"at"`
	Type        string        `yaml:"type"`
	Key         int           `yaml:"key,omitempty"`
	PointerType string        `yaml:"pointer_type,omitempty"`
	PointerCode int           `yaml:"pointer_code,omitempty"`
	X           float64       `yaml:"x,omitempty"`
	Y           float64       `yaml:"y,omitempty"`
	Target      *Target       `yaml:"target,omitempty"`
	Expect      *Expect       `yaml:"expect,omitempty"`
}

// Target describes the element an event is aimed at.
type Target struct {
	Tag     string   `yaml:"tag"`
	Classes []string `yaml:"classes,omitempty"`
	InForm  bool     `yaml:"in_form,omitempty"`
}

// Expect holds the state expected after a step. Empty fields are not
// checked; Element "-" expects no focused element.
type Expect struct {
	Input   string   `yaml:"input,omitempty"`
	Intent  string   `yaml:"intent,omitempty"`
	Element string   `yaml:"element,omitempty"`
	Classes []string `yaml:"classes,omitempty"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks channel and method names and event ordering.
func (s *Script) Validate() error {
	if _, err := s.channels(); err != nil {
		return err
	}

	var last time.Duration
	for i, step := range s.Events {
		if step.Type == "" {
			return fmt.Errorf("event %d: %w", i, ErrMissingType)
		}
		if step.At < last {
			return fmt.Errorf("event %d at %s: %w", i, step.At, ErrOutOfOrder)
		}
		last = step.At

		if step.Expect == nil {
			continue
		}
		for _, name := range []string{step.Expect.Input, step.Expect.Intent} {
			if name != "" && !validMethod(name) {
				return fmt.Errorf("event %d: expect %q: %w", i, name, ErrUnknownMethod)
			}
		}
	}
	return nil
}

func (s *Script) channels() ([]whatinput.Channel, error) {
	if len(s.Listen) == 0 {
		return []whatinput.Channel{whatinput.ChannelInput, whatinput.ChannelIntent}, nil
	}

	channels := make([]whatinput.Channel, 0, len(s.Listen))
	for _, name := range s.Listen {
		// an empty name would silently mean input
		if name == "" {
			return nil, fmt.Errorf("listen %q: %w", name, ErrUnknownChannel)
		}
		ch, ok := whatinput.ParseChannel(name)
		if !ok {
			return nil, fmt.Errorf("listen %q: %w", name, ErrUnknownChannel)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func validMethod(name string) bool {
	m := whatinput.Method(name)
	return m == whatinput.MethodInitial || m.Committable()
}

// event converts the step into a tracker event at epoch+At.
func (st Step) event(epoch time.Time) whatinput.Event {
	ev := whatinput.Event{
		Type:        st.Type,
		Key:         st.Key,
		PointerType: st.PointerType,
		PointerCode: st.PointerCode,
		ScreenX:     st.X,
		ScreenY:     st.Y,
		Time:        epoch.Add(st.At),
	}
	if st.Target != nil {
		ev.Target = &whatinput.Target{
			Tag:     st.Target.Tag,
			Classes: st.Target.Classes,
			InForm:  st.Target.InForm,
		}
	}
	return ev
}
