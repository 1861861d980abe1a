package replay

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/whatinput/internal/config"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

// ErrExpectation is returned by Transcript.Err when a step did not end in
// the expected state.
var ErrExpectation = errors.New("expectation not met")

// Epoch is the time step offsets are added to.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Change is one notified method change.
type Change struct {
	Step    int               `yaml:"step"`
	Channel whatinput.Channel `yaml:"channel"`
	Method  whatinput.Method  `yaml:"method"`
}

// Record is the tracker state after one step.
type Record struct {
	Index      int               `yaml:"index"`
	At         time.Duration     `yaml:"at"`
	Type       string            `yaml:"type"`
	Handled    int               `yaml:"handled"`
	Changes    []Change          `yaml:"changes,omitempty"`
	Input      whatinput.Method  `yaml:"input"`
	Intent     whatinput.Method  `yaml:"intent"`
	Element    string            `yaml:"element,omitempty"`
	Classes    []string          `yaml:"classes,omitempty"`
	Attributes map[string]string `yaml:"attributes"`
}

// Mismatch is a failed expectation.
type Mismatch struct {
	Step  int    `yaml:"step"`
	Field string `yaml:"field"`
	Want  string `yaml:"want"`
	Got   string `yaml:"got"`
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("step %d: %s = %q, want %q", m.Step, m.Field, m.Got, m.Want)
}

// Transcript is the outcome of a replay.
type Transcript struct {
	Name       string     `yaml:"name,omitempty"`
	Records    []Record   `yaml:"records"`
	Changes    []Change   `yaml:"changes"`
	Mismatches []Mismatch `yaml:"mismatches,omitempty"`
	// Final holds the surface attributes before teardown.
	Final map[string]string `yaml:"final"`
}

// Err reports the failed expectations, if any.
func (t *Transcript) Err() error {
	if len(t.Mismatches) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d mismatches, first: %v", ErrExpectation, len(t.Mismatches), t.Mismatches[0])
}

// WriteYAML writes the transcript as YAML.
func (t *Transcript) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding transcript: %w", err)
	}
	return enc.Close()
}

// WriteText writes one line per step.
func (t *Transcript) WriteText(w io.Writer) error {
	for _, r := range t.Records {
		var changes []string
		for _, c := range r.Changes {
			changes = append(changes, fmt.Sprintf("%s->%s", c.Channel, c.Method))
		}
		element := r.Element
		if element == "" {
			element = "-"
		}
		_, err := fmt.Fprintf(w, "%3d %8s  %-14s input=%-8s intent=%-8s element=%-8s %s\n",
			r.Index, r.At, r.Type, r.Input, r.Intent, element, strings.Join(changes, " "))
		if err != nil {
			return err
		}
	}
	for _, m := range t.Mismatches {
		if _, err := fmt.Fprintf(w, "FAIL %v\n", m); err != nil {
			return err
		}
	}
	return nil
}

// Options control a replay.
type Options struct {
	// Defaults supply settings the script leaves unset. Nil means
	// config.Default().Tracker.
	Defaults *config.TrackerConfig
	Logger   *zap.Logger
}

// Run replays s through a fresh tracker.
func Run(s *Script, opts Options) (*Transcript, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	channels, _ := s.channels()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	defaults := opts.Defaults
	if defaults == nil {
		defaults = &config.Default().Tracker
	}
	settings := s.settings(*defaults)
	trackerOpts := settings.Options()
	trackerOpts.Logger = log
	trackerOpts.Now = func() time.Time { return Epoch }

	dispatcher := whatinput.NewDispatcher()
	surface := whatinput.NewAttributeMap()
	tracker := whatinput.New(dispatcher, whatinput.LogSurface{Log: log, Next: surface}, trackerOpts)
	tracker.Setup(whatinput.SetupConfig{AttributePrefix: settings.AttributePrefix})

	tr := &Transcript{Name: s.Name}
	step := -1
	for _, ch := range channels {
		tracker.RegisterOnChange(whatinput.OnChange(func(m whatinput.Method) {
			tr.Changes = append(tr.Changes, Change{Step: step, Channel: ch, Method: m})
		}), ch)
	}

	for i, st := range s.Events {
		step = i
		before := len(tr.Changes)
		handled := dispatcher.Dispatch(st.event(Epoch))
		if handled == 0 {
			log.Debug("event type not observed", zap.Int("step", i), zap.String("type", st.Type))
		}

		rec := Record{
			Index:      i,
			At:         st.At,
			Type:       st.Type,
			Handled:    handled,
			Changes:    slices.Clone(tr.Changes[before:]),
			Input:      tracker.Ask(whatinput.ChannelInput),
			Intent:     tracker.Ask(whatinput.ChannelIntent),
			Element:    tracker.Element(),
			Classes:    tracker.Classes(),
			Attributes: surface.Snapshot(),
		}
		tr.Records = append(tr.Records, rec)
		tr.Mismatches = append(tr.Mismatches, check(st.Expect, rec)...)
	}

	tr.Final = surface.Snapshot()
	tracker.Teardown()

	log.Debug("replay finished",
		zap.String("script", s.Name),
		zap.Int("events", len(s.Events)),
		zap.Int("changes", len(tr.Changes)),
		zap.Int("mismatches", len(tr.Mismatches)),
	)
	return tr, nil
}

// settings overlays the script's settings on defaults.
func (s *Script) settings(defaults config.TrackerConfig) config.TrackerConfig {
	out := defaults
	if s.Prefix != "" {
		out.AttributePrefix = s.Prefix
	}
	if s.IgnoredKeys != nil {
		out.IgnoredKeys = s.IgnoredKeys
	}
	if s.SpecificKeys != nil {
		out.SpecificKeys = s.SpecificKeys
	}
	if s.TouchWindow > 0 {
		out.TouchWindow = s.TouchWindow
	}
	if s.Capabilities != nil {
		out.Capabilities = *s.Capabilities
	}
	return out
}

func check(e *Expect, r Record) []Mismatch {
	if e == nil {
		return nil
	}

	var out []Mismatch
	add := func(field, want, got string) {
		if want != "" && want != got {
			out = append(out, Mismatch{Step: r.Index, Field: field, Want: want, Got: got})
		}
	}

	add("input", e.Input, r.Input.String())
	add("intent", e.Intent, r.Intent.String())

	element := r.Element
	if element == "" {
		element = "-"
	}
	add("element", e.Element, element)

	if e.Classes != nil && !slices.Equal(e.Classes, r.Classes) {
		out = append(out, Mismatch{
			Step:  r.Index,
			Field: "classes",
			Want:  strings.Join(e.Classes, ","),
			Got:   strings.Join(r.Classes, ","),
		})
	}
	return out
}
