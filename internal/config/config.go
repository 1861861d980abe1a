// Package config handles loading and management of tracker and front-end settings.
package config

import (
	"time"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

// Config holds all settings.
type Config struct {
	Tracker  TrackerConfig  `yaml:"tracker" toml:"tracker"`
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Terminal TerminalConfig `yaml:"terminal" toml:"terminal"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// TrackerConfig holds input classification settings.
type TrackerConfig struct {
	AttributePrefix string        `yaml:"attribute_prefix" toml:"attribute_prefix"`
	IgnoredKeys     []int         `yaml:"ignored_keys" toml:"ignored_keys"`
	SpecificKeys    []int         `yaml:"specific_keys" toml:"specific_keys"`
	TouchWindow     time.Duration `yaml:"touch_window" toml:"touch_window"`

	Capabilities whatinput.Capabilities `yaml:"capabilities" toml:"capabilities"`
}

// WindowConfig holds settings of the SDL demo window.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// TerminalConfig holds settings of the terminal front-end.
type TerminalConfig struct {
	Mouse bool `yaml:"mouse" toml:"mouse"`
	Focus bool `yaml:"focus" toml:"focus"`
}

// AudioConfig holds settings of the audible method-change cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tracker: TrackerConfig{
			AttributePrefix: whatinput.DefaultAttributePrefix,
			IgnoredKeys:     whatinput.DefaultIgnoredKeys(),
			TouchWindow:     whatinput.DefaultTouchWindow,
			Capabilities:    whatinput.DefaultCapabilities(),
		},
		Window: WindowConfig{
			Title:  "whatinput",
			Width:  960,
			Height: 540,
			VSync:  true,
		},
		Terminal: TerminalConfig{
			Mouse: true,
			Focus: true,
		},
		Audio: AudioConfig{
			Volume: 0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Options converts the tracker settings into tracker options.
func (t TrackerConfig) Options() whatinput.Options {
	return whatinput.Options{
		Capabilities: t.Capabilities,
		TouchWindow:  t.TouchWindow,
		IgnoredKeys:  t.IgnoredKeys,
		SpecificKeys: t.SpecificKeys,
	}
}

// Apply re-applies the key policy to a running tracker.
func (t TrackerConfig) Apply(tr *whatinput.Tracker) {
	ignored := t.IgnoredKeys
	if ignored == nil {
		ignored = whatinput.DefaultIgnoredKeys()
	}
	tr.SetIgnoredKeys(ignored)
	tr.SetSpecificKeys(t.SpecificKeys)
}
