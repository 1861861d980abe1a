package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/whatinput/internal/whatinput"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tracker.AttributePrefix != "data-" {
		t.Errorf("expected prefix data-, got %s", cfg.Tracker.AttributePrefix)
	}
	if len(cfg.Tracker.IgnoredKeys) != 5 {
		t.Errorf("expected 5 ignored keys, got %v", cfg.Tracker.IgnoredKeys)
	}
	if len(cfg.Tracker.SpecificKeys) != 0 {
		t.Errorf("expected no specific keys, got %v", cfg.Tracker.SpecificKeys)
	}
	if cfg.Tracker.TouchWindow != 200*time.Millisecond {
		t.Errorf("expected touch window 200ms, got %v", cfg.Tracker.TouchWindow)
	}
	if !cfg.Tracker.Capabilities.PointerEvents {
		t.Error("expected pointer events by default")
	}
	if cfg.Tracker.Capabilities.Wheel != "wheel" {
		t.Errorf("expected wheel event 'wheel', got %s", cfg.Tracker.Capabilities.Wheel)
	}

	if cfg.Window.Width != 960 || cfg.Window.Height != 540 {
		t.Errorf("expected 960x540, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Terminal.Mouse || !cfg.Terminal.Focus {
		t.Error("expected terminal mouse and focus reporting by default")
	}
	if cfg.Audio.Enabled || cfg.Audio.Volume != 0.5 {
		t.Errorf("expected audio off at volume 0.5, got %+v", cfg.Audio)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
tracker:
  attribute_prefix: "ui-"
  ignored_keys: [16, 17]
  specific_keys: [65, 66]
  touch_window: 350ms
  capabilities:
    pointer_events: false
    touch_events: true
    wheel: mousewheel

window:
  title: "probe"
  width: 1920
  height: 1080
  fullscreen: true

logging:
  level: "debug"
  log_file: "whatinput.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tracker.AttributePrefix != "ui-" {
		t.Errorf("expected prefix ui-, got %s", cfg.Tracker.AttributePrefix)
	}
	if len(cfg.Tracker.IgnoredKeys) != 2 || cfg.Tracker.IgnoredKeys[1] != 17 {
		t.Errorf("expected ignored keys [16 17], got %v", cfg.Tracker.IgnoredKeys)
	}
	if len(cfg.Tracker.SpecificKeys) != 2 || cfg.Tracker.SpecificKeys[0] != 65 {
		t.Errorf("expected specific keys [65 66], got %v", cfg.Tracker.SpecificKeys)
	}
	if cfg.Tracker.TouchWindow != 350*time.Millisecond {
		t.Errorf("expected touch window 350ms, got %v", cfg.Tracker.TouchWindow)
	}
	caps := cfg.Tracker.Capabilities
	if caps.PointerEvents || !caps.TouchEvents || caps.Wheel != "mousewheel" {
		t.Errorf("unexpected capabilities %+v", caps)
	}
	if cfg.Window.Title != "probe" || cfg.Window.Width != 1920 || !cfg.Window.Fullscreen {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	// untouched sections keep defaults
	if !cfg.Window.VSync {
		t.Error("expected vsync default to survive")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "whatinput.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `
[tracker]
attribute_prefix = "x-"
specific_keys = [13]
touch_window = "150ms"

[tracker.capabilities]
ms_pointer_events = true
pointer_events = false

[terminal]
mouse = false

[audio]
enabled = true
volume = 0.25
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tracker.AttributePrefix != "x-" {
		t.Errorf("expected prefix x-, got %s", cfg.Tracker.AttributePrefix)
	}
	if len(cfg.Tracker.SpecificKeys) != 1 || cfg.Tracker.SpecificKeys[0] != 13 {
		t.Errorf("expected specific keys [13], got %v", cfg.Tracker.SpecificKeys)
	}
	if cfg.Tracker.TouchWindow != 150*time.Millisecond {
		t.Errorf("expected touch window 150ms, got %v", cfg.Tracker.TouchWindow)
	}
	if !cfg.Tracker.Capabilities.MSPointerEvents || cfg.Tracker.Capabilities.PointerEvents {
		t.Errorf("unexpected capabilities %+v", cfg.Tracker.Capabilities)
	}
	if cfg.Terminal.Mouse {
		t.Error("expected terminal mouse to be disabled")
	}
	if !cfg.Terminal.Focus {
		t.Error("expected terminal focus default to survive")
	}
	if !cfg.Audio.Enabled || cfg.Audio.Volume != 0.25 {
		t.Errorf("expected audio on at 0.25, got %+v", cfg.Audio)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
tracker:
  ignored_keys: not a list
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnsupported(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(configPath, []byte("[tracker]\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), configPath)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.toml" {
		t.Errorf("expected ./config.toml, got %q", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.yaml" {
		t.Errorf("expected yaml to win over toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		setup  func()
		verify func(*testing.T, *Config)
		reset  func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			reset: func() { *flagDebug = false },
		},
		{
			name:  "prefix flag",
			setup: func() { *flagPrefix = "aria-" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Tracker.AttributePrefix != "aria-" {
					t.Errorf("expected prefix aria-, got %s", cfg.Tracker.AttributePrefix)
				}
			},
			reset: func() { *flagPrefix = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true")
				}
			},
			reset: func() { *flagFullscreen = false },
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 640
				*flagHeight = 480
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
					t.Errorf("expected 640x480, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			reset: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "/tmp/w.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/w.log" {
					t.Errorf("expected log file /tmp/w.log, got %s", cfg.Logging.LogFile)
				}
			},
			reset: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Tracker.SpecificKeys = []int{65}
	cfg.Tracker.TouchWindow = 250 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(loaded.Tracker.SpecificKeys) != 1 || loaded.Tracker.SpecificKeys[0] != 65 {
		t.Errorf("specific keys = %v", loaded.Tracker.SpecificKeys)
	}
	if loaded.Tracker.TouchWindow != 250*time.Millisecond {
		t.Errorf("touch window = %v", loaded.Tracker.TouchWindow)
	}
}

func TestTrackerConfigApply(t *testing.T) {
	src := whatinput.NewDispatcher()
	tr := whatinput.New(src, nil, Default().Tracker.Options())
	tr.Setup(whatinput.SetupConfig{})

	tc := TrackerConfig{SpecificKeys: []int{65}}
	tc.Apply(tr)

	src.Dispatch(whatinput.Event{Type: whatinput.EventKeyDown, Key: 66})
	if got := tr.Ask(whatinput.ChannelInput); got != whatinput.MethodInitial {
		t.Errorf("input = %s after non-specific key", got)
	}
	src.Dispatch(whatinput.Event{Type: whatinput.EventKeyDown, Key: 65})
	if got := tr.Ask(whatinput.ChannelInput); got != whatinput.MethodKeyboard {
		t.Errorf("input = %s after specific key", got)
	}
}
