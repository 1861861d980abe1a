// Package app runs the SDL front-end: a window whose colours follow the
// tracked input and intent.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/config"
	"github.com/Faultbox/whatinput/internal/engine/audio"
	"github.com/Faultbox/whatinput/internal/engine/input"
	"github.com/Faultbox/whatinput/internal/engine/renderer"
	"github.com/Faultbox/whatinput/internal/engine/window"
	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

// App is the SDL front-end instance.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	dispatcher *whatinput.Dispatcher
	attributes *whatinput.AttributeMap
	tracker    *whatinput.Tracker
	status     *status
	watcher    *config.Watcher
	cues       *audio.Cues
}

// New creates the window, renderer and tracker.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing app",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config:     cfg,
		dispatcher: whatinput.NewDispatcher(),
		attributes: whatinput.NewAttributeMap(),
	}

	// window first, it owns the OpenGL context
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.GetSize()
	a.renderer, err = renderer.New(w, h)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.tracker = newTracker(cfg.Tracker, a.dispatcher, a.attributes, input.Capabilities())
	a.status = newStatus(a.tracker)
	a.input = input.New(a.dispatcher)

	if cfg.Audio.Enabled {
		a.cues = audio.New(cfg.Audio.Volume)
		if err := a.cues.Init(); err != nil {
			// the demo works without sound
			logger.Warn("audio cues disabled", zap.Error(err))
			a.cues = nil
		} else {
			a.tracker.RegisterOnChange(a.cues, whatinput.ChannelInput)
		}
	}

	logger.Info("app initialized")
	return a, nil
}

// newTracker builds a tracker for the given platform capabilities. The
// configured capabilities are ignored: SDL decides which events exist.
func newTracker(cfg config.TrackerConfig, src whatinput.Source, surface whatinput.Surface, caps whatinput.Capabilities) *whatinput.Tracker {
	log := logger.Named("tracker")

	opts := cfg.Options()
	opts.Capabilities = caps
	opts.Logger = log

	tr := whatinput.New(src, whatinput.LogSurface{Log: log, Next: surface}, opts)
	tr.Setup(whatinput.SetupConfig{AttributePrefix: cfg.AttributePrefix})
	return tr
}

// WatchConfig re-applies key settings whenever the config file at path
// changes.
func (a *App) WatchConfig(path string) error {
	w, err := config.Watch(path, func(cfg *config.Config) {
		cfg.Tracker.Apply(a.tracker)
		if a.cues != nil {
			a.cues.SetVolume(cfg.Audio.Volume)
		}
		logger.Info("config reloaded",
			zap.Ints("ignored_keys", cfg.Tracker.IgnoredKeys),
			zap.Ints("specific_keys", cfg.Tracker.SpecificKeys),
		)
	})
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	a.watcher = w
	return nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.renderer.Resize(a.window.GetSize())
			case input.EventKeyDown:
				if event.Key == sdl.K_ESCAPE {
					a.running = false
				}
			}
		}
		a.drainWatchErrors()

		// 2. Reflect tracked state
		if st, changed := a.status.refresh(); changed {
			a.renderer.SetState(st.input, st.intent)
			a.window.ShowStatus(st.input, st.intent, st.element)
		}

		// 3. Render and present
		a.renderer.Draw()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Int("attributes", a.attributes.Len()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) drainWatchErrors() {
	if a.watcher == nil {
		return
	}
	select {
	case err := <-a.watcher.Errors():
		logger.Warn("config reload failed", zap.Error(err))
	default:
	}
}

// Close releases app resources.
func (a *App) Close() {
	logger.Info("closing app")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing config watcher", zap.Error(err))
		}
	}
	if a.tracker != nil {
		if a.cues != nil {
			a.tracker.UnregisterOnChange(a.cues)
		}
		a.tracker.Teardown()
	}
	if a.cues != nil {
		a.cues.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
