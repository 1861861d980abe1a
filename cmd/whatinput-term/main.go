// Package main is the entry point for the terminal whatinput demo.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/config"
	"github.com/Faultbox/whatinput/internal/engine/audio"
	"github.com/Faultbox/whatinput/internal/logger"
	"github.com/Faultbox/whatinput/internal/terminal"
	"github.com/Faultbox/whatinput/internal/whatinput"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// the screen owns stdout, so logs only go to the file
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(cfg.Logging.LogFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("terminal error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	if cfg.Terminal.Mouse {
		screen.EnableMouse(tcell.MouseMotionEvents)
	}
	if cfg.Terminal.Focus {
		screen.EnableFocus()
	}

	log := logger.Named("tracker")
	opts := cfg.Tracker.Options()
	opts.Capabilities = terminal.Capabilities()
	opts.Logger = log

	d := whatinput.NewDispatcher()
	tr := whatinput.New(d, whatinput.LogSurface{Log: log}, opts)
	tr.Setup(whatinput.SetupConfig{AttributePrefix: cfg.Tracker.AttributePrefix})
	defer tr.Teardown()

	if cfg.Audio.Enabled {
		cues := audio.New(cfg.Audio.Volume)
		if err := cues.Init(); err != nil {
			logger.Warn("audio cues disabled", zap.Error(err))
		} else {
			defer cues.Close()
			tr.RegisterOnChange(cues, whatinput.ChannelInput)
		}
	}

	if path := config.Resolve(); path != "" {
		w, err := config.Watch(path, func(c *config.Config) {
			c.Tracker.Apply(tr)
			logger.Info("config reloaded", zap.String("path", path))
		})
		if err != nil {
			logger.Warn("config changes will not be picked up", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	logger.Info("terminal session started")
	terminal.NewSession(screen, tr, d, logger.Named("terminal")).Run()
	logger.Info("terminal session ended")
	return nil
}
