// Package main is the entry point for the SDL whatinput demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/whatinput/internal/app"
	"github.com/Faultbox/whatinput/internal/config"
	"github.com/Faultbox/whatinput/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== whatinput ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if path := config.Resolve(); path != "" {
		if err := a.WatchConfig(path); err != nil {
			logger.Warn("config changes will not be picked up", zap.Error(err))
		}
	}

	if err := a.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("app closed normally")
}
