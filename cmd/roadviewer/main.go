// Package main is the entry point for the interactive road viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/viewer"
)

func main() {
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

	logger.Info("=== roadgen viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
