// Package main is the entry point for the ImGui road editor.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/editor"
	"github.com/Faultbox/roadgen/internal/logger"
)

func main() {
	// OpenGL and the ImGui backend must stay on the main thread.
	runtime.LockOSThread()

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

	logger.Info("=== roadgen editor ===")

	app, err := editor.New(cfg)
	if err != nil {
		logger.Error("failed to create editor", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
	logger.Info("editor closed normally")
}
