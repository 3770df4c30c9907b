// roadgen is a CLI for generating road segments and exporting their meshes.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/logger"
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
	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}

	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(cfg, args[0], args[1:], os.Stdout); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(cfg, out)
	case "path":
		return cmdPath(cfg, out)
	case "export":
		return cmdExport(cfg, args, out)
	case "probe":
		return cmdProbe(cfg, args, out)
	case "inspect":
		return cmdInspect(args, out)
	case "config":
		return cmdConfig(cfg, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `roadgen - procedural road segment generator

Usage:
  roadgen [flags] <command> [arguments]

Commands:
  info                   Show path and mesh statistics
  path                   Dump the sampled path as YAML
  export [file.obj]      Write the mesh as OBJ plus an MTL library
  probe <distance>       Interpolate the path at a distance in meters
  inspect <file.obj>     Summarize an exported OBJ file
  config [file.yaml]     Print the effective config, or save it to a file

Flags:
  -config <file>         Config file (default ./roadgen.yaml or the user config dir)
  -left | -right         Turn direction
  -leg, -arc, -radius    Straight leg length, arc length and turn radius in meters
  -width, -thickness     Road half-width and slab thickness in meters
  -debug                 Debug logging

Examples:
  roadgen info
  roadgen -left -radius 20 -arc 25 export road.obj
  roadgen probe 17.5`)
}
