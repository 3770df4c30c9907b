package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLeft       = flag.Bool("left", false, "Generate a left turn")
	flagRight      = flag.Bool("right", false, "Generate a right turn")
	flagLeg        = flag.Float64("leg", 0, "Straight leg length in meters")
	flagArc        = flag.Float64("arc", 0, "Arc length in meters")
	flagRadius     = flag.Float64("radius", 0, "Turn circle radius in meters")
	flagWidth      = flag.Float64("width", 0, "Road half-width in meters")
	flagThickness  = flag.Float64("thickness", 0, "Road thickness in meters")
	flagWindowed   = flag.Bool("windowed", false, "Run the viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLeft {
		cfg.Road.LeftTurn = true
	}
	if *flagRight {
		cfg.Road.LeftTurn = false
	}
	if *flagLeg > 0 {
		cfg.Road.StraightLegLength = float32(*flagLeg)
	}
	if *flagArc > 0 {
		cfg.Road.ArcLength = float32(*flagArc)
	}
	if *flagRadius > 0 {
		cfg.Road.CircleRadius = float32(*flagRadius)
	}
	if *flagWidth > 0 {
		cfg.Road.Width = float32(*flagWidth)
	}
	if *flagThickness > 0 {
		cfg.Road.Thickness = float32(*flagThickness)
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
}
