// Package config handles road generator configuration loading and management.
package config

import (
	"github.com/Faultbox/roadgen/internal/road"
)

// Config holds all settings.
type Config struct {
	Road    road.Settings `yaml:"road"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was loaded from, empty for defaults only.
	Source string `yaml:"-"`
}

// ViewerConfig holds display and rendering settings for the interactive viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	// Surface colors (RGB, 0-1) standing in for the top, underside and side materials.
	TopColor    [3]float32 `yaml:"top_color"`
	BottomColor [3]float32 `yaml:"bottom_color"`
	SideColor   [3]float32 `yaml:"side_color"`

	// Sun position in degrees: azimuth about +Y from +Z, elevation above the horizon.
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	OBJPath    string `yaml:"obj_path"`
	Name       string `yaml:"name"`
	TopTexture string `yaml:"top_texture"` // diffuse map referenced by the top material
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Road: road.DefaultSettings(),
		Viewer: ViewerConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			TopColor:     [3]float32{0.32, 0.33, 0.35},
			BottomColor:  [3]float32{0.45, 0.38, 0.30},
			SideColor:    [3]float32{0.55, 0.55, 0.52},
			SunAzimuth:   135,
			SunElevation: 50,
		},
		Export: ExportConfig{
			OBJPath:    "road.obj",
			Name:       "road",
			TopTexture: "asphalt.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ExportOptions returns the mesh export settings. Exported materials use the
// viewer's surface colors.
func (c *Config) ExportOptions() road.ExportOptions {
	return road.ExportOptions{
		Name: c.Export.Name,
		Colors: road.SurfaceColors{
			Top:    c.Viewer.TopColor,
			Bottom: c.Viewer.BottomColor,
			Sides:  c.Viewer.SideColor,
		},
		TopTexture: c.Export.TopTexture,
	}
}
