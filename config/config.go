/*
LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean)

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  It is distributed in the hope that it will be useful,
  but WITHOUT ANY WARRANTY; without even the implied warranty of
  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
  GNU General Public License for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

// Package config loads the camera view configuration file. The file is
// JSON, and holds logging parameters along with the camera settings that
// the host starts with.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/cameraview/system/camera"
	"github.com/ausocean/utils/logging"
)

// DefaultPath is the default path of the configuration file.
const DefaultPath = "/etc/camview/config.json"

// Defaults for fields not set in the file.
const (
	DefaultLogLevel = "info"
	DefaultHTTPAddr = ":8080"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the camera view configuration.
type Config struct {
	LogLevel         string   `json:"LogLevel"`
	LogSuppress      bool     `json:"LogSuppress"`
	LogCallerFilters []string `json:"LogCallerFilters"`

	AspectRatio        string `json:"AspectRatio"`
	Facing             string `json:"Facing"`
	AutoFocus          *bool  `json:"AutoFocus"`
	Flash              string `json:"Flash"`
	DisplayOrientation int    `json:"DisplayOrientation"`
	SensorOrientation  int    `json:"SensorOrientation"`
	SurfaceWidth       int    `json:"SurfaceWidth"`  // Zero if not yet measured.
	SurfaceHeight      int    `json:"SurfaceHeight"` // Zero if not yet measured.

	Device       string `json:"Device"`       // V4L2 device path.
	Format       string `json:"Format"`       // V4L2 pixel format fourcc.
	Capabilities string `json:"Capabilities"` // Path of a capabilities file, used instead of Device.

	HTTPAddr string `json:"HTTPAddr"` // Empty disables the HTTP API.
}

var levels = map[string]int8{
	"debug":   logging.Debug,
	"info":    logging.Info,
	"warning": logging.Warning,
	"error":   logging.Error,
	"fatal":   logging.Fatal,
}

// Default returns the configuration used when no file exists. Unlike a
// parsed file it serves the HTTP API, on DefaultHTTPAddr.
func Default() Config {
	c := Config{
		DisplayOrientation: camera.DefaultDisplayOrientation,
		SensorOrientation:  camera.DefaultSensorOrientation,
		HTTPAddr:           DefaultHTTPAddr,
	}
	c.setDefaults()
	return c
}

// Load reads the configuration file at path, applies defaults for unset
// fields and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses a JSON configuration, applies defaults for unset fields
// and validates the result.
func Parse(data []byte) (Config, error) {
	var c Config
	err := json.Unmarshal(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config file: %w", err)
	}
	c.setDefaults()
	err = c.Validate()
	if err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.AspectRatio == "" {
		c.AspectRatio = camera.DefaultAspectRatio
	}
	if c.Facing == "" {
		c.Facing = camera.DefaultFacing
	}
	if c.AutoFocus == nil {
		auto := camera.DefaultAutoFocus
		c.AutoFocus = &auto
	}
	if c.Flash == "" {
		c.Flash = camera.DefaultFlash
	}
	if c.Device == "" {
		c.Device = camera.DefaultDevice
	}
	if c.Format == "" {
		c.Format = camera.DefaultFormat
	}
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if (c.SurfaceWidth == 0) != (c.SurfaceHeight == 0) || c.SurfaceWidth < 0 || c.SurfaceHeight < 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidConfig, c.SurfaceWidth, c.SurfaceHeight)
	}
	if !orientation.Valid(c.SensorOrientation) {
		return fmt.Errorf("%w: sensor orientation %d", ErrInvalidConfig, c.SensorOrientation)
	}
	for _, v := range c.Variables() {
		err := camera.Validate(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Level returns the logging level for LogLevel.
func (c Config) Level() int8 {
	l, ok := levels[c.LogLevel]
	if !ok {
		return logging.Info
	}
	return l
}

// ApplyLogging sets the level, suppression and caller filters of l.
func (c Config) ApplyLogging(l *logging.JSONLogger) {
	l.SetLevel(c.Level())
	l.SetSuppress(c.LogSuppress)
	l.SetCallerFilters(c.LogCallerFilters...)
}

// Variables returns the camera settings as camera variables.
func (c Config) Variables() []camera.Variable {
	vars := []camera.Variable{
		camera.NewAspectRatioVar(c.AspectRatio),
		camera.NewFacingVar(c.Facing),
		camera.NewFlashVar(c.Flash),
		camera.NewDisplayOrientationVar(c.DisplayOrientation),
	}
	if c.AutoFocus != nil {
		vars = append(vars, camera.NewAutoFocusVar(*c.AutoFocus))
	}
	if c.SurfaceWidth > 0 && c.SurfaceHeight > 0 {
		vars = append(vars, camera.NewSurfaceVars(c.SurfaceWidth, c.SurfaceHeight)...)
	}
	return vars
}

// FacingValue returns the parsed camera facing.
func (c Config) FacingValue() orientation.Facing {
	f, err := orientation.ParseFacing(c.Facing)
	if err != nil {
		return orientation.Back
	}
	return f
}

// Ratio returns the parsed aspect ratio.
func (c Config) Ratio() (resolution.AspectRatio, error) {
	return resolution.ParseAspectRatio(c.AspectRatio)
}

// LoadCapabilities reads the capabilities file named by the configuration.
func (c Config) LoadCapabilities() ([]device.Capabilities, error) {
	f, err := os.Open(c.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("could not open capabilities file: %w", err)
	}
	defer f.Close()
	return device.ReadCapabilities(f)
}

func (c Config) String() string {
	return "level=" + c.LogLevel + " ratio=" + c.AspectRatio + " facing=" + c.Facing +
		" flash=" + c.Flash + " orientation=" + strconv.Itoa(c.DisplayOrientation)
}
