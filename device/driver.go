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

// Package device drives a camera through its open, adjust and close
// lifecycle, negotiating the preview and picture sizes and applying the
// orientation each time the camera's capabilities, the display surface or
// the screen rotation change.
package device

import (
	"errors"

	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
)

// Device errors.
var (
	ErrNotOpen       = errors.New("camera is not open")
	ErrNotConfigured = errors.New("camera is open but not configured")
	ErrNoCamera      = errors.New("no camera with requested facing")
)

// Capabilities are the properties a camera reports when opened.
type Capabilities struct {
	Preview           []resolution.Size  `json:"preview"`           // Supported preview stream sizes.
	Picture           []resolution.Size  `json:"picture"`           // Supported still capture sizes.
	SensorOrientation int                `json:"sensorOrientation"` // Degrees, one of 0, 90, 180 or 270.
	Facing            orientation.Facing `json:"facing"`
	FocusModes        []string           `json:"focusModes,omitempty"`
	FlashModes        []string           `json:"flashModes,omitempty"`
}

// Parameters are the settings applied to an open camera.
type Parameters struct {
	Preview            resolution.Size `json:"preview"`
	Picture            resolution.Size `json:"picture"`
	Rotation           int             `json:"rotation"`           // Capture rotation in degrees.
	DisplayOrientation int             `json:"displayOrientation"` // Preview rotation in degrees.
	FocusMode          string          `json:"focusMode,omitempty"`
	FlashMode          string          `json:"flashMode,omitempty"`
}

// Driver is implemented by the camera hardware layer. The Controller is
// the only caller and never calls a Driver concurrently.
type Driver interface {
	// Open opens the first camera with the given facing. ErrNoCamera is
	// returned if there is none.
	Open(facing orientation.Facing) error

	// Capabilities returns the properties of the open camera.
	Capabilities() (Capabilities, error)

	// Configure applies parameters to the open camera.
	Configure(Parameters) error

	// Close releases the camera.
	Close() error
}
