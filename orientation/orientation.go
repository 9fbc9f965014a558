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

// Package orientation maps a camera's facing and sensor orientation, and
// the current screen rotation, to the rotations needed to display the
// preview upright and to correct captured images.
//
// All angles are in degrees and are expected to be one of 0, 90, 180 or
// 270. Screen rotation is 0 for portrait, 90 when rotated anticlockwise
// and 270 when rotated clockwise.
package orientation

import (
	"fmt"
	"strings"
)

// Screen rotations.
const (
	Portrait         = 0
	Landscape90      = 90
	PortraitReversed = 180
	Landscape270     = 270
)

// Facing is the direction a camera faces relative to the screen.
type Facing int

// Camera facings.
const (
	Back Facing = iota
	Front
)

func (f Facing) String() string {
	switch f {
	case Back:
		return "back"
	case Front:
		return "front"
	}
	return fmt.Sprintf("Facing(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) {
	if f != Back && f != Front {
		return nil, fmt.Errorf("invalid camera facing: %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(b []byte) error {
	v, err := ParseFacing(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFacing parses "back" or "front".
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "back":
		return Back, nil
	case "front":
		return Front, nil
	}
	return Back, fmt.Errorf("unknown camera facing: %q", s)
}

// Valid reports whether deg is one of 0, 90, 180 or 270.
func Valid(deg int) bool {
	switch deg {
	case Portrait, Landscape90, PortraitReversed, Landscape270:
		return true
	}
	return false
}

// IsLandscape reports whether the screen rotation deg is a landscape one.
func IsLandscape(deg int) bool {
	return deg == Landscape90 || deg == Landscape270
}

// DisplayRotation returns the clockwise rotation to apply to the preview
// so it appears upright. Front camera previews are mirrored, so the
// rotation is taken in the opposite direction.
func DisplayRotation(facing Facing, sensor, screen int) int {
	if facing == Front {
		return (360 - (sensor+screen)%360) % 360
	}
	return (sensor - screen + 360) % 360
}

// CaptureRotation returns the rotation to record in, or apply to, a
// captured image so it views upright. For front cameras it is the mirror
// of DisplayRotation whenever the sensor and screen rotations do not cancel.
func CaptureRotation(facing Facing, sensor, screen int) int {
	if facing == Front {
		return (sensor + screen) % 360
	}
	flip := 0
	if IsLandscape(screen) {
		flip = 180
	}
	return (sensor + screen + flip) % 360
}
