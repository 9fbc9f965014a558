/*
AUTHORS
  David Sutton <david@ausocean.org>

LICENSE
  Copyright (C) 2025 the Australian Ocean Lab (AusOcean).

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  This is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY
  or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public
  License for more details.

  You should have received a copy of the GNU General Public License in
  gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

package camera

import (
	"fmt"

	"github.com/ausocean/av/revid/config"

	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
)

// RevidConfig sets the capture width, height and rotation of a revid
// configuration to a negotiated result, so that a revid pipeline
// captures pictures at the negotiated size. rotation is the capture
// rotation in degrees.
func RevidConfig(cfg *config.Config, r resolution.Result, rotation int) error {
	if cfg == nil {
		return fmt.Errorf("nil revid config: %w", resolution.ErrInvalidArgument)
	}
	if !r.Picture.Valid() {
		return fmt.Errorf("picture size %s: %w", r.Picture, resolution.ErrInvalidArgument)
	}
	if !orientation.Valid(rotation) {
		return fmt.Errorf("rotation %d: %w", rotation, resolution.ErrInvalidArgument)
	}
	cfg.Width = uint(r.Picture.Width)
	cfg.Height = uint(r.Picture.Height)
	cfg.Rotation = uint(rotation)
	return nil
}

// RevidVars returns the revid variables for a negotiated result.
func RevidVars(r resolution.Result, rotation int) []Variable {
	return []Variable{
		NewWidthVar(r.Picture.Width),
		NewHeightVar(r.Picture.Height),
		NewRotationVar(rotation),
	}
}
