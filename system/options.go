/*
AUTHORS
  David Sutton <david@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean).

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

package system

import (
	"fmt"
	"reflect"

	"github.com/ausocean/cameraview/system/camera"
)

// Option represents functional options that can be passed to NewCameraSystem.
type Option func(any) error

// variableHolder is an interface for types which can add variables.
type variableHolder interface {
	AddVariables(variables ...camera.Variable)
}

// WithVariables is a functional option that adds the passed variables to the
// system. Each variable is validated against its type.
func WithVariables(variables ...camera.Variable) func(any) error {
	return func(v any) error {
		vh, ok := v.(variableHolder)
		if !ok {
			return fmt.Errorf("%v does not implement variableHolder interface", reflect.TypeOf(v).String())
		}
		for _, variable := range variables {
			err := camera.Validate(variable)
			if err != nil {
				return err
			}
		}
		vh.AddVariables(variables...)
		return nil
	}
}

// WithSurface is a functional option which sets the display surface size.
func WithSurface(width, height int) func(any) error {
	return func(v any) error {
		vh, ok := v.(variableHolder)
		if !ok {
			return fmt.Errorf("%v does not implement variableHolder interface", reflect.TypeOf(v).String())
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid surface size: %dx%d", width, height)
		}
		vh.AddVariables(camera.NewSurfaceVars(width, height)...)
		return nil
	}
}

// WithCameraDefaults is a functional option that uses all of the current
// defaults for a camera.
func WithCameraDefaults() func(any) error {
	return func(v any) error {
		vh, ok := v.(variableHolder)
		if !ok {
			return fmt.Errorf("%v does not implement variableHolder interface", reflect.TypeOf(v).String())
		}
		vh.AddVariables(
			camera.NewAspectRatioVar(camera.DefaultAspectRatio),
			camera.NewAutoFocusVar(camera.DefaultAutoFocus),
			camera.NewDisplayOrientationVar(camera.DefaultDisplayOrientation),
			camera.NewFacingVar(camera.DefaultFacing),
			camera.NewFlashVar(camera.DefaultFlash),
			camera.NewWidthVar(camera.DefaultWidth),
			camera.NewHeightVar(camera.DefaultHeight),
			camera.NewRotationVar(camera.DefaultRotation),
		)
		return nil
	}
}
