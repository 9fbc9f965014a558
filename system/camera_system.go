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

package system

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/cameraview/system/camera"
	"github.com/ausocean/utils/logging"
)

// CameraSystem contains a camera driver and the associated variables.
type CameraSystem struct {
	Name   string
	Driver device.Driver
	Vars   []camera.Variable
}

// AddVariables adds the associated variables to the system. A variable
// replaces any existing variable with the same name.
func (sys *CameraSystem) AddVariables(variables ...camera.Variable) {
	for _, v := range variables {
		i := sys.index(v.Name)
		if i < 0 {
			sys.Vars = append(sys.Vars, v)
			continue
		}
		sys.Vars[i] = v
	}
}

// Var returns the value of the named variable.
func (sys *CameraSystem) Var(name string) (string, bool) {
	i := sys.index(name)
	if i < 0 {
		return "", false
	}
	return sys.Vars[i].Value, true
}

func (sys *CameraSystem) index(name string) int {
	for i, v := range sys.Vars {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// NewCameraSystem returns a new camera system with the given name and
// driver, with the given options applied.
func NewCameraSystem(name string, drv device.Driver, opts ...Option) (*CameraSystem, error) {
	if drv == nil {
		return nil, errors.New("nil camera driver")
	}

	sys := &CameraSystem{Name: name, Driver: drv}

	for i, opt := range opts {
		err := opt(sys)
		if err != nil {
			return nil, fmt.Errorf("unable to apply option (%d): %w", i, err)
		}
	}

	return sys, nil
}

// ControllerOptions returns the device controller options that the
// system's variables describe. Variables are validated when added, so
// errors here indicate a variable set directly on Vars.
func (sys *CameraSystem) ControllerOptions() ([]device.Option, error) {
	var opts []device.Option
	for _, v := range sys.Vars {
		err := camera.Validate(v)
		if err != nil {
			return nil, err
		}
		switch v.Name {
		case camera.KeyAspectRatio:
			r, _ := resolution.ParseAspectRatio(v.Value)
			opts = append(opts, device.WithAspectRatio(r))
		case camera.KeyAutoFocus:
			auto, _ := strconv.ParseBool(v.Value)
			opts = append(opts, device.WithAutoFocus(auto))
		case camera.KeyDisplayOrientation:
			deg, _ := strconv.Atoi(v.Value)
			opts = append(opts, device.WithDisplayOrientation(deg))
		case camera.KeyFacing:
			f, _ := orientation.ParseFacing(v.Value)
			opts = append(opts, device.WithFacing(f))
		case camera.KeyFlash:
			f, _ := device.ParseFlash(v.Value)
			opts = append(opts, device.WithFlash(f))
		}
	}

	ws, wok := sys.Var(camera.KeySurfaceWidth)
	hs, hok := sys.Var(camera.KeySurfaceHeight)
	if wok && hok {
		w, _ := strconv.Atoi(ws)
		h, _ := strconv.Atoi(hs)
		if w > 0 && h > 0 {
			opts = append(opts, device.WithSurface(w, h))
		}
	}
	return opts, nil
}

// NewController returns a device controller for the system's driver,
// configured by the system's variables. Options in extra are applied
// after those from the variables.
func (sys *CameraSystem) NewController(l logging.Logger, extra ...device.Option) (*device.Controller, error) {
	opts, err := sys.ControllerOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid camera system %s: %w", sys.Name, err)
	}
	return device.NewController(sys.Driver, l, append(opts, extra...)...)
}

// SetResult records a negotiated result as the system's revid variables.
func (sys *CameraSystem) SetResult(r resolution.Result, rotation int) {
	sys.AddVariables(camera.RevidVars(r, rotation)...)
}
