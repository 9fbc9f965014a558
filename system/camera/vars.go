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
	"strconv"

	"github.com/ausocean/av/revid/config"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
)

// Variable names.
const (
	KeyAspectRatio        = "AspectRatio"
	KeyAutoFocus          = "AutoFocus"
	KeyDisplayOrientation = "DisplayOrientation"
	KeyFacing             = "Facing"
	KeyFlash              = "Flash"
	KeySurfaceWidth       = "SurfaceWidth"
	KeySurfaceHeight      = "SurfaceHeight"
	KeyWidth              = config.KeyWidth
	KeyHeight             = config.KeyHeight
	KeyRotation           = config.KeyRotation
)

// Variable types.
const (
	VarTypeUint   = "uint"
	VarTypeBool   = "bool"
	VarTypeString = "string"
	VarTypeRatio  = "ratio"
	VarTypeAngle  = "angle"
)

// Variable is a named camera setting in its string form.
type Variable struct {
	Name  string
	Value string
}

// VarType holds the type information about a variable with a given name.
type VarType struct {
	Name string
	Type string
}

// VarTypes returns the variable types for a camera.
func VarTypes() []VarType {
	return []VarType{
		{Name: KeyAspectRatio, Type: VarTypeRatio},
		{Name: KeyAutoFocus, Type: VarTypeBool},
		{Name: KeyDisplayOrientation, Type: VarTypeAngle},
		{Name: KeyFacing, Type: VarTypeString},
		{Name: KeyFlash, Type: VarTypeString},
		{Name: KeySurfaceWidth, Type: VarTypeUint},
		{Name: KeySurfaceHeight, Type: VarTypeUint},
		{Name: KeyWidth, Type: VarTypeUint},
		{Name: KeyHeight, Type: VarTypeUint},
		{Name: KeyRotation, Type: VarTypeAngle},
	}
}

func varType(name string) (string, bool) {
	for _, vt := range VarTypes() {
		if vt.Name == name {
			return vt.Type, true
		}
	}
	return "", false
}

// Validate checks that v is a known variable with a value of its type.
func Validate(v Variable) error {
	typ, ok := varType(v.Name)
	if !ok {
		return fmt.Errorf("unknown camera variable: %s", v.Name)
	}
	var err error
	switch typ {
	case VarTypeUint:
		_, err = strconv.ParseUint(v.Value, 10, 32)
	case VarTypeBool:
		_, err = strconv.ParseBool(v.Value)
	case VarTypeRatio:
		_, err = resolution.ParseAspectRatio(v.Value)
	case VarTypeAngle:
		var deg int
		deg, err = strconv.Atoi(v.Value)
		if err == nil && !orientation.Valid(deg) {
			err = fmt.Errorf("not a right angle: %d", deg)
		}
	}
	switch v.Name {
	case KeyFacing:
		_, err = orientation.ParseFacing(v.Value)
	case KeyFlash:
		_, err = device.ParseFlash(v.Value)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", v.Value, v.Name, err)
	}
	return nil
}

// NewAspectRatioVar returns a new AspectRatio variable.
func NewAspectRatioVar(r string) Variable { return Variable{Name: KeyAspectRatio, Value: r} }

// NewAutoFocusVar returns a new AutoFocus variable.
func NewAutoFocusVar(auto bool) Variable {
	return Variable{Name: KeyAutoFocus, Value: strconv.FormatBool(auto)}
}

// NewDisplayOrientationVar returns a new DisplayOrientation variable.
func NewDisplayOrientationVar(deg int) Variable {
	return Variable{Name: KeyDisplayOrientation, Value: strconv.Itoa(deg)}
}

// NewFacingVar returns a new Facing variable.
func NewFacingVar(facing string) Variable { return Variable{Name: KeyFacing, Value: facing} }

// NewFlashVar returns a new Flash variable.
func NewFlashVar(flash string) Variable { return Variable{Name: KeyFlash, Value: flash} }

// NewSurfaceVars returns new SurfaceWidth and SurfaceHeight variables.
func NewSurfaceVars(width, height int) []Variable {
	return []Variable{
		{Name: KeySurfaceWidth, Value: strconv.Itoa(width)},
		{Name: KeySurfaceHeight, Value: strconv.Itoa(height)},
	}
}

// NewWidthVar returns a new Width variable.
func NewWidthVar(width int) Variable { return Variable{Name: KeyWidth, Value: strconv.Itoa(width)} }

// NewHeightVar returns a new Height variable.
func NewHeightVar(height int) Variable { return Variable{Name: KeyHeight, Value: strconv.Itoa(height)} }

// NewRotationVar returns a new Rotation variable.
func NewRotationVar(rotation int) Variable {
	return Variable{Name: KeyRotation, Value: strconv.Itoa(rotation)}
}
