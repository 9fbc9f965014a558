//go:build !linux

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

package v4l2

import (
	"errors"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/utils/logging"
)

// ErrUnsupported is returned by New on platforms without V4L2.
var ErrUnsupported = errors.New("v4l2 is only supported on linux")

// Driver is unavailable on this platform.
type Driver struct{ device.Driver }

func New(path, format string, facing orientation.Facing, sensor int, l logging.Logger) (*Driver, error) {
	return nil, ErrUnsupported
}
