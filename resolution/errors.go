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

package resolution

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed ratios, sizes and other
	// caller errors. It is never worth retrying.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSupportedConfiguration is returned when the preview and picture
	// capabilities have no aspect ratio in common, so no camera
	// configuration exists.
	ErrNoSupportedConfiguration = errors.New("no aspect ratio supported by both preview and picture sizes")
)

// UnsupportedRatioError is returned when a caller explicitly requests an
// aspect ratio that the current preview capabilities do not offer.
type UnsupportedRatioError struct{ Ratio AspectRatio }

// Error returns the error message.
func (e UnsupportedRatioError) Error() string {
	return fmt.Sprintf("aspect ratio %s is not supported", e.Ratio)
}

// Is returns true if err is an UnsupportedRatioError, regardless of ratio.
func (e UnsupportedRatioError) Is(err error) bool {
	_, ok := err.(UnsupportedRatioError)
	return ok
}
