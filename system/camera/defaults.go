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

// package camera defines the default values for camera variables.
package camera

// Default values used for camera variables.
const (
	DefaultAspectRatio        = "4:3"
	DefaultAutoFocus          = true
	DefaultDevice             = "/dev/video0"
	DefaultDisplayOrientation = 0
	DefaultFacing             = "back"
	DefaultFlash              = "off"
	DefaultFormat             = "MJPG"
	DefaultHeight             = 1080
	DefaultRotation           = 0
	DefaultSensorOrientation  = 0
	DefaultWidth              = 1920
)
