//go:build linux

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
	"fmt"

	"github.com/blackjack/webcam"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/utils/logging"
)

// V4L2 control ids.
const (
	cidFocusAuto = webcam.ControlID(0x009a090c)
	cidRotate    = webcam.ControlID(0x00980922)
)

// Driver is a device.Driver for one V4L2 device. V4L2 has no notion of
// facing, so the device is reported with the facing and sensor
// orientation it was configured with, and opening any other facing fails
// with device.ErrNoCamera.
type Driver struct {
	path   string
	format webcam.PixelFormat
	facing orientation.Facing
	sensor int
	log    logging.Logger
	cam    *webcam.Webcam
}

// New returns a Driver for the device at path, capturing in the pixel
// format with fourcc code format.
func New(path, format string, facing orientation.Facing, sensor int, l logging.Logger) (*Driver, error) {
	f, err := FourCC(format)
	if err != nil {
		return nil, err
	}
	if !orientation.Valid(sensor) {
		return nil, fmt.Errorf("invalid sensor orientation: %d", sensor)
	}
	return &Driver{path: path, format: f, facing: facing, sensor: sensor, log: l}, nil
}

func (d *Driver) Open(facing orientation.Facing) error {
	if facing != d.facing {
		return device.ErrNoCamera
	}
	cam, err := webcam.Open(d.path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", d.path, err)
	}
	formats := cam.GetSupportedFormats()
	if _, ok := formats[d.format]; !ok {
		cam.Close()
		return fmt.Errorf("pixel format %08x not supported by %s", uint32(d.format), d.path)
	}
	d.cam = cam
	d.log.Debug("opened v4l2 device", "path", d.path, "format", formats[d.format])
	return nil
}

func (d *Driver) Capabilities() (device.Capabilities, error) {
	if d.cam == nil {
		return device.Capabilities{}, device.ErrNotOpen
	}
	sizes := frameSizes(d.cam.GetSupportedFrameSizes(d.format))
	caps := device.Capabilities{
		Preview:           sizes,
		Picture:           sizes,
		SensorOrientation: d.sensor,
		Facing:            d.facing,
	}
	if _, ok := d.cam.GetControls()[cidFocusAuto]; ok {
		caps.FocusModes = []string{device.FocusContinuousPicture, device.FocusFixed}
	}
	return caps, nil
}

// Configure sets the image format to the preview size. The picture size is
// the same stream, so only the preview size is applied.
func (d *Driver) Configure(p device.Parameters) error {
	if d.cam == nil {
		return device.ErrNotOpen
	}
	_, w, h, err := d.cam.SetImageFormat(d.format, uint32(p.Preview.Width), uint32(p.Preview.Height))
	if err != nil {
		return fmt.Errorf("could not set image format: %w", err)
	}
	if int(w) != p.Preview.Width || int(h) != p.Preview.Height {
		d.log.Warning("device adjusted image size", "want", p.Preview.String(), "width", w, "height", h)
	}

	controls := d.cam.GetControls()
	if _, ok := controls[cidFocusAuto]; ok && p.FocusMode != "" {
		var v int32
		if p.FocusMode == device.FocusContinuousPicture {
			v = 1
		}
		err = d.cam.SetControl(cidFocusAuto, v)
		if err != nil {
			return fmt.Errorf("could not set focus: %w", err)
		}
	}
	if _, ok := controls[cidRotate]; ok {
		err = d.cam.SetControl(cidRotate, int32(p.Rotation))
		if err != nil {
			return fmt.Errorf("could not set rotation: %w", err)
		}
	}
	return nil
}

func (d *Driver) Close() error {
	if d.cam == nil {
		return nil
	}
	err := d.cam.Close()
	d.cam = nil
	return err
}
