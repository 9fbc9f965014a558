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

// Package v4l2 provides a device.Driver for Video4Linux2 cameras.
//
// A V4L2 device has a single stream, so the preview and picture sizes are
// both the frame sizes the device supports for the selected pixel format.
// Stepwise frame size ranges are reduced to the common sizes they contain.
package v4l2

import (
	"fmt"

	"github.com/blackjack/webcam"

	"github.com/ausocean/cameraview/resolution"
)

// commonSizes are tried against stepwise frame size ranges.
var commonSizes = []resolution.Size{
	{Width: 160, Height: 120},
	{Width: 320, Height: 240},
	{Width: 352, Height: 288},
	{Width: 640, Height: 360},
	{Width: 640, Height: 480},
	{Width: 704, Height: 576},
	{Width: 800, Height: 600},
	{Width: 1024, Height: 576},
	{Width: 1024, Height: 768},
	{Width: 1280, Height: 720},
	{Width: 1280, Height: 960},
	{Width: 1280, Height: 1024},
	{Width: 1600, Height: 1200},
	{Width: 1920, Height: 1080},
	{Width: 2048, Height: 1536},
	{Width: 2592, Height: 1944},
	{Width: 3840, Height: 2160},
}

// FourCC returns the pixel format for a four character code such as
// "MJPG" or "YUYV".
func FourCC(code string) (webcam.PixelFormat, error) {
	if len(code) != 4 {
		return 0, fmt.Errorf("invalid fourcc %q: %w", code, resolution.ErrInvalidArgument)
	}
	return webcam.PixelFormat(uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24), nil
}

// frameSizes converts V4L2 frame sizes to sizes.
func frameSizes(frames []webcam.FrameSize) []resolution.Size {
	var sizes []resolution.Size
	for _, f := range frames {
		if f.StepWidth == 0 && f.StepHeight == 0 {
			sizes = append(sizes, resolution.Size{Width: int(f.MaxWidth), Height: int(f.MaxHeight)})
			continue
		}
		for _, s := range commonSizes {
			if inRange(uint32(s.Width), f.MinWidth, f.MaxWidth, f.StepWidth) &&
				inRange(uint32(s.Height), f.MinHeight, f.MaxHeight, f.StepHeight) {
				sizes = append(sizes, s)
			}
		}
	}
	return sizes
}

func inRange(v, min, max, step uint32) bool {
	if v < min || v > max {
		return false
	}
	if step <= 1 {
		return true
	}
	return (v-min)%step == 0
}
