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
	"fmt"
	"strconv"
	"strings"
)

// Size is a frame size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewSize returns a Size, or ErrInvalidArgument if either dimension is
// not positive.
func NewSize(w, h int) (Size, error) {
	if w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, w, h)
	}
	return Size{Width: w, Height: h}, nil
}

// ParseSize parses a size of the form "WxH", e.g. "640x480".
func ParseSize(s string) (Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: malformed size %q", ErrInvalidArgument, s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Size{}, fmt.Errorf("%w: malformed size %q", ErrInvalidArgument, s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Size{}, fmt.Errorf("%w: malformed size %q", ErrInvalidArgument, s)
	}
	return NewSize(w, h)
}

// Area returns the number of pixels in a frame of this size.
func (s Size) Area() int { return s.Width * s.Height }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Ratio returns the reduced aspect ratio of s.
func (s Size) Ratio() (AspectRatio, error) {
	return NewAspectRatio(s.Width, s.Height)
}

func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Compare orders sizes by area, breaking ties by width. It returns a
// negative number when a sorts before b, zero when they are equal and a
// positive number otherwise.
func Compare(a, b Size) int {
	if d := a.Area() - b.Area(); d != 0 {
		return sign(d)
	}
	return sign(a.Width - b.Width)
}

// Less reports whether s sorts before o. See Compare.
func (s Size) Less(o Size) bool { return Compare(s, o) < 0 }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
