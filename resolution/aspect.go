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

// Package resolution provides aspect ratio and size types, a catalog of
// supported sizes grouped by aspect ratio, and the negotiation of a
// preview/picture size pair from two such catalogs.
package resolution

import (
	"fmt"
	"strconv"
	"strings"
)

// Common aspect ratios.
var (
	Ratio4x3  = MustAspectRatio(4, 3)
	Ratio16x9 = MustAspectRatio(16, 9)
)

// AspectRatio is a width:height ratio held in lowest terms. The zero value
// is unset and is never a valid ratio.
type AspectRatio struct {
	x, y int
}

// NewAspectRatio returns the ratio w:h reduced to lowest terms.
func NewAspectRatio(w, h int) (AspectRatio, error) {
	if w <= 0 || h <= 0 {
		return AspectRatio{}, fmt.Errorf("%w: aspect ratio %d:%d", ErrInvalidArgument, w, h)
	}
	d := gcd(w, h)
	return AspectRatio{x: w / d, y: h / d}, nil
}

// MustAspectRatio is like NewAspectRatio but panics if w or h is not positive.
func MustAspectRatio(w, h int) AspectRatio {
	r, err := NewAspectRatio(w, h)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseAspectRatio parses a ratio of the form "x:y", e.g. "16:9".
func ParseAspectRatio(s string) (AspectRatio, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return AspectRatio{}, fmt.Errorf("%w: malformed aspect ratio %q", ErrInvalidArgument, s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return AspectRatio{}, fmt.Errorf("%w: malformed aspect ratio %q", ErrInvalidArgument, s)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return AspectRatio{}, fmt.Errorf("%w: malformed aspect ratio %q", ErrInvalidArgument, s)
	}
	return NewAspectRatio(x, y)
}

// X returns the width term of the ratio.
func (r AspectRatio) X() int { return r.x }

// Y returns the height term of the ratio.
func (r AspectRatio) Y() int { return r.y }

// IsZero reports whether r is the unset zero value.
func (r AspectRatio) IsZero() bool { return r.x == 0 || r.y == 0 }

// Matches reports whether s has exactly this aspect ratio. Cross
// multiplication keeps the comparison in integers.
func (r AspectRatio) Matches(s Size) bool {
	return s.Width*r.y == s.Height*r.x
}

// Inverse returns y:x.
func (r AspectRatio) Inverse() AspectRatio {
	return AspectRatio{x: r.y, y: r.x}
}

// Less orders ratios by their width term, then by their height term.
func (r AspectRatio) Less(o AspectRatio) bool {
	if r.x != o.x {
		return r.x < o.x
	}
	return r.y < o.y
}

func (r AspectRatio) String() string {
	return strconv.Itoa(r.x) + ":" + strconv.Itoa(r.y)
}

// MarshalText implements encoding.TextMarshaler.
func (r AspectRatio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *AspectRatio) UnmarshalText(b []byte) error {
	v, err := ParseAspectRatio(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
