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

	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/utils/logging"
)

// Surface is the measured size of the display surface the preview is
// drawn on, in its own upright coordinates.
type Surface struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is a negotiated camera configuration.
type Result struct {
	Ratio    AspectRatio `json:"ratio"`
	Preview  Size        `json:"preview"`
	Picture  Size        `json:"picture"`
	Strategy Strategy    `json:"-"` // The policy tier that chose Ratio.
}

func (r Result) String() string {
	return fmt.Sprintf("ratio: %s, preview: %s, picture: %s, strategy: %s", r.Ratio, r.Preview, r.Picture, r.Strategy)
}

// Option is a functional option supplied to NewNegotiator.
type Option func(*Negotiator) error

// WithPolicy sets the ratio selection policy. The default is DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(n *Negotiator) error {
		err := p.validate()
		if err != nil {
			return err
		}
		n.policy = p
		return nil
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(l logging.Logger) Option {
	return func(n *Negotiator) error {
		n.log = l
		return nil
	}
}

// Negotiator picks an aspect ratio and a preview/picture size pair from a
// preview and a picture catalog. It holds no state between calls.
type Negotiator struct {
	policy Policy
	log    logging.Logger // Optional.
}

// NewNegotiator returns a Negotiator with the given options applied.
func NewNegotiator(options ...Option) (*Negotiator, error) {
	n := &Negotiator{policy: DefaultPolicy}
	for i, opt := range options {
		err := opt(n)
		if err != nil {
			return nil, fmt.Errorf("could not apply option # %d: %w", i, err)
		}
	}
	return n, nil
}

var defaultNegotiator = &Negotiator{policy: DefaultPolicy}

// Negotiate negotiates using DefaultPolicy. See Negotiator.Negotiate.
func Negotiate(requested AspectRatio, preview, picture *SizeMap, surface *Surface, displayOrientation int) (Result, error) {
	return defaultNegotiator.Negotiate(requested, preview, picture, surface, displayOrientation)
}

// Negotiate chooses the aspect ratio with the policy, then the largest
// picture size and the optimal preview size for that ratio. A nil surface
// means the display surface has not been measured yet.
//
// ErrNoSupportedConfiguration is returned if no tier of the policy finds a
// ratio supported by both catalogs.
func (n *Negotiator) Negotiate(requested AspectRatio, preview, picture *SizeMap, surface *Surface, displayOrientation int) (Result, error) {
	if requested.IsZero() {
		return Result{}, fmt.Errorf("%w: no aspect ratio requested", ErrInvalidArgument)
	}
	if preview == nil || picture == nil {
		return Result{}, fmt.Errorf("%w: nil size catalog", ErrInvalidArgument)
	}
	if surface != nil && (surface.Width <= 0 || surface.Height <= 0) {
		return Result{}, fmt.Errorf("%w: surface %dx%d", ErrInvalidArgument, surface.Width, surface.Height)
	}

	ratio, strategy, err := n.chooseRatio(requested, preview, picture)
	if err != nil {
		return Result{}, err
	}

	previewSizes, _ := preview.Sizes(ratio)
	pictureSizes, _ := picture.Sizes(ratio)
	res := Result{
		Ratio:    ratio,
		Preview:  OptimalSize(previewSizes, surface, displayOrientation),
		Picture:  pictureSizes[len(pictureSizes)-1],
		Strategy: strategy,
	}
	n.debug("negotiated camera configuration", "requested", requested.String(), "result", res.String())
	return res, nil
}

// chooseRatio evaluates the policy tiers in order.
func (n *Negotiator) chooseRatio(requested AspectRatio, preview, picture *SizeMap) (AspectRatio, Strategy, error) {
	for _, s := range n.policy {
		r, ok := s.choose(requested, preview, picture)
		if !ok {
			continue
		}
		if r != requested {
			n.debug("requested aspect ratio substituted", "requested", requested.String(), "ratio", r.String(), "strategy", s.String())
		}
		return r, s, nil
	}
	return AspectRatio{}, Strategy{}, fmt.Errorf("%w (preview: %s, picture: %s)", ErrNoSupportedConfiguration, preview, picture)
}

func (n *Negotiator) debug(msg string, args ...interface{}) {
	if n.log == nil {
		return
	}
	n.log.Debug(msg, args...)
}

// OptimalSize returns the smallest of sizes that covers the surface. sizes
// must be in ascending order. Camera sizes are landscape relative, so the
// surface is rotated for landscape display orientations before comparing.
// If the surface is nil the smallest size is returned, and if no size
// covers the surface the largest is returned. OptimalSize returns the zero
// Size if sizes is empty.
func OptimalSize(sizes []Size, surface *Surface, displayOrientation int) Size {
	if len(sizes) == 0 {
		return Size{}
	}
	if surface == nil {
		return sizes[0]
	}

	w, h := surface.Width, surface.Height
	if orientation.IsLandscape(displayOrientation) {
		w, h = h, w
	}
	for _, s := range sizes {
		if s.Width >= w && s.Height >= h {
			return s
		}
	}
	return sizes[len(sizes)-1]
}
