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

import "fmt"

// Kind identifies how a Strategy picks an aspect ratio.
type Kind int

// Strategy kinds.
const (
	// Requested uses the ratio asked for by the caller.
	Requested Kind = iota

	// Fixed uses the ratio held by the Strategy.
	Fixed

	// AnyMutual uses the first ratio, in AspectRatio.Less order, that both
	// the preview and picture catalogs hold.
	AnyMutual
)

func (k Kind) String() string {
	switch k {
	case Requested:
		return "requested"
	case Fixed:
		return "fixed"
	case AnyMutual:
		return "anyMutual"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Strategy is one tier of a ratio selection Policy.
type Strategy struct {
	Kind  Kind
	Ratio AspectRatio // Only used by Fixed.
}

// RequestedRatio returns a Strategy that uses the caller's ratio.
func RequestedRatio() Strategy { return Strategy{Kind: Requested} }

// FixedRatio returns a Strategy that uses r.
func FixedRatio(r AspectRatio) Strategy { return Strategy{Kind: Fixed, Ratio: r} }

// AnyMutualRatio returns a Strategy that uses any ratio both catalogs hold.
func AnyMutualRatio() Strategy { return Strategy{Kind: AnyMutual} }

func (s Strategy) String() string {
	if s.Kind == Fixed {
		return "fixed(" + s.Ratio.String() + ")"
	}
	return s.Kind.String()
}

// choose returns the ratio this strategy selects, if it is supported by
// both catalogs.
func (s Strategy) choose(requested AspectRatio, preview, picture *SizeMap) (AspectRatio, bool) {
	switch s.Kind {
	case Requested:
		return requested, supported(requested, preview, picture)
	case Fixed:
		return s.Ratio, supported(s.Ratio, preview, picture)
	case AnyMutual:
		for _, r := range preview.Ratios() {
			if picture.Has(r) {
				return r, true
			}
		}
	}
	return AspectRatio{}, false
}

// Policy is an ordered list of strategies. The first strategy that finds a
// supported ratio wins.
type Policy []Strategy

// DefaultPolicy tries the requested ratio, then 4:3, then 16:9, then any
// ratio supported by both catalogs.
var DefaultPolicy = Policy{
	RequestedRatio(),
	FixedRatio(Ratio4x3),
	FixedRatio(Ratio16x9),
	AnyMutualRatio(),
}

// validate checks that the policy can be evaluated.
func (p Policy) validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty policy", ErrInvalidArgument)
	}
	for i, s := range p {
		switch s.Kind {
		case Requested, AnyMutual:
		case Fixed:
			if s.Ratio.IsZero() {
				return fmt.Errorf("%w: policy tier %d has no ratio", ErrInvalidArgument, i)
			}
		default:
			return fmt.Errorf("%w: policy tier %d has unknown kind %v", ErrInvalidArgument, i, s.Kind)
		}
	}
	return nil
}

func supported(r AspectRatio, preview, picture *SizeMap) bool {
	return !r.IsZero() && preview.Has(r) && picture.Has(r)
}

// SupportedRatios returns the ratios held by both catalogs, ordered by
// AspectRatio.Less. Neither catalog is modified.
func SupportedRatios(preview, picture *SizeMap) []AspectRatio {
	var ratios []AspectRatio
	for _, r := range preview.Ratios() {
		if picture.Has(r) {
			ratios = append(ratios, r)
		}
	}
	return ratios
}
