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
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ratio5x4  = MustAspectRatio(5, 4)
	ratio11x9 = MustAspectRatio(11, 9)
)

func TestNegotiatePolicy(t *testing.T) {
	tests := []struct {
		name      string
		requested AspectRatio
		preview   []Size
		picture   []Size
		want      AspectRatio
		strategy  Strategy
		wantErr   error
	}{
		{
			name:      "requested supported",
			requested: Ratio16x9,
			preview:   []Size{{640, 480}, {1280, 720}},
			picture:   []Size{{2592, 1944}, {1920, 1080}},
			want:      Ratio16x9,
			strategy:  RequestedRatio(),
		},
		{
			name:      "requested not mutual falls back to 4:3",
			requested: Ratio16x9,
			preview:   []Size{{640, 480}, {1280, 720}},
			picture:   []Size{{2592, 1944}},
			want:      Ratio4x3,
			strategy:  FixedRatio(Ratio4x3),
		},
		{
			name:      "requested absent falls back to 4:3",
			requested: ratio5x4,
			preview:   []Size{{640, 480}, {1280, 720}},
			picture:   []Size{{2592, 1944}, {1920, 1080}},
			want:      Ratio4x3,
			strategy:  FixedRatio(Ratio4x3),
		},
		{
			name:      "falls back to 16:9",
			requested: ratio5x4,
			preview:   []Size{{640, 480}, {1280, 720}},
			picture:   []Size{{1920, 1080}},
			want:      Ratio16x9,
			strategy:  FixedRatio(Ratio16x9),
		},
		{
			name:      "falls back to any mutual ratio",
			requested: Ratio4x3,
			preview:   []Size{{640, 480}, {1280, 1024}, {352, 288}},
			picture:   []Size{{2560, 2048}, {704, 576}},
			want:      ratio5x4,
			strategy:  AnyMutualRatio(),
		},
		{
			name:      "no mutual ratio",
			requested: Ratio4x3,
			preview:   []Size{{640, 480}, {1280, 720}},
			picture:   []Size{{1280, 1024}},
			wantErr:   ErrNoSupportedConfiguration,
		},
		{
			name:      "empty capabilities",
			requested: Ratio4x3,
			wantErr:   ErrNoSupportedConfiguration,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			preview := mustSizeMap(t, test.preview...)
			picture := mustSizeMap(t, test.picture...)
			got, err := Negotiate(test.requested, preview, picture, nil, 0)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got.Ratio)
			assert.Equal(t, test.strategy, got.Strategy)
		})
	}
}

func TestNegotiateSizes(t *testing.T) {
	preview := mustSizeMap(t,
		Size{320, 240}, Size{640, 480}, Size{1280, 960},
		Size{1280, 720}, Size{1920, 1080},
	)
	picture := mustSizeMap(t,
		Size{640, 480}, Size{2592, 1944}, Size{1600, 1200},
		Size{1920, 1080},
	)

	tests := []struct {
		name        string
		requested   AspectRatio
		surface     *Surface
		orientation int
		wantPreview Size
		wantPicture Size
	}{
		{
			name:        "unmeasured surface gives smallest preview",
			requested:   Ratio4x3,
			wantPreview: Size{320, 240},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "exact cover in portrait",
			requested:   Ratio4x3,
			surface:     &Surface{640, 480},
			wantPreview: Size{640, 480},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "oversized surface gives largest preview",
			requested:   Ratio4x3,
			surface:     &Surface{2000, 2000},
			wantPreview: Size{1280, 960},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "landscape swaps surface dimensions",
			requested:   Ratio4x3,
			surface:     &Surface{480, 700},
			orientation: 90,
			wantPreview: Size{1280, 960},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "portrait surface taller than wide",
			requested:   Ratio4x3,
			surface:     &Surface{480, 700},
			wantPreview: Size{1280, 960},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "landscape 270 swaps surface dimensions",
			requested:   Ratio4x3,
			surface:     &Surface{240, 320},
			orientation: 270,
			wantPreview: Size{320, 240},
			wantPicture: Size{2592, 1944},
		},
		{
			name:        "16:9 picture is largest in bucket",
			requested:   Ratio16x9,
			surface:     &Surface{1000, 600},
			wantPreview: Size{1280, 720},
			wantPicture: Size{1920, 1080},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Negotiate(test.requested, preview, picture, test.surface, test.orientation)
			require.NoError(t, err)
			assert.Equal(t, test.requested, got.Ratio)
			assert.Equal(t, test.wantPreview, got.Preview)
			assert.Equal(t, test.wantPicture, got.Picture)
		})
	}
}

func TestNegotiateIdempotent(t *testing.T) {
	preview := mustSizeMap(t, Size{320, 240}, Size{640, 480}, Size{1280, 720})
	picture := mustSizeMap(t, Size{1920, 1080}, Size{1280, 720})
	surface := &Surface{600, 400}

	first, err := Negotiate(Ratio4x3, preview, picture, surface, 0)
	require.NoError(t, err)
	second, err := Negotiate(Ratio4x3, preview, picture, surface, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Re-negotiating from the chosen ratio is a no-op.
	third, err := Negotiate(first.Ratio, preview, picture, surface, 0)
	require.NoError(t, err)
	assert.Equal(t, first.Ratio, third.Ratio)
	assert.Equal(t, first.Preview, third.Preview)
	assert.Equal(t, first.Picture, third.Picture)

	// Neither catalog is modified by negotiation.
	assert.Equal(t, "4:3[320x240 640x480] 16:9[1280x720]", preview.String())
	assert.Equal(t, "16:9[1280x720 1920x1080]", picture.String())
}

func TestNegotiateInvalid(t *testing.T) {
	preview := mustSizeMap(t, Size{640, 480})
	picture := mustSizeMap(t, Size{640, 480})

	_, err := Negotiate(AspectRatio{}, preview, picture, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Negotiate(Ratio4x3, nil, picture, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Negotiate(Ratio4x3, preview, picture, &Surface{0, 480}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNegotiatorOptions(t *testing.T) {
	preview := mustSizeMap(t, Size{640, 480}, Size{1280, 720})
	picture := mustSizeMap(t, Size{640, 480}, Size{1280, 720})

	// A policy that prefers 16:9 over the requested ratio.
	n, err := NewNegotiator(
		WithPolicy(Policy{FixedRatio(Ratio16x9), RequestedRatio()}),
		WithLogger((*logging.TestLogger)(t)),
	)
	require.NoError(t, err)
	got, err := n.Negotiate(Ratio4x3, preview, picture, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, Ratio16x9, got.Ratio)

	// A policy of only the requested ratio has no fallback.
	n, err = NewNegotiator(WithPolicy(Policy{RequestedRatio()}))
	require.NoError(t, err)
	_, err = n.Negotiate(ratio11x9, preview, picture, nil, 0)
	assert.True(t, errors.Is(err, ErrNoSupportedConfiguration), "unexpected error: %v", err)

	_, err = NewNegotiator(WithPolicy(nil))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewNegotiator(WithPolicy(Policy{{Kind: Fixed}}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSupportedRatios(t *testing.T) {
	preview := mustSizeMap(t, Size{640, 480}, Size{1280, 720}, Size{1280, 1024})
	picture := mustSizeMap(t, Size{2592, 1944}, Size{2560, 2048})
	assert.Equal(t, []AspectRatio{Ratio4x3, ratio5x4}, SupportedRatios(preview, picture))
	assert.Equal(t, 3, preview.Len())
}

func TestOptimalSize(t *testing.T) {
	sizes := []Size{{320, 240}, {640, 480}, {1280, 960}}

	assert.Equal(t, Size{640, 480}, OptimalSize(sizes, &Surface{640, 480}, 0))
	assert.Equal(t, Size{1280, 960}, OptimalSize(sizes, &Surface{2000, 2000}, 0))
	assert.Equal(t, Size{320, 240}, OptimalSize(sizes, nil, 0))
	assert.Equal(t, Size{640, 480}, OptimalSize(sizes, &Surface{321, 200}, 180))
	assert.Equal(t, Size{}, OptimalSize(nil, &Surface{1, 1}, 0))
}
