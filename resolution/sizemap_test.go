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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSizeMap(t *testing.T, sizes ...Size) *SizeMap {
	t.Helper()
	m, err := NewSizeMap(sizes...)
	require.NoError(t, err)
	return m
}

func TestSizeMapAdd(t *testing.T) {
	sizes := []Size{
		{1280, 960}, {320, 240}, {640, 480},
		{1920, 1080}, {1280, 720},
		{1366, 768},
		{352, 288},
	}
	m := mustSizeMap(t, sizes...)

	// Every size lives in the bucket for its own ratio and nowhere else.
	for _, s := range sizes {
		r, err := s.Ratio()
		require.NoError(t, err)
		for _, other := range m.Ratios() {
			bucket, ok := m.Sizes(other)
			require.True(t, ok)
			if other == r {
				assert.Contains(t, bucket, s)
			} else {
				assert.NotContains(t, bucket, s)
			}
		}
	}

	got, ok := m.Sizes(Ratio4x3)
	require.True(t, ok)
	assert.Equal(t, []Size{{320, 240}, {640, 480}, {1280, 960}}, got)

	got, ok = m.Sizes(Ratio16x9)
	require.True(t, ok)
	assert.Equal(t, []Size{{1280, 720}, {1920, 1080}}, got)

	assert.Equal(t, 4, m.Len())
}

func TestSizeMapAddDuplicate(t *testing.T) {
	m := mustSizeMap(t, Size{640, 480}, Size{640, 480}, Size{320, 240})
	got, ok := m.Sizes(Ratio4x3)
	require.True(t, ok)
	assert.Equal(t, []Size{{320, 240}, {640, 480}}, got)
}

func TestSizeMapAddInvalid(t *testing.T) {
	var m SizeMap
	err := m.Add(Size{0, 480})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "unexpected error: %v", err)
	assert.Equal(t, 0, m.Len())
}

func TestSizeMapRemove(t *testing.T) {
	m := mustSizeMap(t, Size{640, 480}, Size{1280, 720}, Size{1920, 1080})

	m.Remove(Ratio16x9)
	assert.NotContains(t, m.Ratios(), Ratio16x9)
	_, ok := m.Sizes(Ratio16x9)
	assert.False(t, ok)

	// Other buckets are untouched.
	got, ok := m.Sizes(Ratio4x3)
	require.True(t, ok)
	assert.Equal(t, []Size{{640, 480}}, got)

	// Removing an absent ratio is a no-op.
	m.Remove(MustAspectRatio(5, 4))
	assert.Equal(t, []AspectRatio{Ratio4x3}, m.Ratios())
}

func TestSizeMapClear(t *testing.T) {
	m := mustSizeMap(t, Size{640, 480}, Size{1280, 720})
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Ratios())
	assert.False(t, m.Has(Ratio4x3))

	// The map is usable after being cleared.
	require.NoError(t, m.Add(Size{1280, 720}))
	assert.Equal(t, []AspectRatio{Ratio16x9}, m.Ratios())
}

func TestSizeMapSizesIsCopy(t *testing.T) {
	m := mustSizeMap(t, Size{640, 480}, Size{320, 240})
	got, _ := m.Sizes(Ratio4x3)
	got[0] = Size{1, 1}
	again, _ := m.Sizes(Ratio4x3)
	assert.Equal(t, Size{320, 240}, again[0])
}

func TestSizeMapRatiosOrder(t *testing.T) {
	m := mustSizeMap(t, Size{1920, 1080}, Size{640, 480}, Size{1280, 1024}, Size{352, 288}, Size{480, 640})
	want := []AspectRatio{MustAspectRatio(3, 4), Ratio4x3, MustAspectRatio(5, 4), MustAspectRatio(11, 9), Ratio16x9}
	assert.Equal(t, want, m.Ratios())
}

func TestSizeMapString(t *testing.T) {
	m := mustSizeMap(t, Size{1280, 720}, Size{640, 480}, Size{320, 240})
	assert.Equal(t, "4:3[320x240 640x480] 16:9[1280x720]", m.String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Size
		want int
	}{
		{Size{320, 240}, Size{640, 480}, -1},
		{Size{640, 480}, Size{320, 240}, 1},
		{Size{640, 480}, Size{640, 480}, 0},
		{Size{480, 640}, Size{640, 480}, -1}, // Same area, narrower first.
		{Size{800, 600}, Size{1024, 576}, -1},
	}

	for _, test := range tests {
		if got := Compare(test.a, test.b); got != test.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, Size{1920, 1080}, got)

	got, err = ParseSize(" 640X480 ")
	require.NoError(t, err)
	assert.Equal(t, Size{640, 480}, got)

	for _, in := range []string{"1920", "x1080", "0x480", "abcxdef"} {
		_, err := ParseSize(in)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", in)
	}
}
