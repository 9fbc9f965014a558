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
	"slices"
	"strings"
)

// SizeMap is a catalog of sizes grouped by their reduced aspect ratio.
// Each bucket is kept in ascending order (see Compare) and a bucket only
// exists while it holds at least one size.
//
// SizeMap is not safe for concurrent use. It is expected to be rebuilt,
// using Clear then Add, whenever a device reports its capabilities.
type SizeMap struct {
	buckets map[AspectRatio][]Size
}

// NewSizeMap returns a SizeMap holding the given sizes.
func NewSizeMap(sizes ...Size) (*SizeMap, error) {
	m := &SizeMap{}
	for _, s := range sizes {
		err := m.Add(s)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add files s under its aspect ratio. Adding a size already present is a
// no-op.
func (m *SizeMap) Add(s Size) error {
	r, err := s.Ratio()
	if err != nil {
		return err
	}
	if m.buckets == nil {
		m.buckets = make(map[AspectRatio][]Size)
	}
	b := m.buckets[r]
	i, found := slices.BinarySearchFunc(b, s, Compare)
	if found {
		return nil
	}
	m.buckets[r] = slices.Insert(b, i, s)
	return nil
}

// Remove deletes the bucket for r and every size in it.
func (m *SizeMap) Remove(r AspectRatio) {
	delete(m.buckets, r)
}

// Ratios returns the aspect ratios that have at least one size, ordered
// by AspectRatio.Less.
func (m *SizeMap) Ratios() []AspectRatio {
	ratios := make([]AspectRatio, 0, len(m.buckets))
	for r := range m.buckets {
		ratios = append(ratios, r)
	}
	slices.SortFunc(ratios, func(a, b AspectRatio) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return ratios
}

// Sizes returns the sizes filed under r in ascending order. The second
// return value is false if there is no bucket for r, which callers should
// treat as r being unsupported.
func (m *SizeMap) Sizes(r AspectRatio) ([]Size, bool) {
	b, ok := m.buckets[r]
	if !ok {
		return nil, false
	}
	return slices.Clone(b), true
}

// Has reports whether at least one size is filed under r.
func (m *SizeMap) Has(r AspectRatio) bool {
	_, ok := m.buckets[r]
	return ok
}

// Len returns the number of buckets.
func (m *SizeMap) Len() int { return len(m.buckets) }

// Clear removes every bucket.
func (m *SizeMap) Clear() {
	m.buckets = nil
}

// String returns the catalog in the form "4:3[320x240 640x480] 16:9[...]".
func (m *SizeMap) String() string {
	var sb strings.Builder
	for i, r := range m.Ratios() {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
		sb.WriteByte('[')
		for j, s := range m.buckets[r] {
			if j != 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s.String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
