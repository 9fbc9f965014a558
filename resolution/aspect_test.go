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
)

func TestNewAspectRatio(t *testing.T) {
	tests := []struct {
		w, h    int
		wantX   int
		wantY   int
		wantErr bool
	}{
		{w: 4, h: 3, wantX: 4, wantY: 3},
		{w: 640, h: 480, wantX: 4, wantY: 3},
		{w: 1920, h: 1080, wantX: 16, wantY: 9},
		{w: 1280, h: 720, wantX: 16, wantY: 9},
		{w: 7, h: 7, wantX: 1, wantY: 1},
		{w: 0, h: 3, wantErr: true},
		{w: 4, h: -3, wantErr: true},
	}

	for _, test := range tests {
		got, err := NewAspectRatio(test.w, test.h)
		if (err != nil) != test.wantErr {
			t.Errorf("NewAspectRatio(%d, %d) error = %v, wantErr %v", test.w, test.h, err, test.wantErr)
			continue
		}
		if test.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewAspectRatio(%d, %d) error = %v, want ErrInvalidArgument", test.w, test.h, err)
			}
			continue
		}
		if got.X() != test.wantX || got.Y() != test.wantY {
			t.Errorf("NewAspectRatio(%d, %d) = %s, want %d:%d", test.w, test.h, got, test.wantX, test.wantY)
		}
	}
}

// TestReduction checks that scaling both terms by any k gives the same ratio.
func TestReduction(t *testing.T) {
	for a := 1; a <= 20; a++ {
		for b := 1; b <= 20; b++ {
			want := MustAspectRatio(a, b)
			for k := 1; k <= 12; k++ {
				got := MustAspectRatio(k*a, k*b)
				if got != want {
					t.Fatalf("ratio of %d:%d = %s, ratio of %d:%d = %s", a, b, want, k*a, k*b, got)
				}
				if gcd(got.X(), got.Y()) != 1 {
					t.Fatalf("ratio %s is not in lowest terms", got)
				}
			}
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		r    AspectRatio
		s    Size
		want bool
	}{
		{Ratio4x3, Size{640, 480}, true},
		{Ratio4x3, Size{1280, 960}, true},
		{Ratio4x3, Size{1280, 720}, false},
		{Ratio16x9, Size{1280, 720}, true},
		{Ratio16x9, Size{1366, 768}, false},
		{Ratio4x3.Inverse(), Size{480, 640}, true},
	}

	for _, test := range tests {
		if got := test.r.Matches(test.s); got != test.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", test.r, test.s, got, test.want)
		}
	}
}

func TestInverse(t *testing.T) {
	got := Ratio16x9.Inverse()
	if got.X() != 9 || got.Y() != 16 {
		t.Errorf("unexpected inverse: %s", got)
	}
	if got.Inverse() != Ratio16x9 {
		t.Errorf("inverse of inverse = %s, want %s", got.Inverse(), Ratio16x9)
	}
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    AspectRatio
		wantErr bool
	}{
		{in: "4:3", want: Ratio4x3},
		{in: " 16:9 ", want: Ratio16x9},
		{in: "32:18", want: Ratio16x9},
		{in: "16/9", wantErr: true},
		{in: "a:3", wantErr: true},
		{in: "4:b", wantErr: true},
		{in: "0:1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, test := range tests {
		got, err := ParseAspectRatio(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseAspectRatio(%q) error = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if !test.wantErr && got != test.want {
			t.Errorf("ParseAspectRatio(%q) = %s, want %s", test.in, got, test.want)
		}
	}
}

func TestAspectRatioText(t *testing.T) {
	b, err := Ratio16x9.MarshalText()
	if err != nil {
		t.Fatalf("could not marshal ratio: %v", err)
	}
	if string(b) != "16:9" {
		t.Errorf("unexpected text: %s", b)
	}

	var r AspectRatio
	err = r.UnmarshalText([]byte("8:6"))
	if err != nil {
		t.Fatalf("could not unmarshal ratio: %v", err)
	}
	if r != Ratio4x3 {
		t.Errorf("unexpected ratio: %s", r)
	}
}
