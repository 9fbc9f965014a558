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

package device

import (
	"fmt"
	"strings"

	"github.com/ausocean/utils/sliceutils"
)

// Focus modes reported by drivers.
const (
	FocusAuto              = "auto"
	FocusContinuousPicture = "continuous-picture"
	FocusContinuousVideo   = "continuous-video"
	FocusFixed             = "fixed"
	FocusInfinity          = "infinity"
	FocusMacro             = "macro"
)

// focusMode returns the focus mode to use given whether auto focus is
// wanted and the modes the camera supports. It returns the empty string if
// the camera reports no focus modes.
func focusMode(auto bool, modes []string) string {
	switch {
	case len(modes) == 0:
		return ""
	case auto && sliceutils.ContainsString(modes, FocusContinuousPicture):
		return FocusContinuousPicture
	case sliceutils.ContainsString(modes, FocusFixed):
		return FocusFixed
	case sliceutils.ContainsString(modes, FocusInfinity):
		return FocusInfinity
	}
	return modes[0]
}

// isContinuous reports whether the focus mode focuses continuously.
func isContinuous(mode string) bool {
	return strings.Contains(mode, "continuous")
}

// Flash is a flash setting.
type Flash int

// Flash settings.
const (
	FlashOff Flash = iota
	FlashOn
	FlashTorch
	FlashAuto
	FlashRedEye
)

var flashModes = map[Flash]string{
	FlashOff:    "off",
	FlashOn:     "on",
	FlashTorch:  "torch",
	FlashAuto:   "auto",
	FlashRedEye: "red-eye",
}

// Mode returns the driver flash mode name.
func (f Flash) Mode() string { return flashModes[f] }

func (f Flash) String() string {
	if m, ok := flashModes[f]; ok {
		return m
	}
	return fmt.Sprintf("Flash(%d)", int(f))
}

// ParseFlash parses a flash mode name such as "auto".
func ParseFlash(s string) (Flash, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, m := range flashModes {
		if m == s {
			return f, nil
		}
	}
	return FlashOff, fmt.Errorf("unknown flash mode: %q", s)
}

// flashMode returns the flash to use and its mode name, given the wanted
// flash, the current flash and the modes the camera supports. If the
// wanted flash is unsupported the current one is kept, unless that is
// also unsupported, in which case the flash is turned off. ok is false if
// nothing needs to change.
func flashMode(want, current Flash, modes []string) (f Flash, mode string, ok bool) {
	if sliceutils.ContainsString(modes, want.Mode()) {
		return want, want.Mode(), true
	}
	if !sliceutils.ContainsString(modes, current.Mode()) {
		return FlashOff, FlashOff.Mode(), true
	}
	return current, current.Mode(), false
}
