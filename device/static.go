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
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/ausocean/cameraview/orientation"
)

// StaticDriver is a Driver whose cameras have fixed capabilities, such as
// those loaded from a file. It records the parameters applied to it.
type StaticDriver struct {
	mu      sync.Mutex
	cameras map[orientation.Facing]Capabilities
	open    bool
	facing  orientation.Facing
	opens   int
	applied []Parameters

	// Injected failures.
	OpenErr      error
	ConfigureErr error
}

// NewStaticDriver returns a StaticDriver with the given cameras. A later
// camera with the same facing replaces an earlier one.
func NewStaticDriver(cameras ...Capabilities) *StaticDriver {
	d := &StaticDriver{cameras: make(map[orientation.Facing]Capabilities)}
	for _, c := range cameras {
		d.cameras[c.Facing] = c
	}
	return d
}

// SetCapabilities replaces the camera with c's facing. An open camera
// keeps reporting its old capabilities until reopened.
func (d *StaticDriver) SetCapabilities(c Capabilities) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cameras[c.Facing] = c
}

func (d *StaticDriver) Open(facing orientation.Facing) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.OpenErr != nil {
		return d.OpenErr
	}
	if _, ok := d.cameras[facing]; !ok {
		return ErrNoCamera
	}
	d.open = true
	d.facing = facing
	d.opens++
	return nil
}

func (d *StaticDriver) Capabilities() (Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return Capabilities{}, ErrNotOpen
	}
	return d.cameras[d.facing], nil
}

func (d *StaticDriver) Configure(p Parameters) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	if d.ConfigureErr != nil {
		return d.ConfigureErr
	}
	d.applied = append(d.applied, p)
	return nil
}

func (d *StaticDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return nil
}

// IsOpen reports whether a camera is open.
func (d *StaticDriver) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Opens returns the number of successful Open calls.
func (d *StaticDriver) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens
}

// Applied returns the parameters applied so far, oldest first.
func (d *StaticDriver) Applied() []Parameters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.applied)
}

// ReadCapabilities decodes a JSON array of camera capabilities, such as a
// capabilities file for a StaticDriver.
func ReadCapabilities(r io.Reader) ([]Capabilities, error) {
	var caps []Capabilities
	err := json.NewDecoder(r).Decode(&caps)
	if err != nil {
		return nil, fmt.Errorf("could not decode capabilities: %w", err)
	}
	return caps, nil
}
