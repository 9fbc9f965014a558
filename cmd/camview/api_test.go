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

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	camconfig "github.com/ausocean/cameraview/config"
	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/cameraview/system"
	"github.com/ausocean/utils/logging"
)

var testCameras = []device.Capabilities{
	{
		Preview:           []resolution.Size{{Width: 320, Height: 240}, {Width: 640, Height: 480}, {Width: 1280, Height: 960}, {Width: 1280, Height: 720}},
		Picture:           []resolution.Size{{Width: 2592, Height: 1944}, {Width: 1920, Height: 1080}},
		SensorOrientation: 90,
		Facing:            orientation.Back,
		FlashModes:        []string{"off", "torch"},
	},
	{
		Preview:           []resolution.Size{{Width: 640, Height: 480}, {Width: 1280, Height: 720}},
		Picture:           []resolution.Size{{Width: 1280, Height: 720}},
		SensorOrientation: 270,
		Facing:            orientation.Front,
	},
}

// newTestHost returns a started host using a static driver, with its
// event queue running until the test ends.
func newTestHost(t *testing.T) *host {
	t.Helper()
	l := (*logging.TestLogger)(t)
	sys, err := system.NewCameraSystem("test", device.NewStaticDriver(testCameras...), system.WithCameraDefaults(), system.WithSurface(600, 400))
	require.NoError(t, err)
	ctrl, err := sys.NewController(l)
	require.NoError(t, err)

	h := &host{sys: sys, ctrl: ctrl, q: device.NewQueue(queueSize, l), log: l}
	h.q.Subscribe(ctrl.HandleEvent)
	h.q.Subscribe(h.record)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.q.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.NoError(t, h.q.Publish(ctx, device.StartEvent{}))
	return h
}

func doRequest(t *testing.T, h *host, method, target string, v any) int {
	t.Helper()
	app := newApp(h)
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if v != nil {
		require.NoError(t, json.Unmarshal(body, v), string(body))
	}
	return resp.StatusCode
}

// stateRequest decodes the reply into a fresh stateResponse so that fields
// omitted from the body read as zero.
func stateRequest(t *testing.T, h *host, method, target string) (stateResponse, int) {
	t.Helper()
	var state stateResponse
	code := doRequest(t, h, method, target, &state)
	return state, code
}

func TestStateHandler(t *testing.T) {
	h := newTestHost(t)

	var got stateResponse
	code := doRequest(t, h, http.MethodGet, "/api/v1/state", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, device.StateOpen, got.State)
	assert.Equal(t, "back", got.Facing)
	assert.Equal(t, "4:3", got.Ratio)
	require.NotNil(t, got.Preview)
	assert.Equal(t, resolution.Size{Width: 640, Height: 480}, *got.Preview)
	require.NotNil(t, got.Picture)
	assert.Equal(t, resolution.Size{Width: 2592, Height: 1944}, *got.Picture)
	require.NotNil(t, got.CaptureRotation)
	assert.Equal(t, 90, *got.CaptureRotation)
	assert.Equal(t, uint(2592), got.RevidWidth)
	assert.Equal(t, uint(1944), got.RevidHeight)
}

func TestRatioHandlers(t *testing.T) {
	h := newTestHost(t)

	var ratios []string
	code := doRequest(t, h, http.MethodGet, "/api/v1/ratios", &ratios)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"4:3", "16:9"}, ratios)

	var state stateResponse
	code = doRequest(t, h, http.MethodPut, "/api/v1/ratio?ratio=16:9", &state)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "16:9", state.Ratio)
	assert.Equal(t, resolution.Size{Width: 1280, Height: 720}, *state.Preview)
	assert.Equal(t, uint(1080), state.RevidHeight)

	var errResp errorResponse
	code = doRequest(t, h, http.MethodPut, "/api/v1/ratio?ratio=5:4", &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, errResp.Error, "5:4")

	code = doRequest(t, h, http.MethodPut, "/api/v1/ratio?ratio=wide", &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSurfaceAndOrientationHandlers(t *testing.T) {
	h := newTestHost(t)

	state, code := stateRequest(t, h, http.MethodPut, "/api/v1/orientation?degrees=90")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, state.Preview)
	assert.Equal(t, resolution.Size{Width: 1280, Height: 960}, *state.Preview)
	require.NotNil(t, state.DisplayRotation)
	assert.Equal(t, 0, *state.DisplayRotation)

	code = doRequest(t, h, http.MethodPut, "/api/v1/orientation?degrees=45", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	state, code = stateRequest(t, h, http.MethodPut, "/api/v1/surface?width=200&height=150")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, state.Preview)
	assert.Equal(t, resolution.Size{Width: 320, Height: 240}, *state.Preview)

	code = doRequest(t, h, http.MethodPut, "/api/v1/surface?width=0&height=150", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Landscape swaps the surface to 500x700, which only 1280x960 covers.
	state, code = stateRequest(t, h, http.MethodPut, "/api/v1/surface?width=700&height=500")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, state.Preview)
	assert.Equal(t, resolution.Size{Width: 1280, Height: 960}, *state.Preview)

	// Without a surface the smallest preview size is used.
	state, code = stateRequest(t, h, http.MethodDelete, "/api/v1/surface")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, state.Preview)
	assert.Equal(t, resolution.Size{Width: 320, Height: 240}, *state.Preview)
}

func TestNegotiateHandler(t *testing.T) {
	h := newTestHost(t)

	var got negotiateResponse
	code := doRequest(t, h, http.MethodGet, "/api/v1/negotiate?ratio=4:3&width=2000&height=2000", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "4:3", got.Ratio)
	assert.Equal(t, resolution.Size{Width: 1280, Height: 960}, got.Preview)
	assert.Equal(t, resolution.Size{Width: 2592, Height: 1944}, got.Picture)

	code = doRequest(t, h, http.MethodGet, "/api/v1/negotiate?ratio=5:4", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "4:3", got.Ratio)
	assert.Equal(t, "fixed(4:3)", got.Strategy)

	// The camera is not changed.
	state, err := h.ctrl.Result()
	require.NoError(t, err)
	assert.Equal(t, resolution.Size{Width: 640, Height: 480}, state.Preview)

	code = doRequest(t, h, http.MethodGet, "/api/v1/negotiate?width=-1&height=10", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	require.NoError(t, h.ctrl.Stop())
	code = doRequest(t, h, http.MethodGet, "/api/v1/negotiate", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestLifecycleHandlers(t *testing.T) {
	h := newTestHost(t)

	state, code := stateRequest(t, h, http.MethodPut, "/api/v1/facing?facing=front")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "front", state.Facing)
	assert.Equal(t, "16:9", state.Ratio)
	require.NotNil(t, state.Preview)

	code = doRequest(t, h, http.MethodPut, "/api/v1/facing?facing=up", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	state, code = stateRequest(t, h, http.MethodPut, "/api/v1/autofocus?enabled=false")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, state.AutoFocus)

	code = doRequest(t, h, http.MethodPut, "/api/v1/flash?mode=strobe", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	state, code = stateRequest(t, h, http.MethodPut, "/api/v1/stop")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, device.StateClosed, state.State)
	assert.Nil(t, state.Preview)
	assert.Nil(t, state.Picture)

	state, code = stateRequest(t, h, http.MethodPut, "/api/v1/start")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, device.StateOpen, state.State)
	require.NotNil(t, state.Preview)
}

func TestNewDriver(t *testing.T) {
	cfg := camconfig.Default()
	cfg.Capabilities = "testdata/missing.json"
	_, err := newDriver(cfg, (*logging.TestLogger)(t))
	assert.Error(t, err)
}
