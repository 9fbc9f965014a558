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
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
)

// stateResponse is the body of a state request.
type stateResponse struct {
	State           string           `json:"state"`
	Session         string           `json:"session,omitempty"`
	Facing          string           `json:"facing"`
	Ratio           string           `json:"ratio"`
	Preview         *resolution.Size `json:"preview,omitempty"`
	Picture         *resolution.Size `json:"picture,omitempty"`
	Strategy        string           `json:"strategy,omitempty"`
	DisplayRotation *int             `json:"displayRotation,omitempty"`
	CaptureRotation *int             `json:"captureRotation,omitempty"`
	AutoFocus       bool             `json:"autoFocus"`
	Flash           string           `json:"flash"`
	RevidWidth      uint             `json:"revidWidth,omitempty"`
	RevidHeight     uint             `json:"revidHeight,omitempty"`
}

// negotiateResponse is the body of a negotiate request.
type negotiateResponse struct {
	Ratio    string          `json:"ratio"`
	Preview  resolution.Size `json:"preview"`
	Picture  resolution.Size `json:"picture"`
	Strategy string          `json:"strategy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newApp(h *host) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler, DisableStartupMessage: true})

	// Recover from panics.
	app.Use(recover.New())

	registerAPIRoutes(app, h)
	return app
}

func registerAPIRoutes(app *fiber.App, h *host) {
	v1 := app.Group("/api/v1")

	v1.Get("/state", h.stateHandler).
		Get("/ratios", h.ratiosHandler).
		Get("/negotiate", h.negotiateHandler)

	v1.Put("/start", h.eventHandler(func(*fiber.Ctx) (device.Event, error) { return device.StartEvent{}, nil })).
		Put("/stop", h.eventHandler(func(*fiber.Ctx) (device.Event, error) { return device.StopEvent{}, nil })).
		Put("/ratio", h.eventHandler(ratioEvent)).
		Put("/surface", h.eventHandler(surfaceEvent)).
		Delete("/surface", h.eventHandler(func(*fiber.Ctx) (device.Event, error) { return device.SurfaceEvent{}, nil })).
		Put("/orientation", h.eventHandler(rotationEvent)).
		Put("/facing", h.eventHandler(facingEvent)).
		Put("/autofocus", h.eventHandler(autoFocusEvent)).
		Put("/flash", h.eventHandler(flashEvent))
}

// errorHandler writes errors as JSON with a status code that reflects the
// kind of error.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, resolution.ErrInvalidArgument):
		code = fiber.StatusBadRequest
	case errors.Is(err, resolution.UnsupportedRatioError{}), errors.Is(err, device.ErrNotOpen), errors.Is(err, device.ErrNotConfigured):
		code = fiber.StatusConflict
	case errors.Is(err, resolution.ErrNoSupportedConfiguration):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, device.ErrNoCamera):
		code = fiber.StatusNotFound
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}

func (h *host) stateHandler(c *fiber.Ctx) error {
	resp := stateResponse{
		State:     h.ctrl.State(),
		Session:   h.ctrl.Session(),
		Facing:    h.ctrl.Facing().String(),
		Ratio:     h.ctrl.AspectRatio().String(),
		AutoFocus: h.ctrl.AutoFocus(),
		Flash:     h.ctrl.Flash().String(),
	}
	res, err := h.ctrl.Result()
	if err == nil {
		resp.Preview = &res.Preview
		resp.Picture = &res.Picture
		resp.Strategy = res.Strategy.String()
	}
	display, capture, err := h.ctrl.Rotations()
	if err == nil {
		resp.DisplayRotation = &display
		resp.CaptureRotation = &capture
	}
	revid := h.revidConfig()
	resp.RevidWidth = revid.Width
	resp.RevidHeight = revid.Height
	return c.JSON(resp)
}

func (h *host) ratiosHandler(c *fiber.Ctx) error {
	ratios := h.ctrl.SupportedAspectRatios()
	out := make([]string, 0, len(ratios))
	for _, r := range ratios {
		out = append(out, r.String())
	}
	return c.JSON(out)
}

// negotiateHandler negotiates over the open camera's capabilities without
// changing the camera. Parameters that are not given default to the
// controller's current settings.
func (h *host) negotiateHandler(c *fiber.Ctx) error {
	preview, picture, err := h.ctrl.Capabilities()
	if err != nil {
		return err
	}

	ratio := h.ctrl.AspectRatio()
	if s := c.Query("ratio"); s != "" {
		ratio, err = resolution.ParseAspectRatio(s)
		if err != nil {
			return err
		}
	}

	deg := h.ctrl.DisplayOrientation()
	if s := c.Query("orientation"); s != "" {
		deg, err = degrees(s)
		if err != nil {
			return err
		}
	}

	var surface *resolution.Surface
	if c.Query("width") != "" || c.Query("height") != "" {
		surface = &resolution.Surface{Width: c.QueryInt("width"), Height: c.QueryInt("height")}
	}

	res, err := resolution.Negotiate(ratio, preview, picture, surface, deg)
	if err != nil {
		return err
	}
	return c.JSON(negotiateResponse{
		Ratio:    res.Ratio.String(),
		Preview:  res.Preview,
		Picture:  res.Picture,
		Strategy: res.Strategy.String(),
	})
}

// eventHandler returns a handler that publishes the event parsed from the
// request and replies with the new state.
func (h *host) eventHandler(parse func(*fiber.Ctx) (device.Event, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := parse(c)
		if err != nil {
			return err
		}
		err = h.q.Publish(c.UserContext(), e)
		if err != nil {
			return err
		}
		return h.stateHandler(c)
	}
}

func ratioEvent(c *fiber.Ctx) (device.Event, error) {
	r, err := resolution.ParseAspectRatio(c.Query("ratio"))
	if err != nil {
		return nil, err
	}
	return device.RatioEvent{Ratio: r}, nil
}

func surfaceEvent(c *fiber.Ctx) (device.Event, error) {
	w, h := c.QueryInt("width"), c.QueryInt("height")
	if w <= 0 || h <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "width and height must be positive integers")
	}
	return device.SurfaceEvent{Width: w, Height: h}, nil
}

func rotationEvent(c *fiber.Ctx) (device.Event, error) {
	deg, err := degrees(c.Query("degrees"))
	if err != nil {
		return nil, err
	}
	return device.RotationEvent{Degrees: deg}, nil
}

func facingEvent(c *fiber.Ctx) (device.Event, error) {
	f, err := orientation.ParseFacing(c.Query("facing"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return device.FacingEvent{Facing: f}, nil
}

func autoFocusEvent(c *fiber.Ctx) (device.Event, error) {
	auto, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "enabled must be a boolean")
	}
	return device.AutoFocusEvent{AutoFocus: auto}, nil
}

func flashEvent(c *fiber.Ctx) (device.Event, error) {
	f, err := device.ParseFlash(c.Query("mode"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return device.FlashEvent{Flash: f}, nil
}

// degrees parses a screen rotation.
func degrees(s string) (int, error) {
	deg, err := strconv.Atoi(s)
	if err != nil || !orientation.Valid(deg) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "degrees must be one of 0, 90, 180 or 270")
	}
	return deg, nil
}
