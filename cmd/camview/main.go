/*
DESCRIPTION
  camview runs a camera, keeping its preview and picture sizes negotiated
  against the configured aspect ratio, display surface and screen
  rotation. Settings are read from a JSON config file, which is watched
  for changes, and may be changed at run time through an HTTP API.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

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
	"flag"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ausocean/av/revid/config"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	camconfig "github.com/ausocean/cameraview/config"
	"github.com/ausocean/cameraview/device"
	"github.com/ausocean/cameraview/device/v4l2"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/cameraview/system"
	"github.com/ausocean/cameraview/system/camera"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logPath      = "/var/log/camview/camview.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// queueSize is the number of events that may wait to be handled.
const queueSize = 8

// host ties the camera controller to the outside world.
type host struct {
	mu    sync.Mutex
	sys   *system.CameraSystem
	ctrl  *device.Controller
	q     *device.Queue
	log   logging.Logger
	revid config.Config
}

func main() {
	configPath := flag.String("config", camconfig.DefaultPath, "Path of the config file.")
	logFile := flag.String("log", logPath, "Path of the log file.")
	httpAddr := flag.String("http", "", "HTTP API listen address, overriding the config file.")
	flag.Parse()

	if v := os.Getenv("PORT"); v != "" && *httpAddr == "" {
		*httpAddr = ":" + v
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   *logFile,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logging.Info, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cfg, err := camconfig.Load(*configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warning("no config file, using defaults", "path", *configPath)
		cfg = camconfig.Default()
	case err != nil:
		log.Fatal("could not load config", "error", err)
	}
	cfg.ApplyLogging(log)
	log.Info("config loaded", "config", cfg.String())
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	h, err := newHost(cfg, log)
	if err != nil {
		log.Fatal("could not create host", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := h.q.Run(ctx)
		log.Debug("event queue stopped", "error", err)
	}()

	err = h.q.Publish(ctx, device.StartEvent{})
	if err != nil {
		log.Error("could not start camera", "error", err)
	}

	// Set up a file watcher to watch the config file. This allows updates
	// to the camera settings while the service is running.
	stopWatch, err := camconfig.Watch(*configPath, func() { h.reload(ctx, *configPath, log) }, log)
	if err != nil {
		log.Warning("could not watch config file", "error", err)
	} else {
		defer stopWatch()
	}

	if cfg.HTTPAddr != "" {
		app := newApp(h)
		go func() {
			log.Info("listening", "addr", cfg.HTTPAddr)
			err := app.Listen(cfg.HTTPAddr)
			if err != nil {
				log.Error("http server stopped", "error", err)
			}
		}()
		defer app.Shutdown()
	}

	<-ctx.Done()
	log.Info("shutting down")
	err = h.ctrl.Stop()
	if err != nil {
		log.Error("could not stop camera", "error", err)
	}
}

// newHost creates the driver, camera system, controller and event queue
// described by cfg.
func newHost(cfg camconfig.Config, log logging.Logger) (*host, error) {
	drv, err := newDriver(cfg, log)
	if err != nil {
		return nil, errors.Wrap(err, "could not create driver")
	}

	sys, err := system.NewCameraSystem(
		"camview",
		drv,
		system.WithCameraDefaults(),
		system.WithVariables(cfg.Variables()...),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create camera system")
	}

	ctrl, err := sys.NewController(log)
	if err != nil {
		return nil, errors.Wrap(err, "could not create controller")
	}

	h := &host{sys: sys, ctrl: ctrl, q: device.NewQueue(queueSize, log), log: log}
	h.q.Subscribe(ctrl.HandleEvent)
	h.q.Subscribe(h.record)
	return h, nil
}

// newDriver returns a static driver if a capabilities file is configured,
// and a V4L2 driver otherwise.
func newDriver(cfg camconfig.Config, log logging.Logger) (device.Driver, error) {
	if cfg.Capabilities != "" {
		cams, err := cfg.LoadCapabilities()
		if err != nil {
			return nil, err
		}
		return device.NewStaticDriver(cams...), nil
	}
	return v4l2.New(cfg.Device, cfg.Format, cfg.FacingValue(), cfg.SensorOrientation, log)
}

// record keeps the revid capture settings in step with the negotiated
// configuration. It is subscribed after the controller, so sees the
// result of each event.
func (h *host) record(e device.Event) error {
	res, err := h.ctrl.Result()
	if err != nil {
		return nil
	}
	_, capture, err := h.ctrl.Rotations()
	if err != nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	err = camera.RevidConfig(&h.revid, res, capture)
	if err != nil {
		return errors.Wrap(err, "could not update revid config")
	}
	h.sys.SetResult(res, capture)
	h.log.Debug("revid capture settings", "event", e.String(), "width", h.revid.Width, "height", h.revid.Height, "rotation", h.revid.Rotation)
	return nil
}

// revidConfig returns a copy of the revid capture settings.
func (h *host) revidConfig() config.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revid
}

// reload is called by the file watcher. The logging settings are applied
// directly and the camera settings are published as events.
func (h *host) reload(ctx context.Context, path string, log *logging.JSONLogger) {
	cfg, err := camconfig.Load(path)
	if err != nil {
		log.Error("could not load config", "error", err)
		return
	}
	cfg.ApplyLogging(log)
	log.Info("config reloaded", "config", cfg.String())

	ratio, _ := cfg.Ratio()
	flash, _ := device.ParseFlash(cfg.Flash)
	events := []device.Event{
		device.FacingEvent{Facing: cfg.FacingValue()},
		device.RatioEvent{Ratio: ratio},
		device.RotationEvent{Degrees: cfg.DisplayOrientation},
		device.AutoFocusEvent{AutoFocus: *cfg.AutoFocus},
		device.FlashEvent{Flash: flash},
	}
	if cfg.SurfaceWidth > 0 {
		events = append(events, device.SurfaceEvent{Width: cfg.SurfaceWidth, Height: cfg.SurfaceHeight})
	}
	for _, e := range events {
		err = h.q.Publish(ctx, e)
		if errors.Is(err, resolution.UnsupportedRatioError{}) {
			log.Warning("configured aspect ratio not supported", "ratio", ratio.String())
			continue
		}
		if err != nil {
			log.Error("could not apply config", "event", e.String(), "error", err)
		}
	}
}
