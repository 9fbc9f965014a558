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
	"context"
	"errors"
	"fmt"

	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/utils/logging"
)

// Event is a request to change the camera or its environment.
type Event interface {
	fmt.Stringer
}

type StartEvent struct{}

func (e StartEvent) String() string { return "startEvent" }

type StopEvent struct{}

func (e StopEvent) String() string { return "stopEvent" }

// SurfaceEvent reports a new display surface size. A zero size means the
// surface was destroyed.
type SurfaceEvent struct{ Width, Height int }

func (e SurfaceEvent) String() string { return "surfaceEvent" }

// RotationEvent reports a new screen rotation in degrees.
type RotationEvent struct{ Degrees int }

func (e RotationEvent) String() string { return "rotationEvent" }

type RatioEvent struct{ Ratio resolution.AspectRatio }

func (e RatioEvent) String() string { return "ratioEvent" }

type FacingEvent struct{ Facing orientation.Facing }

func (e FacingEvent) String() string { return "facingEvent" }

type AutoFocusEvent struct{ AutoFocus bool }

func (e AutoFocusEvent) String() string { return "autoFocusEvent" }

type FlashEvent struct{ Flash Flash }

func (e FlashEvent) String() string { return "flashEvent" }

// HandleEvent applies e to the controller.
func (c *Controller) HandleEvent(e Event) error {
	switch e := e.(type) {
	case StartEvent:
		return c.Start()
	case StopEvent:
		return c.Stop()
	case SurfaceEvent:
		if e.Width == 0 && e.Height == 0 {
			return c.SurfaceDestroyed()
		}
		return c.SurfaceChanged(e.Width, e.Height)
	case RotationEvent:
		return c.SetDisplayOrientation(e.Degrees)
	case RatioEvent:
		_, err := c.SetAspectRatio(e.Ratio)
		return err
	case FacingEvent:
		return c.SetFacing(e.Facing)
	case AutoFocusEvent:
		return c.SetAutoFocus(e.AutoFocus)
	case FlashEvent:
		return c.SetFlash(e.Flash)
	default:
		return fmt.Errorf("unknown event type: %T", e)
	}
}

// Handler handles an event.
type Handler func(Event) error

// ErrQueueStopped is returned by Publish once the queue's Run has returned.
var ErrQueueStopped = errors.New("event queue stopped")

type request struct {
	event Event
	done  chan error
}

// Queue serialises events so that they are handled one at a time, in the
// order published, on the goroutine calling Run.
type Queue struct {
	handlers []Handler
	requests chan request
	stopped  chan struct{}
	log      logging.Logger
}

// NewQueue returns a Queue buffering up to size pending events.
func NewQueue(size int, l logging.Logger) *Queue {
	return &Queue{requests: make(chan request, size), stopped: make(chan struct{}), log: l}
}

// Subscribe adds a handler. Handlers are called in the order subscribed.
// Subscribe must not be called after Run.
func (q *Queue) Subscribe(h Handler) { q.handlers = append(q.handlers, h) }

// Run handles events until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	defer close(q.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-q.requests:
			r.done <- q.handle(r.event)
		}
	}
}

func (q *Queue) handle(e Event) error {
	q.log.Debug("handling event", "event", e.String())
	var errs []error
	for _, h := range q.handlers {
		err := h(e)
		if err != nil {
			q.log.Warning("error handling event", "event", e.String(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Publish queues e and waits until it has been handled, returning the
// handlers' errors.
func (q *Queue) Publish(ctx context.Context, e Event) error {
	r := request{event: e, done: make(chan error, 1)}
	select {
	case q.requests <- r:
	case <-q.stopped:
		return ErrQueueStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-r.done:
		return err
	case <-q.stopped:
		return ErrQueueStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
