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
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/ausocean/cameraview/orientation"
	"github.com/ausocean/cameraview/resolution"
	"github.com/ausocean/utils/logging"
)

// Controller states.
const (
	StateClosed    = "closed"
	StateOpening   = "opening"
	StateOpen      = "open"
	StateAdjusting = "adjusting"
)

// Controller events.
const (
	eventOpen     = "open"
	eventOpened   = "opened"
	eventAdjust   = "adjust"
	eventAdjusted = "adjusted"
	eventClose    = "close"
)

// Option is a functional option for a Controller.
type Option func(*Controller) error

// WithNegotiator sets the negotiator used to pick sizes.
func WithNegotiator(n *resolution.Negotiator) Option {
	return func(c *Controller) error {
		if n == nil {
			return fmt.Errorf("nil negotiator: %w", resolution.ErrInvalidArgument)
		}
		c.neg = n
		return nil
	}
}

// WithFacing sets the facing of the camera opened by Start.
func WithFacing(f orientation.Facing) Option {
	return func(c *Controller) error {
		c.facing = f
		return nil
	}
}

// WithAspectRatio sets the initially requested aspect ratio.
func WithAspectRatio(r resolution.AspectRatio) Option {
	return func(c *Controller) error {
		if r.IsZero() {
			return fmt.Errorf("zero aspect ratio: %w", resolution.ErrInvalidArgument)
		}
		c.requested = r
		return nil
	}
}

// WithDisplayOrientation sets the initial screen rotation.
func WithDisplayOrientation(deg int) Option {
	return func(c *Controller) error {
		if !orientation.Valid(deg) {
			return fmt.Errorf("display orientation %d: %w", deg, resolution.ErrInvalidArgument)
		}
		c.screen = deg
		return nil
	}
}

// WithAutoFocus sets whether continuous auto focus is wanted.
func WithAutoFocus(auto bool) Option {
	return func(c *Controller) error {
		c.autoFocus = auto
		return nil
	}
}

// WithFlash sets the initial flash.
func WithFlash(f Flash) Option {
	return func(c *Controller) error {
		if _, ok := flashModes[f]; !ok {
			return fmt.Errorf("flash %d: %w", int(f), resolution.ErrInvalidArgument)
		}
		c.flash = f
		return nil
	}
}

// WithSurface sets the initial display surface size.
func WithSurface(width, height int) Option {
	return func(c *Controller) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("surface %dx%d: %w", width, height, resolution.ErrInvalidArgument)
		}
		c.surface = &resolution.Surface{Width: width, Height: height}
		return nil
	}
}

// Controller owns a camera Driver and keeps its parameters consistent with
// the requested aspect ratio, the display surface and the screen
// rotation. The zero value is not usable; use NewController.
type Controller struct {
	mu  sync.Mutex
	drv Driver
	fsm *fsm.FSM
	log logging.Logger
	neg *resolution.Negotiator

	// Settings, kept while closed.
	facing    orientation.Facing
	requested resolution.AspectRatio
	screen    int
	surface   *resolution.Surface
	autoFocus bool
	flash     Flash

	// Per open cycle.
	session string
	caps    Capabilities
	preview resolution.SizeMap
	picture resolution.SizeMap
	params  Parameters
	result  resolution.Result
	applied bool
}

// NewController returns a closed Controller for drv.
func NewController(drv Driver, l logging.Logger, options ...Option) (*Controller, error) {
	if drv == nil {
		return nil, fmt.Errorf("nil driver: %w", resolution.ErrInvalidArgument)
	}
	neg, err := resolution.NewNegotiator(resolution.WithLogger(l))
	if err != nil {
		return nil, fmt.Errorf("could not create negotiator: %w", err)
	}
	c := &Controller{
		drv:       drv,
		log:       l,
		neg:       neg,
		requested: resolution.Ratio4x3,
		autoFocus: true,
		flash:     FlashOff,
	}
	for i, opt := range options {
		err = opt(c)
		if err != nil {
			return nil, fmt.Errorf("could not apply option # %d: %w", i, err)
		}
	}

	c.fsm = fsm.NewFSM(
		StateClosed,
		fsm.Events{
			{Name: eventOpen, Src: []string{StateClosed}, Dst: StateOpening},
			{Name: eventOpened, Src: []string{StateOpening}, Dst: StateOpen},
			{Name: eventAdjust, Src: []string{StateOpen}, Dst: StateAdjusting},
			{Name: eventAdjusted, Src: []string{StateAdjusting}, Dst: StateOpen},
			{Name: eventClose, Src: []string{StateOpening, StateOpen, StateAdjusting}, Dst: StateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				c.log.Debug("camera state transition", "session", c.session, "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return c, nil
}

// State returns the current controller state.
func (c *Controller) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fsm.Current()
}

// IsOpen reports whether the camera is open.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen()
}

func (c *Controller) isOpen() bool {
	return !c.fsm.Is(StateClosed)
}

// Session returns the id of the current open cycle, or the empty string if
// the camera is closed.
func (c *Controller) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Start opens the camera, scans its capabilities and negotiates its
// parameters. Starting an open controller does nothing. If no
// configuration can be negotiated the camera is closed again and the
// error, which wraps resolution.ErrNoSupportedConfiguration, is returned.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start()
}

func (c *Controller) start() error {
	if c.isOpen() {
		if c.applied {
			return nil
		}
		return c.adjust()
	}
	err := c.event(eventOpen)
	if err != nil {
		return err
	}
	c.session = uuid.NewString()
	c.log.Info("opening camera", "session", c.session, "facing", c.facing)

	err = c.drv.Open(c.facing)
	if err != nil {
		c.reset()
		return fmt.Errorf("could not open %s camera: %w", c.facing, err)
	}

	err = c.scan()
	if err != nil {
		c.close()
		return err
	}

	err = c.event(eventOpened)
	if err != nil {
		c.close()
		return err
	}
	return c.adjust()
}

// scan rebuilds the size maps from the driver's capabilities.
func (c *Controller) scan() error {
	caps, err := c.drv.Capabilities()
	if err != nil {
		return fmt.Errorf("could not get camera capabilities: %w", err)
	}
	if caps.Facing != c.facing {
		c.log.Warning("camera reports unexpected facing", "session", c.session, "want", c.facing, "got", caps.Facing)
	}
	if !orientation.Valid(caps.SensorOrientation) {
		return fmt.Errorf("sensor orientation %d: %w", caps.SensorOrientation, resolution.ErrInvalidArgument)
	}

	c.preview.Clear()
	c.picture.Clear()
	for _, s := range caps.Preview {
		err = c.preview.Add(s)
		if err != nil {
			return fmt.Errorf("could not add preview size: %w", err)
		}
	}
	for _, s := range caps.Picture {
		err = c.picture.Add(s)
		if err != nil {
			return fmt.Errorf("could not add picture size: %w", err)
		}
	}
	c.caps = caps
	c.log.Debug("scanned camera capabilities", "session", c.session, "preview", c.preview.String(), "picture", c.picture.String(), "sensor", caps.SensorOrientation)
	return nil
}

// adjust negotiates and applies parameters. It closes the camera if
// negotiation fails. A driver error leaves the camera open.
func (c *Controller) adjust() error {
	err := c.event(eventAdjust)
	if err != nil {
		return err
	}

	res, err := c.neg.Negotiate(c.requested, &c.preview, &c.picture, c.surface, c.screen)
	if err != nil {
		c.log.Error("could not negotiate camera configuration", "session", c.session, "error", err)
		c.close()
		return err
	}

	p := c.params
	p.Preview = res.Preview
	p.Picture = res.Picture
	p.Rotation = orientation.CaptureRotation(c.caps.Facing, c.caps.SensorOrientation, c.screen)
	p.DisplayOrientation = orientation.DisplayRotation(c.caps.Facing, c.caps.SensorOrientation, c.screen)
	p.FocusMode = focusMode(c.autoFocus, c.caps.FocusModes)
	f, mode, ok := flashMode(c.flash, c.flash, c.caps.FlashModes)
	if ok {
		c.flash = f
		p.FlashMode = mode
	}

	err = c.configure(p)
	if err != nil {
		return err
	}
	c.result = res
	c.applied = true
	c.log.Info("camera configured", "session", c.session, "result", res.String(), "rotation", p.Rotation, "displayOrientation", p.DisplayOrientation)
	return nil
}

// configure applies p from the adjusting state and returns to open.
func (c *Controller) configure(p Parameters) error {
	err := c.drv.Configure(p)
	if err == nil {
		c.params = p
	} else {
		c.log.Error("could not configure camera", "session", c.session, "error", err)
		err = fmt.Errorf("could not configure camera: %w", err)
	}
	evErr := c.event(eventAdjusted)
	if err != nil {
		return err
	}
	return evErr
}

// reconfigure applies a focus or flash change to an open camera.
func (c *Controller) reconfigure(p Parameters) error {
	err := c.event(eventAdjust)
	if err != nil {
		return err
	}
	return c.configure(p)
}

// Stop closes the camera. Stopping a closed controller does nothing.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.close()
}

func (c *Controller) close() error {
	if !c.isOpen() {
		return nil
	}
	err := c.drv.Close()
	if err != nil {
		c.log.Warning("could not close camera", "session", c.session, "error", err)
		err = fmt.Errorf("could not close camera: %w", err)
	}
	c.log.Info("camera closed", "session", c.session)
	c.reset()
	return err
}

// reset returns the controller to closed and forgets the open cycle.
func (c *Controller) reset() {
	if c.isOpen() {
		evErr := c.event(eventClose)
		if evErr != nil {
			c.log.Error("could not close state machine", "error", evErr)
		}
	}
	c.session = ""
	c.caps = Capabilities{}
	c.preview.Clear()
	c.picture.Clear()
	c.params = Parameters{}
	c.result = resolution.Result{}
	c.applied = false
}

func (c *Controller) event(name string) error {
	from := c.fsm.Current()
	err := c.fsm.Event(name)
	if err != nil {
		return fmt.Errorf("could not handle %s event in state %s: %w", name, from, err)
	}
	return nil
}

// Facing returns the facing of the camera that Start opens.
func (c *Controller) Facing() orientation.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

// SetFacing selects the camera to use. If the facing changes while open,
// the camera is reopened and renegotiated.
func (c *Controller) SetFacing(f orientation.Facing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f != orientation.Back && f != orientation.Front {
		return fmt.Errorf("facing %d: %w", int(f), resolution.ErrInvalidArgument)
	}
	if f == c.facing {
		return nil
	}
	c.facing = f
	if !c.isOpen() {
		return nil
	}
	err := c.close()
	if err != nil {
		return err
	}
	return c.start()
}

// AspectRatio returns the ratio in effect, or the requested ratio if no
// configuration has been applied yet.
func (c *Controller) AspectRatio() resolution.AspectRatio {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.applied {
		return c.result.Ratio
	}
	return c.requested
}

// SetAspectRatio requests ratio r and reports whether anything changed.
// While closed, or before a configuration has been applied, r is
// remembered and applied by the next Start. An open camera whose last
// configuration failed is renegotiated with r. While open, a ratio that
// the preview sizes do not contain yields an UnsupportedRatioError with no
// fallback.
func (c *Controller) SetAspectRatio(r resolution.AspectRatio) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.IsZero() {
		return false, fmt.Errorf("zero aspect ratio: %w", resolution.ErrInvalidArgument)
	}
	if !c.isOpen() {
		c.requested = r
		return true, nil
	}
	if !c.applied {
		c.requested = r
		err := c.adjust()
		if err != nil {
			return false, err
		}
		return true, nil
	}
	if r == c.result.Ratio {
		c.requested = r
		return false, nil
	}
	if !c.preview.Has(r) {
		return false, resolution.UnsupportedRatioError{Ratio: r}
	}
	c.requested = r
	err := c.adjust()
	if err != nil {
		return false, err
	}
	return true, nil
}

// SupportedAspectRatios returns the ratios both the preview and picture
// sizes of the open camera contain, or nil if closed.
func (c *Controller) SupportedAspectRatios() []resolution.AspectRatio {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen() {
		return nil
	}
	return resolution.SupportedRatios(&c.preview, &c.picture)
}

// Capabilities returns the preview and picture size maps of the open
// camera.
func (c *Controller) Capabilities() (preview, picture *resolution.SizeMap, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen() {
		return nil, nil, ErrNotOpen
	}
	preview, err = resolution.NewSizeMap(c.caps.Preview...)
	if err != nil {
		return nil, nil, err
	}
	picture, err = resolution.NewSizeMap(c.caps.Picture...)
	if err != nil {
		return nil, nil, err
	}
	return preview, picture, nil
}

// SurfaceChanged records the display surface size and renegotiates if
// the camera is open.
func (c *Controller) SurfaceChanged(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface %dx%d: %w", width, height, resolution.ErrInvalidArgument)
	}
	s := &resolution.Surface{Width: width, Height: height}
	if c.surface != nil && *c.surface == *s {
		return nil
	}
	c.surface = s
	if !c.isOpen() {
		return nil
	}
	return c.adjust()
}

// SurfaceDestroyed forgets the display surface. Sizes negotiated after
// this are chosen as if the surface had not been measured.
func (c *Controller) SurfaceDestroyed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil
	}
	c.surface = nil
	if !c.isOpen() {
		return nil
	}
	return c.adjust()
}

// DisplayOrientation returns the screen rotation in degrees.
func (c *Controller) DisplayOrientation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// SetDisplayOrientation sets the screen rotation. When open the rotations
// are recomputed and the sizes renegotiated, since landscape swaps the
// surface dimensions.
func (c *Controller) SetDisplayOrientation(deg int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !orientation.Valid(deg) {
		return fmt.Errorf("display orientation %d: %w", deg, resolution.ErrInvalidArgument)
	}
	if deg == c.screen {
		return nil
	}
	c.screen = deg
	if !c.isOpen() {
		return nil
	}
	return c.adjust()
}

// notApplied returns the error reported when no configuration is in
// effect.
func (c *Controller) notApplied() error {
	if c.isOpen() {
		return ErrNotConfigured
	}
	return ErrNotOpen
}

// Rotations returns the display and capture rotations in effect.
func (c *Controller) Rotations() (display, capture int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applied {
		return 0, 0, c.notApplied()
	}
	return c.params.DisplayOrientation, c.params.Rotation, nil
}

// AutoFocus reports whether the camera focuses continuously. While closed
// it reports the wanted setting.
func (c *Controller) AutoFocus() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applied {
		return c.autoFocus
	}
	return isContinuous(c.params.FocusMode)
}

// SetAutoFocus sets whether continuous auto focus is wanted.
func (c *Controller) SetAutoFocus(auto bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if auto == c.autoFocus {
		return nil
	}
	c.autoFocus = auto
	if !c.applied {
		return nil
	}
	mode := focusMode(auto, c.caps.FocusModes)
	if mode == c.params.FocusMode {
		return nil
	}
	p := c.params
	p.FocusMode = mode
	return c.reconfigure(p)
}

// Flash returns the flash setting.
func (c *Controller) Flash() Flash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flash
}

// SetFlash sets the flash. If the open camera does not support f the
// current flash is kept, or turned off if that is not supported either.
func (c *Controller) SetFlash(f Flash) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := flashModes[f]; !ok {
		return fmt.Errorf("flash %d: %w", int(f), resolution.ErrInvalidArgument)
	}
	if f == c.flash {
		return nil
	}
	if !c.applied {
		c.flash = f
		return nil
	}
	nf, mode, ok := flashMode(f, c.flash, c.caps.FlashModes)
	if !ok {
		c.log.Debug("flash mode not supported", "session", c.session, "flash", f)
		return nil
	}
	c.flash = nf
	p := c.params
	p.FlashMode = mode
	return c.reconfigure(p)
}

// Result returns the configuration last applied to the open camera.
func (c *Controller) Result() (resolution.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applied {
		return resolution.Result{}, c.notApplied()
	}
	return c.result, nil
}

// Parameters returns the parameters last applied to the open camera.
func (c *Controller) Parameters() (Parameters, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.applied {
		return Parameters{}, c.notApplied()
	}
	return c.params, nil
}
