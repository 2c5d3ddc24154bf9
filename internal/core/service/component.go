package service

import (
	"fmt"
	"maps"
	"sync"

	"imgeng/internal/core/domain"
	"imgeng/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type trigger string

const (
	triggerAttach trigger = "attach"
	triggerUpdate trigger = "update"
	triggerResize trigger = "resize"
	triggerScroll trigger = "scroll"
)

// Dependencies are the collaborators a Component talks to. Recorder is optional.
type Dependencies struct {
	Viewport  port.Viewport
	Scheduler port.Scheduler
	URLs      port.URLBuilder
	Renderer  port.Renderer
	Recorder  port.Recorder
}

// Component is a responsive, lazily loaded image. It derives its size from its wrapper element or its
// directives, and only gets a source once it is (about to be) visible.
type Component struct {
	id        uuid.UUID
	deps      Dependencies
	debouncer *Debouncer
	logger    zerolog.Logger

	// renderMutex is held from a pass's snapshot until it is rendered, so passes reach the renderer in order.
	renderMutex sync.Mutex

	mutex      sync.Mutex
	inputs     domain.Inputs
	element    port.Element
	finalHost  string
	viewport   domain.ViewportSize
	box        domain.Rect
	requested  domain.DerivedSize
	sizes      domain.SizeState
	inViewport bool
	readiness  domain.Readiness
	nudges     map[string]string
	src        string
	closed     bool
}

// NewComponent validates inputs and prepares a component. Rendering starts with Attach.
func NewComponent(inputs domain.Inputs, deps Dependencies) (*Component, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate component id: %w", err)
	}

	c := &Component{
		id:        id,
		deps:      deps,
		debouncer: NewDebouncer(deps.Scheduler, id.String()),
		logger: log.With().
			Str("component", id.String()).
			Str("path", inputs.Path).
			Logger(),
		inputs: inputs,
	}

	c.setFinalHost()

	return c, nil
}

func (c *Component) ID() string {
	return c.id.String()
}

// Attach binds the wrapper element and runs the first evaluation.
func (c *Component) Attach(element port.Element) {
	c.mutex.Lock()
	c.element = element
	c.mutex.Unlock()

	c.evaluate(triggerAttach)
}

// Update replaces the inputs and re-evaluates. Validation errors leave the previous inputs in place.
func (c *Component) Update(inputs domain.Inputs) error {
	if err := inputs.Validate(); err != nil {
		return err
	}

	c.mutex.Lock()
	c.inputs = inputs
	c.setFinalHost()
	c.mutex.Unlock()

	c.evaluate(triggerUpdate)

	return nil
}

// Resize schedules a debounced re-measure when the component is responsive.
func (c *Component) Resize() {
	c.mutex.Lock()
	enabled := c.inputs.Responsive && !c.closed
	c.mutex.Unlock()

	if enabled {
		c.debouncer.Trigger(ResizeChannel, func() { c.evaluate(triggerResize) })
	}
}

// Scroll schedules a debounced visibility check when the component is lazy.
func (c *Component) Scroll() {
	c.mutex.Lock()
	enabled := c.inputs.Lazy && !c.closed
	c.mutex.Unlock()

	if enabled {
		c.debouncer.Trigger(ScrollChannel, func() { c.evaluate(triggerScroll) })
	}
}

// Close releases pending timers. Evaluations after Close are ignored.
func (c *Component) Close() {
	c.mutex.Lock()
	c.closed = true
	c.mutex.Unlock()

	c.debouncer.Stop()
	c.logger.Debug().Msg("component closed")
}

func (c *Component) View() domain.View {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.view()
}

func (c *Component) Ready() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.readiness.Ready()
}

func (c *Component) DerivedSize() domain.DerivedSize {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.sizes.Derived
}

func (c *Component) InViewport() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.inViewport
}

// evaluate is the single pass every entry point funnels into. Sizes are derived before visibility is checked,
// and the source is built before readiness can flip, so a freshly ready image always renders with its src.
func (c *Component) evaluate(t trigger) {
	c.renderMutex.Lock()
	defer c.renderMutex.Unlock()

	c.mutex.Lock()
	if c.closed || c.element == nil {
		c.mutex.Unlock()
		return
	}

	if t == triggerAttach || t == triggerResize {
		c.viewport = c.deps.Viewport.Size()
	}
	if t != triggerScroll {
		c.setSizes()
	}

	c.inViewport = domain.IsInViewport(c.element.BoundingRect(), c.viewport)

	if t != triggerScroll {
		c.buildSource()
	}

	transitioned := c.readiness.Evaluate(c.inputs.Lazy, c.inViewport)
	if transitioned {
		c.nudges = map[string]string{domain.ReadyStyleProperty: domain.ReadyStyleValue}
	}
	inViewport := c.inViewport
	view := c.view()
	element := c.element
	c.mutex.Unlock()

	c.logger.Debug().
		Str("trigger", string(t)).
		Bool("inViewport", inViewport).
		Bool("ready", view.Ready).
		Msg("evaluated")

	if c.deps.Recorder != nil {
		c.deps.Recorder.Evaluated(string(t))
	}

	if (transitioned || t != triggerScroll) && c.deps.Renderer != nil {
		c.deps.Renderer.Render(view)
	}

	if transitioned {
		if c.deps.Recorder != nil {
			c.deps.Recorder.Ready()
		}
		element.SetStyle(domain.ReadyStyleProperty, domain.ReadyStyleValue)
		c.logger.Info().Str("src", view.Src).Msg("image ready")
	}
}

func (c *Component) setSizes() {
	if c.inputs.DeriveSize {
		c.box = c.element.BoundingRect()
		c.debug().Interface("rect", c.box).Msg("derive_size is true, measured wrapper element")
	}

	if c.inputs.Directives.NoOptimization() {
		c.requested = domain.DerivedSize{}
		c.sizes = domain.SizeState{}
		return
	}

	if c.inputs.DeriveSize {
		c.setSizesByFit(domain.Pixels(c.box.Width), domain.Pixels(c.box.Height))
		return
	}

	c.setSizesByFit(c.inputs.Directives.Width(), c.inputs.Directives.Height())
}

func (c *Component) setSizesByFit(width, height domain.Dimension) {
	c.requested = domain.DerivedSize{Width: width, Height: height}
	c.sizes = domain.DeriveSize(width, height, c.inputs.Directives.Fit(), c.sizes)
}

func (c *Component) buildSource() {
	desc := domain.BuildSource(domain.SourceRequest{
		Host:        c.finalHost,
		Path:        c.inputs.Path,
		StripPrefix: c.inputs.StripFromSrc,
		Directives:  c.inputs.Directives,
		Requested:   c.requested,
		Derived:     c.sizes.Derived,
		DeriveSize:  c.inputs.DeriveSize,
	})

	if c.inputs.DeriveSize {
		c.debug().Msg("derive_size enabled, overriding directives width and height")
	}
	c.debug().Interface("directives", desc.FinalDirectives).Msg("final directives")

	c.src = c.deps.URLs.Build(desc.FullURL(), desc.FinalDirectives, c.inputs.Debug)

	if c.deps.Recorder != nil {
		c.deps.Recorder.SourceBuilt()
	}
}

func (c *Component) setFinalHost() {
	if c.inputs.Debug && !c.inputs.HasHost() {
		c.logger.Warn().Msg("ImageEngine host wasn't set")
	}
	c.finalHost = c.inputs.Host
}

func (c *Component) view() domain.View {
	return domain.View{
		ID:             c.id.String(),
		Ready:          c.readiness.Ready(),
		Src:            c.src,
		Alt:            c.inputs.Alt,
		Width:          c.sizes.Derived.Width,
		Height:         c.sizes.Derived.Height,
		Lazy:           c.inputs.Lazy,
		DeriveSize:     c.inputs.DeriveSize,
		Box:            c.box,
		WrapperClasses: domain.ComposeClasses(domain.WrapperClass, c.inputs.WrapperClasses),
		ImageClasses:   domain.ComposeClasses(domain.ImageClass, c.inputs.ImageClasses),
		WrapperStyles:  c.wrapperStyles(),
		ImageStyles:    maps.Clone(c.inputs.ImageStyles),
	}
}

// wrapperStyles overlays the inline styles set on the wrapper element onto the configured ones.
func (c *Component) wrapperStyles() map[string]string {
	if len(c.nudges) == 0 {
		return maps.Clone(c.inputs.WrapperStyles)
	}

	styles := make(map[string]string, len(c.inputs.WrapperStyles)+len(c.nudges))
	maps.Copy(styles, c.inputs.WrapperStyles)
	maps.Copy(styles, c.nudges)
	return styles
}

// debug returns a debug event only when the instance asked for diagnostics. zerolog treats a nil event as a
// no-op.
func (c *Component) debug() *zerolog.Event {
	if !c.inputs.Debug {
		return nil
	}
	return c.logger.Debug()
}
