package page

import (
	"testing"

	"imgeng/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestBoundingRectFollowsScroll(t *testing.T) {
	p := New(800, 600)
	e := p.Place(Box{X: 100, Y: 900, Width: 300, Height: 200})

	assert.Equal(t, domain.Rect{Top: 900, Bottom: 1100, Left: 100, Right: 400, Width: 300, Height: 200}, e.BoundingRect())
	assert.False(t, domain.IsInViewport(e.BoundingRect(), p.Size()))

	p.ScrollTo(0, 500)
	assert.Equal(t, domain.Rect{Top: 400, Bottom: 600, Left: 100, Right: 400, Width: 300, Height: 200}, e.BoundingRect())
	assert.True(t, domain.IsInViewport(e.BoundingRect(), p.Size()))

	p.ScrollBy(0, 1000)
	assert.Equal(t, -600.0, e.BoundingRect().Top)
	assert.False(t, domain.IsInViewport(e.BoundingRect(), p.Size()))
}

func TestScrollClampsAtOrigin(t *testing.T) {
	p := New(800, 600)
	p.ScrollTo(-10, -20)

	x, y := p.ScrollOffset()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestFluidBoxTracksViewport(t *testing.T) {
	p := New(800, 600)
	e := p.Place(Box{X: 10, Y: 10, WidthPercent: 50, AspectRatio: 2})

	rect := e.BoundingRect()
	assert.Equal(t, 400.0, rect.Width)
	assert.Equal(t, 200.0, rect.Height)

	p.Resize(1600, 900)
	rect = e.BoundingRect()
	assert.Equal(t, 800.0, rect.Width)
	assert.Equal(t, 400.0, rect.Height)
	assert.Equal(t, domain.ViewportSize{Width: 1600, Height: 900}, p.Size())
}

func TestElementStyles(t *testing.T) {
	e := New(800, 600).Place(Box{})
	assert.Empty(t, e.Style("background-size"))

	e.SetStyle("background-size", "100%")
	assert.Equal(t, "100%", e.Style("background-size"))

	styles := e.Styles()
	styles["background-size"] = "auto"
	assert.Equal(t, "100%", e.Style("background-size"))
}

func TestMove(t *testing.T) {
	e := New(800, 600).Place(Box{Width: 10, Height: 10})
	e.Move(Box{X: 5, Y: 5, Width: 20, Height: 30})

	assert.Equal(t, domain.Rect{Top: 5, Bottom: 35, Left: 5, Right: 25, Width: 20, Height: 30}, e.BoundingRect())
}
