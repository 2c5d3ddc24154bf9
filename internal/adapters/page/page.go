// Package page simulates a scrolling document: a viewport, a scroll offset and boxes placed in document
// coordinates. It stands in for the browser when components are evaluated outside of one.
package page

import (
	"maps"
	"sync"

	"imgeng/internal/core/domain"
)

// Box is an element's placement in document coordinates.
type Box struct {
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width" validate:"gte=0"`
	Height float64 `mapstructure:"height" validate:"gte=0"`
	// WidthPercent, when set, sizes the box as a percentage of the viewport width.
	WidthPercent float64 `mapstructure:"width_percent" validate:"gte=0,lte=100"`
	// AspectRatio, when set, derives the height from the width.
	AspectRatio float64 `mapstructure:"aspect_ratio" validate:"gte=0"`
}

type Page struct {
	mutex    sync.RWMutex
	viewport domain.ViewportSize
	scrollX  float64
	scrollY  float64
}

func New(width, height float64) *Page {
	return &Page{viewport: domain.ViewportSize{Width: width, Height: height}}
}

func (p *Page) Size() domain.ViewportSize {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return p.viewport
}

func (p *Page) Resize(width, height float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.viewport = domain.ViewportSize{Width: width, Height: height}
}

// ScrollTo moves the viewport's top-left corner to x, y. Negative offsets are clamped to zero.
func (p *Page) ScrollTo(x, y float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.scrollX = max(x, 0)
	p.scrollY = max(y, 0)
}

func (p *Page) ScrollBy(dx, dy float64) {
	x, y := p.ScrollOffset()
	p.ScrollTo(x+dx, y+dy)
}

func (p *Page) ScrollOffset() (x, y float64) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return p.scrollX, p.scrollY
}

// Place adds an element at box.
func (p *Page) Place(box Box) *Element {
	return &Element{page: p, box: box}
}

// Element is a box on a Page. It implements port.Element.
type Element struct {
	page *Page

	mutex  sync.RWMutex
	box    Box
	styles map[string]string
}

func (e *Element) BoundingRect() domain.Rect {
	viewport := e.page.Size()
	scrollX, scrollY := e.page.ScrollOffset()

	e.mutex.RLock()
	box := e.box
	e.mutex.RUnlock()

	width, height := box.Width, box.Height
	if box.WidthPercent > 0 {
		width = viewport.Width * box.WidthPercent / 100
	}
	if box.AspectRatio > 0 {
		height = width / box.AspectRatio
	}

	top := box.Y - scrollY
	left := box.X - scrollX

	return domain.Rect{
		Top:    top,
		Bottom: top + height,
		Left:   left,
		Right:  left + width,
		Width:  width,
		Height: height,
	}
}

func (e *Element) SetStyle(property, value string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[property] = value
}

func (e *Element) Style(property string) string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.styles[property]
}

// Styles returns a copy of the inline styles set on the element.
func (e *Element) Styles() map[string]string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return maps.Clone(e.styles)
}

// Move replaces the element's placement.
func (e *Element) Move(box Box) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.box = box
}
