package port

import "imgeng/internal/core/domain"

type Element interface {
	// BoundingRect measures the element relative to the viewport at the time of the call.
	BoundingRect() domain.Rect
	// SetStyle sets an inline style property on the element.
	SetStyle(property, value string)
}

type Viewport interface {
	// Size returns the current viewport dimensions.
	Size() domain.ViewportSize
}
