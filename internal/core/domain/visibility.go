package domain

// IsInViewport estimates whether any part of rect could be on screen. It is deliberately loose: an element
// touching the top-left corner at exactly zero counts as outside.
func IsInViewport(rect Rect, viewport ViewportSize) bool {
	vertical := (rect.Top > 0 || rect.Bottom > 0) && rect.Top < viewport.Height
	horizontal := (rect.Left > 0 || rect.Right > 0) && rect.Left < viewport.Width

	return vertical && horizontal
}
