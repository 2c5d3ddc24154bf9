package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidPath       = errors.New("valid path attribute is required")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrComponentNotFound = errors.New("component not found")
)

const (
	WrapperClass = "ie-image-wrapper"
	ImageClass   = "ie-image"
)

// The wrapper style set when an image becomes ready. Some engines keep the old background fit after src is
// populated until a layout property changes.
const (
	ReadyStyleProperty = "background-size"
	ReadyStyleValue    = "100%"
)

const (
	ResizeDelay = 250 * time.Millisecond
	ScrollDelay = 100 * time.Millisecond
)
