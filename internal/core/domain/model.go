package domain

import (
	"math"
	"slices"
	"strings"
)

// Dimension is an optional pixel value. The zero value is absent.
type Dimension struct {
	Px    int
	Valid bool
}

// Pixels rounds a measurement to the nearest whole pixel. Values that round to zero or less carry no size and
// yield an absent Dimension.
func Pixels(v float64) Dimension {
	px := int(math.Round(v))
	if px <= 0 {
		return Dimension{}
	}

	return Dimension{Px: px, Valid: true}
}

// OrZero returns the pixel value, or 0 when absent.
func (d Dimension) OrZero() int {
	if !d.Valid {
		return 0
	}
	return d.Px
}

// Rect is the bounding box of an element relative to the viewport.
type Rect struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
	Width  float64
	Height float64
}

type ViewportSize struct {
	Width  float64
	Height float64
}

type FitMode string

const (
	FitDefault   FitMode = ""
	FitCropbox   FitMode = "cropbox"
	FitLetterbox FitMode = "letterbox"
	FitStretch   FitMode = "stretch"
)

// ParseFitMode maps a fit directive onto the modes the size deriver knows about. Anything else, including "box"
// and "outside", is FitDefault.
func ParseFitMode(fit string) FitMode {
	switch FitMode(strings.ToLower(strings.TrimSpace(fit))) {
	case FitCropbox:
		return FitCropbox
	case FitLetterbox:
		return FitLetterbox
	case FitStretch:
		return FitStretch
	default:
		return FitDefault
	}
}

// DerivedSize is the width/height pair used for the size directives and the img attributes.
type DerivedSize struct {
	Width  Dimension
	Height Dimension
}

type SourceDescriptor struct {
	FinalHost       string
	FinalPath       string
	FinalDirectives Directives
}

// FullURL is the unoptimized image URL handed to the URL builder.
func (s SourceDescriptor) FullURL() string {
	return s.FinalHost + s.FinalPath
}

// Inputs is the configuration surface of an image component.
type Inputs struct {
	Path           string
	Host           string
	Directives     Directives
	Alt            string
	WrapperClasses []string
	ImageClasses   []string
	WrapperStyles  map[string]string
	ImageStyles    map[string]string
	Responsive     bool
	DeriveSize     bool
	Lazy           bool
	StripFromSrc   string
	Debug          bool
}

func DefaultInputs() Inputs {
	return Inputs{Lazy: true}
}

// Validate reports configuration errors that must stop the component from rendering.
func (i Inputs) Validate() error {
	if strings.TrimSpace(i.Path) == "" {
		return ErrInvalidPath
	}
	return nil
}

// HasHost reports whether a non-blank host was configured.
func (i Inputs) HasHost() bool {
	return strings.TrimSpace(i.Host) != ""
}

// View is the final state of a component as handed to a renderer.
type View struct {
	ID             string
	Ready          bool
	Src            string
	Alt            string
	Width          Dimension
	Height         Dimension
	Lazy           bool
	DeriveSize     bool
	Box            Rect
	WrapperClasses []string
	ImageClasses   []string
	WrapperStyles  map[string]string
	ImageStyles    map[string]string
}

// ShowImage reports whether the img element should exist. With derive_size the measured box must be non-zero as
// well, otherwise the derived size would describe nothing.
func (v View) ShowImage() bool {
	if !v.Ready {
		return false
	}
	if v.DeriveSize {
		return v.Box.Width > 0 && v.Box.Height > 0
	}
	return true
}

// ComposeClasses prefixes the base class and drops blanks and duplicates, keeping first occurrence order.
func ComposeClasses(base string, extra []string) []string {
	classes := []string{base}
	for _, c := range extra {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(classes, c) {
			continue
		}
		classes = append(classes, c)
	}
	return classes
}
