package domain

import (
	"maps"

	"github.com/spf13/cast"
)

// Directive names read by the core. Every other key is passed through to the URL builder untouched.
const (
	DirectiveFit            = "fit"
	DirectiveWidth          = "width"
	DirectiveHeight         = "height"
	DirectiveNoOptimization = "no_optimization"
)

// Directives maps directive names to values. Values come from config files and callers alike, so readers coerce
// instead of asserting concrete types.
type Directives map[string]any

func (d Directives) Fit() FitMode {
	return ParseFitMode(cast.ToString(d[DirectiveFit]))
}

func (d Directives) Width() Dimension {
	return d.dimension(DirectiveWidth)
}

func (d Directives) Height() Dimension {
	return d.dimension(DirectiveHeight)
}

func (d Directives) NoOptimization() bool {
	return cast.ToBool(d[DirectiveNoOptimization])
}

func (d Directives) dimension(key string) Dimension {
	v, ok := d[key]
	if !ok || v == nil {
		return Dimension{}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Dimension{}
	}

	return Pixels(f)
}

// Clone returns a shallow copy. A nil receiver yields an empty, writable map.
func (d Directives) Clone() Directives {
	if d == nil {
		return Directives{}
	}
	return maps.Clone(d)
}

// With returns a copy with key set to value.
func (d Directives) With(key string, value any) Directives {
	c := d.Clone()
	c[key] = value
	return c
}

// Without returns a copy with the given keys removed.
func (d Directives) Without(keys ...string) Directives {
	c := d.Clone()
	for _, k := range keys {
		delete(c, k)
	}
	return c
}

// withDimension sets key to the pixel value, or removes it when absent.
func (d Directives) withDimension(key string, dim Dimension) Directives {
	if !dim.Valid {
		return d.Without(key)
	}
	return d.With(key, dim.Px)
}
