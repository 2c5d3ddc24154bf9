package config

import (
	"fmt"

	"imgeng/internal/adapters/page"
	"imgeng/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// Settings is the decoded configuration file.
type Settings struct {
	LogLevel zerolog.Level
	Viewport Viewport
	Images   []Image `validate:"dive"`
}

type Viewport struct {
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
}

// Image describes one component and where its wrapper sits on the page.
type Image struct {
	Path           string            `mapstructure:"path"`
	Host           string            `mapstructure:"host"`
	Directives     map[string]any    `mapstructure:"directives"`
	Alt            string            `mapstructure:"alt"`
	WrapperClasses []string          `mapstructure:"wrapper_classes"`
	ImageClasses   []string          `mapstructure:"image_classes"`
	WrapperStyles  map[string]string `mapstructure:"wrapper_styles"`
	ImageStyles    map[string]string `mapstructure:"image_styles"`
	Responsive     bool              `mapstructure:"responsive"`
	DeriveSize     bool              `mapstructure:"derive_size"`
	// Lazy is a pointer so an omitted key keeps the default of true.
	Lazy         *bool    `mapstructure:"lazy"`
	StripFromSrc string   `mapstructure:"strip_from_src"`
	Debug        bool     `mapstructure:"debug"`
	Box          page.Box `mapstructure:"box"`
}

// Inputs converts the image settings into component inputs.
func (i Image) Inputs() domain.Inputs {
	in := domain.DefaultInputs()

	in.Path = i.Path
	in.Host = i.Host
	in.Directives = domain.Directives(i.Directives)
	in.Alt = i.Alt
	in.WrapperClasses = i.WrapperClasses
	in.ImageClasses = i.ImageClasses
	in.WrapperStyles = i.WrapperStyles
	in.ImageStyles = i.ImageStyles
	in.Responsive = i.Responsive
	in.DeriveSize = i.DeriveSize
	in.StripFromSrc = i.StripFromSrc
	in.Debug = i.Debug
	if i.Lazy != nil {
		in.Lazy = *i.Lazy
	}

	return in
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("viewport.width", defaultViewportWidth)
	v.SetDefault("viewport.height", defaultViewportHeight)

	s := &Settings{
		LogLevel: ParseLogLevel(v.GetString("app.log_level")),
		Viewport: Viewport{
			Width:  v.GetFloat64("viewport.width"),
			Height: v.GetFloat64("viewport.height"),
		},
	}

	if err := v.UnmarshalKey("images", &s.Images); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	for i, img := range s.Images {
		if err := img.Inputs().Validate(); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

func ParseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
