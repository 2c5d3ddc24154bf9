package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(v int) Dimension {
	return Dimension{Px: v, Valid: true}
}

func TestPixels(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Dimension
	}{
		{name: "whole", in: 300, want: px(300)},
		{name: "rounds down", in: 299.4, want: px(299)},
		{name: "rounds half up", in: 299.5, want: px(300)},
		{name: "zero is absent", in: 0, want: Dimension{}},
		{name: "sub pixel is absent", in: 0.3, want: Dimension{}},
		{name: "negative is absent", in: -20, want: Dimension{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pixels(tt.in))
		})
	}
}

func derived(w, h Dimension) SizeState {
	return SizeState{Derived: DerivedSize{Width: w, Height: h}, Basis: DerivedSize{Width: w, Height: h}}
}

func TestDeriveSize(t *testing.T) {
	tests := []struct {
		name   string
		width  Dimension
		height Dimension
		fit    FitMode
		state  SizeState
		want   DerivedSize
	}{
		{
			name:   "default keeps width when wider",
			width:  px(300),
			height: px(200),
			want:   DerivedSize{Width: px(300)},
		},
		{
			name:   "default keeps width when square",
			width:  px(200),
			height: px(200),
			want:   DerivedSize{Width: px(200)},
		},
		{
			name:   "default keeps height when taller",
			width:  px(200),
			height: px(300),
			want:   DerivedSize{Height: px(300)},
		},
		{
			name:  "default width only",
			width: px(120),
			want:  DerivedSize{Width: px(120)},
		},
		{
			name:   "default height only",
			height: px(80),
			want:   DerivedSize{Height: px(80)},
		},
		{
			name:  "default with nothing requested clears",
			state: derived(px(10), Dimension{}),
			want:  DerivedSize{},
		},
		{
			name:   "default is not grow only",
			width:  px(100),
			height: px(50),
			state:  derived(px(400), Dimension{}),
			want:   DerivedSize{Width: px(100)},
		},
		{
			name:   "letterbox keeps both",
			width:  px(300),
			height: px(200),
			fit:    FitLetterbox,
			want:   DerivedSize{Width: px(300), Height: px(200)},
		},
		{
			name:   "stretch keeps both",
			width:  px(300),
			height: px(200),
			fit:    FitStretch,
			want:   DerivedSize{Width: px(300), Height: px(200)},
		},
		{
			name:  "letterbox sets absent height as requested",
			width: px(300),
			fit:   FitLetterbox,
			state: derived(px(100), px(100)),
			want:  DerivedSize{Width: px(300)},
		},
		{
			name:   "letterbox ignores smaller request",
			width:  px(200),
			height: px(100),
			fit:    FitLetterbox,
			state:  derived(px(300), px(200)),
			want:   DerivedSize{Width: px(300), Height: px(200)},
		},
		{
			name:   "stretch grows on height alone",
			width:  px(300),
			height: px(250),
			fit:    FitStretch,
			state:  derived(px(300), px(200)),
			want:   DerivedSize{Width: px(300), Height: px(250)},
		},
		{
			name:   "cropbox wider keeps width",
			width:  px(300),
			height: px(200),
			fit:    FitCropbox,
			want:   DerivedSize{Width: px(300)},
		},
		{
			name:   "cropbox taller keeps width",
			width:  px(200),
			height: px(300),
			fit:    FitCropbox,
			want:   DerivedSize{Width: px(200)},
		},
		{
			name:   "cropbox ignores smaller request",
			width:  px(250),
			height: px(100),
			fit:    FitCropbox,
			state: SizeState{
				Derived: DerivedSize{Width: px(300)},
				Basis:   DerivedSize{Width: px(300), Height: px(200)},
			},
			want: DerivedSize{Width: px(300)},
		},
		{
			name:   "cropbox taller box retriggers on width",
			width:  px(280),
			height: px(400),
			fit:    FitCropbox,
			state: SizeState{
				Derived: DerivedSize{Width: px(300)},
				Basis:   DerivedSize{Width: px(300), Height: px(200)},
			},
			want: DerivedSize{Width: px(280)},
		},
		{
			name:   "cropbox height only leaves size untouched",
			height: px(500),
			fit:    FitCropbox,
			state: SizeState{
				Derived: DerivedSize{Width: px(300)},
				Basis:   DerivedSize{Width: px(300), Height: px(200)},
			},
			want: DerivedSize{Width: px(300)},
		},
		{
			name:   "cropbox height only from empty stays empty",
			height: px(500),
			fit:    FitCropbox,
			want:   DerivedSize{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSize(tt.width, tt.height, tt.fit, tt.state)
			assert.Equal(t, tt.want, got.Derived)
		})
	}
}

func TestDeriveSizeGrowOnlyIsStable(t *testing.T) {
	for _, fit := range []FitMode{FitCropbox, FitLetterbox, FitStretch} {
		t.Run(string(fit), func(t *testing.T) {
			state := DeriveSize(px(640), px(480), fit, SizeState{})
			for _, req := range [][2]int{{640, 480}, {639, 480}, {320, 240}, {1, 1}} {
				next := DeriveSize(px(req[0]), px(req[1]), fit, state)
				assert.Equal(t, state, next, "request %v", req)
			}
		})
	}
}

func TestDeriveSizeCropboxDoesNotShrinkOnResize(t *testing.T) {
	state := DeriveSize(px(600), px(400), FitCropbox, SizeState{})
	require.Equal(t, DerivedSize{Width: px(600)}, state.Derived)

	for _, box := range [][2]int{{500, 350}, {400, 300}, {600, 400}, {300, 200}} {
		state = DeriveSize(px(box[0]), px(box[1]), FitCropbox, state)
		assert.Equal(t, DerivedSize{Width: px(600)}, state.Derived, "box %v", box)
	}

	state = DeriveSize(px(800), px(500), FitCropbox, state)
	assert.Equal(t, DerivedSize{Width: px(800)}, state.Derived)
}

func TestDeriveSizeNeverDropsBothDimensions(t *testing.T) {
	requests := []struct {
		width  Dimension
		height Dimension
	}{
		{px(300), px(200)},
		{px(200), px(300)},
		{px(300), Dimension{}},
		{Dimension{}, px(300)},
	}
	for _, fit := range []FitMode{FitDefault, FitCropbox, FitLetterbox, FitStretch} {
		for _, r := range requests {
			if fit == FitCropbox && !r.width.Valid {
				continue
			}
			got := DeriveSize(r.width, r.height, fit, SizeState{})
			assert.True(t, got.Derived.Width.Valid || got.Derived.Height.Valid, "fit %q request %+v", fit, r)
		}
	}
}

func TestParseFitMode(t *testing.T) {
	assert.Equal(t, FitCropbox, ParseFitMode("cropbox"))
	assert.Equal(t, FitLetterbox, ParseFitMode(" Letterbox "))
	assert.Equal(t, FitStretch, ParseFitMode("stretch"))
	assert.Equal(t, FitDefault, ParseFitMode("box"))
	assert.Equal(t, FitDefault, ParseFitMode(""))
}
