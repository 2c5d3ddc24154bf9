package imageengine

import (
	"testing"

	"imgeng/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		directives domain.Directives
		want       string
	}{
		{
			name: "no directives",
			url:  "http://localhost/test.jpg",
			want: "http://localhost/test.jpg",
		},
		{
			name:       "size and fit",
			url:        "http://localhost/test.jpg",
			directives: domain.Directives{"fit": "letterbox", "height": 200, "width": 300},
			want:       "http://localhost/test.jpg?imgeng=/w_300/h_200/m_letterbox",
		},
		{
			name:       "existing query",
			url:        "http://localhost/test.jpg?v=2",
			directives: domain.Directives{"format": "webp"},
			want:       "http://localhost/test.jpg?v=2&imgeng=/f_webp",
		},
		{
			name: "every directive",
			url:  "/a.jpg",
			directives: domain.Directives{
				"width":                  300,
				"height":                 200.4,
				"auto_width_fallback":    480,
				"scale_to_screen_width":  50,
				"crop":                   []int{100, 80, 10, 20},
				"format":                 "avif",
				"fit":                    "cropbox",
				"compression":            10,
				"sharpness":              "15",
				"rotate":                 90,
				"inline":                 true,
				"keep_meta":              true,
				"no_optimization":        true,
				"force_download":         true,
				"max_device_pixel_ratio": 2.5,
			},
			want: "/a.jpg?imgeng=/w_300/h_200/w_auto,480/pc_50/cr_100,80,10,20/f_avif/m_cropbox/cmpr_10/s_15/r_90" +
				"/in_true/meta_true/pass_true/dl_true/maxdpr_2.5",
		},
		{
			name:       "crop from string",
			url:        "/a.jpg",
			directives: domain.Directives{"crop": "100, 80, 0, 0"},
			want:       "/a.jpg?imgeng=/cr_100,80,0,0",
		},
		{
			name: "skips false, zero, empty and unknown",
			url:  "/a.jpg",
			directives: domain.Directives{
				"width":           0,
				"height":          nil,
				"format":          "",
				"inline":          false,
				"no_optimization": "false",
				"crop":            []int{1, 2},
				"unknown":         "x",
			},
			want: "/a.jpg",
		},
	}

	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Build(tt.url, tt.directives, true))
		})
	}
}

func TestEncodeIsStable(t *testing.T) {
	d := domain.Directives{"format": "png", "width": 10, "fit": "stretch", "height": 20}

	first := Encode(d)
	for range 20 {
		assert.Equal(t, first, Encode(d))
	}
	assert.Equal(t, "/w_10/h_20/f_png/m_stretch", first)
}
