package imageengine

import (
	"fmt"
	"reflect"
	"strings"

	"imgeng/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// QueryKey is the query parameter ImageEngine reads its directives from.
const QueryKey = "imgeng"

type encoder func(v any) (string, bool)

type directive struct {
	name   string
	encode encoder
}

// directives lists every supported directive in the order it is written to the URL.
var directives = []directive{
	{name: "width", encode: number("w_")},
	{name: "height", encode: number("h_")},
	{name: "auto_width_fallback", encode: number("w_auto,")},
	{name: "scale_to_screen_width", encode: number("pc_")},
	{name: "crop", encode: crop},
	{name: "format", encode: text("f_")},
	{name: "fit", encode: text("m_")},
	{name: "compression", encode: number("cmpr_")},
	{name: "sharpness", encode: number("s_")},
	{name: "rotate", encode: number("r_")},
	{name: "inline", encode: flag("in_true")},
	{name: "keep_meta", encode: flag("meta_true")},
	{name: "no_optimization", encode: flag("pass_true")},
	{name: "force_download", encode: flag("dl_true")},
	{name: "max_device_pixel_ratio", encode: decimal("maxdpr_")},
}

var known = func() map[string]bool {
	m := make(map[string]bool, len(directives))
	for _, d := range directives {
		m[d.name] = true
	}
	return m
}()

// Builder builds ImageEngine delivery URLs.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build appends the encoded directives to fullURL. Without any usable directive the URL is returned unchanged.
func (b *Builder) Build(fullURL string, d domain.Directives, debug bool) string {
	encoded := Encode(d)

	if debug {
		l := log.With().Str("url", fullURL).Logger()
		for name := range d {
			if !known[name] {
				l.Debug().Str("directive", name).Msg("ignoring unknown directive")
			}
		}
		l.Debug().Str("directives", encoded).Msg("built ImageEngine directives")
	}

	if encoded == "" {
		return fullURL
	}

	separator := "?"
	if strings.Contains(fullURL, "?") {
		separator = "&"
	}

	return fullURL + separator + QueryKey + "=" + encoded
}

// Encode returns the directive path, e.g. "/w_300/h_200/m_letterbox".
func Encode(d domain.Directives) string {
	var sb strings.Builder
	for _, dir := range directives {
		v, ok := d[dir.name]
		if !ok || v == nil {
			continue
		}
		if s, ok := dir.encode(v); ok {
			sb.WriteString("/")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func number(prefix string) encoder {
	return func(v any) (string, bool) {
		f, err := cast.ToFloat64E(v)
		if err != nil || f <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s%d", prefix, int(f+0.5)), true
	}
}

func decimal(prefix string) encoder {
	return func(v any) (string, bool) {
		f, err := cast.ToFloat64E(v)
		if err != nil || f <= 0 {
			return "", false
		}
		return prefix + cast.ToString(f), true
	}
}

func text(prefix string) encoder {
	return func(v any) (string, bool) {
		s := strings.TrimSpace(cast.ToString(v))
		if s == "" {
			return "", false
		}
		return prefix + s, true
	}
}

func flag(value string) encoder {
	return func(v any) (string, bool) {
		if !cast.ToBool(v) {
			return "", false
		}
		return value, true
	}
}

// crop accepts [width, height, left, top] as a slice or a "w,h,l,t" string.
func crop(v any) (string, bool) {
	var parts []string
	if s, ok := v.(string); ok {
		parts = strings.Split(s, ",")
	} else if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := range rv.Len() {
			parts = append(parts, cast.ToString(rv.Index(i).Interface()))
		}
	}

	if len(parts) != 4 {
		return "", false
	}

	values := make([]string, len(parts))
	for i, p := range parts {
		n, err := cast.ToIntE(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return "", false
		}
		values[i] = cast.ToString(n)
	}

	return "cr_" + strings.Join(values, ","), true
}
