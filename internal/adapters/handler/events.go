package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"imgeng/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// Surface is the page the events act on.
type Surface interface {
	ScrollTo(x, y float64)
	ScrollBy(dx, dy float64)
	Resize(width, height float64)
}

// Broadcaster forwards window events to every mounted component.
type Broadcaster interface {
	Resize()
	Scroll()
}

type Kind string

const (
	KindScroll   Kind = "scroll"
	KindScrollBy Kind = "scrollby"
	KindResize   Kind = "resize"
	KindWait     Kind = "wait"
)

// Event is one line of a replay script.
type Event struct {
	Line  int
	Kind  Kind
	X, Y  float64
	Delay time.Duration
}

// ParseEvent parses a single script line such as "scroll 0 900", "resize 640 480" or "wait 300ms".
func ParseEvent(line string) (Event, error) {
	kind, args := ParseEventArgs(line)

	switch kind {
	case KindScroll, KindScrollBy, KindResize:
		if len(args) != 2 {
			return Event{}, fmt.Errorf("%s expects 2 arguments, got %d", kind, len(args))
		}
		x, err := cast.ToFloat64E(args[0])
		if err != nil {
			return Event{}, fmt.Errorf("invalid %s argument %q: %w", kind, args[0], err)
		}
		y, err := cast.ToFloat64E(args[1])
		if err != nil {
			return Event{}, fmt.Errorf("invalid %s argument %q: %w", kind, args[1], err)
		}
		return Event{Kind: kind, X: x, Y: y}, nil
	case KindWait:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("wait expects 1 argument, got %d", len(args))
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return Event{}, fmt.Errorf("invalid wait duration %q: %w", args[0], err)
		}
		return Event{Kind: KindWait, Delay: d}, nil
	default:
		return Event{}, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, kind)
	}
}

// ParseEventArgs splits a line into its lowercased kind and the remaining arguments.
func ParseEventArgs(line string) (Kind, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	return Kind(strings.ToLower(fields[0])), fields[1:]
}

// ParseScript reads events line by line. Blank lines and lines starting with # are skipped.
func ParseScript(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		ev.Line = n
		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return events, nil
}

// Replay moves the surface through the script and notifies components after each move. It stops early when ctx
// is cancelled.
func Replay(ctx context.Context, r io.Reader, surface Surface, components Broadcaster) error {
	events, err := ParseScript(r)
	if err != nil {
		return err
	}

	for _, ev := range events {
		log.Debug().Int("line", ev.Line).Str("kind", string(ev.Kind)).Msg("replaying event")

		switch ev.Kind {
		case KindScroll:
			surface.ScrollTo(ev.X, ev.Y)
			components.Scroll()
		case KindScrollBy:
			surface.ScrollBy(ev.X, ev.Y)
			components.Scroll()
		case KindResize:
			surface.Resize(ev.X, ev.Y)
			components.Resize()
		case KindWait:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(ev.Delay):
			}
		}
	}

	return nil
}
