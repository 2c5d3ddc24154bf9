package service

import (
	"time"

	"imgeng/internal/core/domain"
	"imgeng/internal/core/port"
)

type Channel string

const (
	ResizeChannel Channel = "resize"
	ScrollChannel Channel = "scroll"
)

var channelDelays = map[Channel]time.Duration{
	ResizeChannel: domain.ResizeDelay,
	ScrollChannel: domain.ScrollDelay,
}

// Debouncer coalesces bursts of events per channel into a single trailing call.
type Debouncer struct {
	scheduler port.Scheduler
	prefix    string
}

// NewDebouncer keys its channels under prefix so several debouncers can share one scheduler.
func NewDebouncer(scheduler port.Scheduler, prefix string) *Debouncer {
	return &Debouncer{scheduler: scheduler, prefix: prefix}
}

// Trigger restarts the channel's delay; fn runs once the channel has been quiet for the whole delay.
func (d *Debouncer) Trigger(channel Channel, fn func()) {
	d.scheduler.Schedule(d.key(channel), channelDelays[channel], fn)
}

// Stop releases both channels.
func (d *Debouncer) Stop() {
	for channel := range channelDelays {
		d.scheduler.Cancel(d.key(channel))
	}
}

func (d *Debouncer) key(channel Channel) string {
	return d.prefix + "/" + string(channel)
}
