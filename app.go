package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"imgeng/internal/adapters/config"
	"imgeng/internal/adapters/file"
	"imgeng/internal/adapters/imageengine"
	"imgeng/internal/adapters/markup"
	"imgeng/internal/adapters/metrics"
	"imgeng/internal/adapters/page"
	"imgeng/internal/adapters/scheduler"
	"imgeng/internal/core/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

type mounted struct {
	component *service.Component
	element   *page.Element
}

// app wires one page worth of components to the adapters.
type app struct {
	mutex     sync.Mutex
	page      *page.Page
	scheduler *scheduler.TimerScheduler
	registry  *service.Registry
	document  *markup.Document
	deps      service.Dependencies
	mounted   []mounted
	out       string
}

func newApp(settings *config.Settings, reg prometheus.Registerer, out string) *app {
	a := &app{
		page:      page.New(settings.Viewport.Width, settings.Viewport.Height),
		scheduler: scheduler.NewTimerScheduler(),
		registry:  &service.Registry{},
		document:  markup.NewDocument(),
		out:       out,
	}

	a.deps = service.Dependencies{
		Viewport:  a.page,
		Scheduler: a.scheduler,
		URLs:      imageengine.NewBuilder(),
		Renderer:  a.document,
	}
	if reg != nil {
		a.deps.Recorder = metrics.NewPrometheus(reg)
	}

	return a
}

// mount creates and attaches a component for every configured image.
func (a *app) mount(images []config.Image) error {
	for i, img := range images {
		if err := a.add(img); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
	}

	log.Info().Int("components", len(images)).Msg("components mounted")
	return nil
}

func (a *app) add(img config.Image) error {
	c, err := service.NewComponent(img.Inputs(), a.deps)
	if err != nil {
		return err
	}

	el := a.page.Place(img.Box)
	a.registry.Register(c)

	a.mutex.Lock()
	a.mounted = append(a.mounted, mounted{component: c, element: el})
	a.mutex.Unlock()

	c.Attach(el)
	return nil
}

// reload applies edited settings by position: existing components are updated and moved, extra images are
// mounted and surplus components are removed.
func (a *app) reload(settings *config.Settings) {
	a.page.Resize(settings.Viewport.Width, settings.Viewport.Height)
	a.registry.Resize()

	a.mutex.Lock()
	current := a.mounted
	a.mutex.Unlock()

	for i, img := range settings.Images {
		if i >= len(current) {
			if err := a.add(img); err != nil {
				log.Error().Err(err).Int("image", i).Msg("failed to mount component")
			}
			continue
		}

		m := current[i]
		m.element.Move(img.Box)
		if err := m.component.Update(img.Inputs()); err != nil {
			log.Error().Err(err).Int("image", i).Msg("failed to update component")
		}
	}

	if len(settings.Images) < len(current) {
		for _, m := range current[len(settings.Images):] {
			if err := a.registry.Remove(m.component.ID()); err != nil {
				log.Warn().Err(err).Msg("failed to remove component")
			}
		}

		a.mutex.Lock()
		a.mounted = a.mounted[:len(settings.Images)]
		a.mutex.Unlock()
	}
}

// write renders the live components to the output file, or stdout when none is set.
func (a *app) write() error {
	live := a.liveDocument()

	if a.out == "" {
		return live.Write(os.Stdout)
	}

	return file.Save(a.out, func(w io.Writer) error { return live.Write(w) })
}

// liveDocument drops views of removed components.
func (a *app) liveDocument() *markup.Document {
	doc := markup.NewDocument()
	for _, c := range a.registry.List() {
		if v, ok := a.document.View(c.ID()); ok {
			doc.Render(v)
		}
	}
	return doc
}

func (a *app) close() {
	a.registry.Close()
	a.scheduler.Stop()
}
