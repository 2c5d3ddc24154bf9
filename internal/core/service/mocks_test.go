package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"imgeng/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type pendingTask struct {
	delay time.Duration
	fn    func()
}

// fakeScheduler holds tasks until the test fires them.
type fakeScheduler struct {
	mutex   sync.Mutex
	pending map[string]pendingTask
	stopped bool
	calls   int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[string]pendingTask)}
}

func (s *fakeScheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.calls++
	if s.stopped {
		return
	}
	s.pending[key] = pendingTask{delay: delay, fn: fn}
}

func (s *fakeScheduler) Cancel(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.pending, key)
}

func (s *fakeScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stopped = true
	s.pending = make(map[string]pendingTask)
}

// fire runs the pending task whose key ends with suffix and reports whether one was found.
func (s *fakeScheduler) fire(suffix string) bool {
	s.mutex.Lock()
	var task pendingTask
	found := false
	for key, t := range s.pending {
		if strings.HasSuffix(key, suffix) {
			task = t
			found = true
			delete(s.pending, key)
			break
		}
	}
	s.mutex.Unlock()

	if found {
		task.fn()
	}
	return found
}

func (s *fakeScheduler) keys() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	keys := make([]string, 0, len(s.pending))
	for k := range s.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type fakeElement struct {
	rect   domain.Rect
	styles map[string]string
}

func (e *fakeElement) BoundingRect() domain.Rect {
	return e.rect
}

func (e *fakeElement) SetStyle(property, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[property] = value
}

type fakeViewport struct {
	size domain.ViewportSize
}

func (v *fakeViewport) Size() domain.ViewportSize {
	return v.size
}

// echoBuilder renders directives in a stable, readable form so tests can assert on them.
type echoBuilder struct {
	calls int
}

func (b *echoBuilder) Build(fullURL string, directives domain.Directives, _ bool) string {
	b.calls++
	if len(directives) == 0 {
		return fullURL
	}

	keys := make([]string, 0, len(directives))
	for k := range directives {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, directives[k]))
	}
	return fullURL + "?" + strings.Join(parts, "&")
}

type recordingRenderer struct {
	views []domain.View
}

func (r *recordingRenderer) Render(view domain.View) {
	r.views = append(r.views, view)
}

func (r *recordingRenderer) last() domain.View {
	if len(r.views) == 0 {
		return domain.View{}
	}
	return r.views[len(r.views)-1]
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Evaluated(trigger string) {
	m.Called(trigger)
}

func (m *MockRecorder) Ready() {
	m.Called()
}

func (m *MockRecorder) SourceBuilt() {
	m.Called()
}
