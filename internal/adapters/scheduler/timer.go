package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type task struct {
	timer      *time.Timer
	generation uint64
}

// TimerScheduler runs keyed one-shot tasks on time.AfterFunc timers. Scheduling a key again supersedes the
// pending task, including one whose timer has already fired but not yet started running.
type TimerScheduler struct {
	mutex      sync.Mutex
	tasks      map[string]task
	generation uint64
	running    int
	stopped    bool
}

const drainInterval = 10 * time.Millisecond

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{tasks: make(map[string]task)}
}

func (s *TimerScheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stopped {
		log.Debug().Str("key", key).Msg("scheduler stopped, dropping task")
		return
	}

	if t, ok := s.tasks[key]; ok {
		t.timer.Stop()
	}

	s.generation++
	generation := s.generation

	s.tasks[key] = task{
		generation: generation,
		timer: time.AfterFunc(delay, func() {
			if !s.claim(key, generation) {
				return
			}
			defer s.done()
			fn()
		}),
	}
}

func (s *TimerScheduler) Cancel(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if t, ok := s.tasks[key]; ok {
		t.timer.Stop()
		delete(s.tasks, key)
	}
}

func (s *TimerScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}

// Pending returns the number of tasks waiting to run.
func (s *TimerScheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.tasks)
}

// Drain blocks until no task is pending or running, or ctx is done.
func (s *TimerScheduler) Drain(ctx context.Context) error {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for !s.idle() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

func (s *TimerScheduler) idle() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.tasks) == 0 && s.running == 0
}

func (s *TimerScheduler) done() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.running--
}

// claim removes the task if it is still the current one for key.
func (s *TimerScheduler) claim(key string, generation uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, ok := s.tasks[key]
	if !ok || t.generation != generation {
		return false
	}

	delete(s.tasks, key)
	s.running++
	return true
}
