package port

import "time"

type Scheduler interface {
	// Schedule runs fn once after delay. A task already pending under key is cancelled first.
	Schedule(key string, delay time.Duration, fn func())
	// Cancel drops the task pending under key, if any.
	Cancel(key string)
	// Stop cancels every pending task. Tasks scheduled afterwards are ignored.
	Stop()
}
