package app

import "time"

// Scheduler runs deferred work. Schedule must not invoke fn synchronously; the
// returned cancel func stops fn from running if it has not started yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules work on runtime timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
