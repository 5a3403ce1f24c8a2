package app_test

import (
	"sync"
	"time"

	"image-quiz-service/internal/domain"
)

// manualScheduler fires tasks only when the test advances its clock.
type manualScheduler struct {
	mu           sync.Mutex
	now          time.Duration
	tasks        []*scheduledTask
	ignoreCancel bool
}

type scheduledTask struct {
	at       time.Duration
	fn       func()
	canceled bool
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &scheduledTask{at: s.now + d, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.ignoreCancel {
			task.canceled = true
		}
	}
}

// Advance moves the clock forward and runs every due task in schedule order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due, pending []*scheduledTask
	for _, task := range s.tasks {
		switch {
		case task.canceled:
		case task.at <= s.now:
			due = append(due, task)
		default:
			pending = append(pending, task)
		}
	}
	s.tasks = pending
	s.mu.Unlock()

	for _, task := range due {
		task.fn()
	}
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.canceled {
			n++
		}
	}
	return n
}

type recordingSink struct {
	mu       sync.Mutex
	commands []domain.Command
}

func (s *recordingSink) Emit(cmd domain.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
}

func (s *recordingSink) count(t domain.CommandType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, cmd := range s.commands {
		if cmd.Type == t {
			n++
		}
	}
	return n
}

func (s *recordingSink) last(t domain.CommandType) (domain.Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.commands) - 1; i >= 0; i-- {
		if s.commands[i].Type == t {
			return s.commands[i], true
		}
	}
	return domain.Command{}, false
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = nil
}
