// Package autosave implements the debounced write-back that follows every field edit.
package autosave

import (
	"sync"
	"time"
)

// Token identifies a scheduled callback.
type Token uint64

// Scheduler runs a callback after a delay unless it is cancelled first.
type Scheduler interface {
	Schedule(fn func(), delay time.Duration) Token
	Cancel(t Token) bool
}

// TimerScheduler schedules callbacks on runtime timers.
type TimerScheduler struct {
	mu     sync.Mutex
	next   Token
	timers map[Token]*time.Timer
}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[Token]*time.Timer)}
}

// Schedule arms a timer that runs fn on its own goroutine after delay.
func (s *TimerScheduler) Schedule(fn func(), delay time.Duration) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	tok := s.next
	s.timers[tok] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, tok)
		s.mu.Unlock()
		fn()
	})
	return tok
}

// Cancel stops the timer for t. It reports whether the callback was prevented from running.
func (s *TimerScheduler) Cancel(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[t]
	if !ok {
		return false
	}
	delete(s.timers, t)
	return timer.Stop()
}

// ManualScheduler is a deterministic Scheduler driven by Advance. Callbacks run on
// the goroutine calling Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	next  Token
	tasks map[Token]manualTask
}

type manualTask struct {
	due time.Duration
	fn  func()
}

// NewManualScheduler creates a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[Token]manualTask)}
}

func (s *ManualScheduler) Schedule(fn func(), delay time.Duration) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.tasks[s.next] = manualTask{due: s.now + delay, fn: fn}
	return s.next
}

func (s *ManualScheduler) Cancel(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t]; !ok {
		return false
	}
	delete(s.tasks, t)
	return true
}

// Advance moves the clock forward by d and runs every callback that came due, in
// due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var (
			found bool
			tok   Token
			task  manualTask
		)
		for t, candidate := range s.tasks {
			if candidate.due > s.now {
				continue
			}
			if !found || candidate.due < task.due || (candidate.due == task.due && t < tok) {
				found, tok, task = true, t, candidate
			}
		}
		if found {
			delete(s.tasks, tok)
		}
		s.mu.Unlock()

		if !found {
			return
		}
		task.fn()
	}
}

// Pending reports how many callbacks are scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
