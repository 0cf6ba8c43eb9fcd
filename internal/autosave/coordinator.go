package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last edit before the document is written.
const DefaultDelay = 500 * time.Millisecond

// Hooks receives coordinator activity, typically to feed metrics.
type Hooks interface {
	Rearmed()
	Fired()
}

// Coordinator is a trailing-edge debouncer holding at most one live token. Every Touch
// cancels the pending callback and schedules a fresh one; when the quiet period
// elapses fire runs once.
type Coordinator struct {
	sched Scheduler
	delay time.Duration
	fire  func()
	hooks Hooks

	mu      sync.Mutex
	token   Token
	gen     uint64
	pending bool
	running sync.WaitGroup
}

// NewCoordinator creates a coordinator that calls fire after delay of inactivity.
// A non-positive delay selects DefaultDelay. hooks may be nil.
func NewCoordinator(sched Scheduler, delay time.Duration, fire func(), hooks Hooks) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coordinator{sched: sched, delay: delay, fire: fire, hooks: hooks}
}

// Touch records a mutation and restarts the quiet period.
func (c *Coordinator) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending {
		c.sched.Cancel(c.token)
		if c.hooks != nil {
			c.hooks.Rearmed()
		}
	}
	c.gen++
	gen := c.gen
	c.token = c.sched.Schedule(func() { c.run(gen) }, c.delay)
	c.pending = true
}

func (c *Coordinator) run(gen uint64) {
	c.mu.Lock()
	// A timer that was already firing when Touch or Flush superseded it is stale.
	if !c.pending || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = false
	c.running.Add(1)
	c.mu.Unlock()

	defer c.running.Done()
	c.invoke()
}

// Flush runs a pending callback immediately. It reports whether anything was pending.
// Must not be called from inside fire.
func (c *Coordinator) Flush() bool {
	c.mu.Lock()
	if !c.pending {
		c.mu.Unlock()
		return false
	}
	c.sched.Cancel(c.token)
	c.pending = false
	c.mu.Unlock()

	c.invoke()
	return true
}

// Stop cancels a pending callback without running it and waits for a timer-driven
// callback that is already running. Must not be called from inside fire.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.pending {
		c.sched.Cancel(c.token)
		c.pending = false
	}
	c.mu.Unlock()

	c.running.Wait()
}

// Pending reports whether a callback is scheduled.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Coordinator) invoke() {
	if c.hooks != nil {
		c.hooks.Fired()
	}
	c.fire()
}
