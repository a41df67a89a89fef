// Package schedule runs keyed tasks after a quiet period. Scheduling a key
// again before its timer fires replaces the pending task and restarts the
// period, so a burst of requests collapses into the last one.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/inkrank/doodle/log"
)

// DefaultDelay is the quiet period used for inference requests.
const DefaultDelay = 140 * time.Millisecond

// Task is the scheduled work. ctx is cancelled when the scheduler stops.
type Task func(ctx context.Context)

type pending struct {
	timer *time.Timer
	gen   uint64
}

// Scheduler is safe for concurrent use.
type Scheduler struct {
	delay time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	gen     uint64
	pending map[string]*pending
	closed  bool
	running sync.WaitGroup
}

func New(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		delay:   delay,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]*pending),
	}
}

func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Schedule arranges for fn to run once the quiet period elapses, cancelling
// whatever was pending under key. A task already running is left alone.
func (s *Scheduler) Schedule(key string, fn Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		log.Trace.Printf("schedule: %s superseded", key)
	}

	s.gen++
	gen := s.gen
	s.pending[key] = &pending{
		gen:   gen,
		timer: time.AfterFunc(s.delay, func() { s.fire(key, gen, fn) }),
	}
}

func (s *Scheduler) fire(key string, gen uint64, fn Task) {
	s.mu.Lock()
	p, ok := s.pending[key]
	// a timer that lost the race against Stop/Schedule finds a newer gen
	if !ok || p.gen != gen || s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.running.Add(1)
	s.mu.Unlock()

	defer s.running.Done()
	fn(s.ctx)
}

// Cancel drops the pending task for key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(s.pending, key)
	return true
}

// Pending reports whether a task is waiting for its quiet period.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels every pending task, cancels the context handed to running
// tasks and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for key, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	s.cancel()
	s.running.Wait()
}
