package services

import (
	"sync"
	"time"
)

// Scheduler runs one recurring task per gathering. Tasks are tracked in a
// registry so terminal transitions can cancel them exactly once and tests
// can assert nothing leaked.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[string]chan struct{}
}

// NewScheduler returns an empty task registry
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]chan struct{})}
}

// Start launches a recurring task keyed by id. Starting an id that is
// already running is a no-op.
func (s *Scheduler) Start(id string, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.tasks[id]; running {
		return
	}

	stop := make(chan struct{})
	s.tasks[id] = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()
}

// Cancel stops the task keyed by id. Cancelling an unknown or already
// cancelled id is a no-op, so terminal transitions can call it freely.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stop, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	close(stop)
}

// Active reports whether a task is registered for id
func (s *Scheduler) Active(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// ActiveCount reports how many tasks are running
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
