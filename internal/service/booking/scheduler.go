package booking

import (
	"sync"
	"time"
)

// Scheduler runs delayed jobs keyed by booking id. Every job can be
// cancelled through its Task or by id, and Stop cancels everything still
// pending.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*Task
	stopped bool
	running sync.WaitGroup
}

type Task struct {
	id        string
	timer     *time.Timer
	scheduler *Scheduler
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*Task)}
}

// Schedule runs fn once after delay. A job already scheduled under id is
// replaced. After Stop it returns nil and fn never runs.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	if prev, ok := s.tasks[id]; ok {
		prev.timer.Stop()
	}

	task := &Task{id: id, scheduler: s}
	task.timer = time.AfterFunc(delay, func() {
		if !s.start(task) {
			return
		}
		defer s.running.Done()
		fn()
	})
	s.tasks[id] = task
	return task
}

// Cancel stops the job scheduled under id. It reports whether a pending
// job was stopped.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	task, ok := s.tasks[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return task.Cancel()
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels pending jobs and waits for the ones already running. It must
// not be called from inside a job.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, task := range s.tasks {
		task.timer.Stop()
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	s.running.Wait()
}

// start claims task for execution and counts it as running.
func (s *Scheduler) start(task *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.tasks[task.id] != task {
		return false
	}
	delete(s.tasks, task.id)
	s.running.Add(1)
	return true
}

// release removes task from the pending set. It returns false when the task
// was already cancelled or replaced.
func (s *Scheduler) release(task *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[task.id] != task {
		return false
	}
	delete(s.tasks, task.id)
	return true
}

func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	if !t.scheduler.release(t) {
		return false
	}
	t.timer.Stop()
	return true
}
