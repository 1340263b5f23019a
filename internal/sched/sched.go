// Package sched runs one-shot and recurring callbacks against a virtual clock
// advanced by the frame loop. Tasks belong to an epoch; starting a new epoch
// cancels every task of the previous one, including tasks re-armed from
// inside their own callbacks.
package sched

import "time"

// Scheduler holds pending tasks. It is not safe for concurrent use; the frame
// loop owns it.
type Scheduler struct {
	now   time.Duration
	epoch uint64
	seq   uint64
	tasks []*task
}

type task struct {
	id     uint64
	epoch  uint64
	due    time.Duration
	every  time.Duration // zero for one-shot tasks
	fn     func()
	cancel bool
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Epoch returns the current generation.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// NewEpoch cancels all pending tasks and returns the new generation.
func (s *Scheduler) NewEpoch() uint64 {
	s.epoch++
	for _, t := range s.tasks {
		t.cancel = true
	}
	s.tasks = s.tasks[:0]
	return s.epoch
}

// After runs fn once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) {
	s.add(delay, 0, fn)
}

// Every runs fn every interval, first after one interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, every time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{id: s.seq, epoch: s.epoch, due: s.now + delay, every: every, fn: fn}
	s.tasks = append(s.tasks, t)
}

// Advance moves the clock forward by dt and fires due tasks in due order,
// ties broken by scheduling order. A recurring task fires once per elapsed
// interval. Tasks scheduled by callbacks fire in the same call when due.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.every > 0 {
			t.due += t.every
		} else {
			t.cancel = true
		}
		// Stale tasks never fire, even if still referenced.
		if t.epoch == s.epoch {
			t.fn()
		}
	}
	s.now = target
	s.compact()
}

// next returns the earliest live task due at or before target.
func (s *Scheduler) next(target time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.cancel || t.epoch != s.epoch || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancel && t.epoch == s.epoch {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
