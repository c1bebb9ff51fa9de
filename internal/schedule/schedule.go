// Package schedule runs deferred tasks on a cooperative, tick-driven timeline.
package schedule

import (
	"container/heap"
	"context"
	"time"
)

type task struct {
	at  time.Duration
	seq uint64
	ctx context.Context
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler holds tasks until the clock passes their due time. Nothing runs
// outside Advance, so tasks never race with the caller's frame.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New returns a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// After queues fn to run d after the current time. While a task is running the
// current time is that task's due time, so chained delays stay exact
// regardless of frame length.
func (s *Scheduler) After(ctx context.Context, d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.queue, &task{at: s.now + d, seq: s.seq, ctx: ctx, fn: fn})
}

// Advance moves the clock forward by dt seconds and runs every due task in
// due-time order. Tasks whose context is done are dropped. It returns the
// number of tasks run.
func (s *Scheduler) Advance(dt float64) int {
	return s.AdvanceBy(time.Duration(dt * float64(time.Second)))
}

// AdvanceBy is Advance with a duration.
func (s *Scheduler) AdvanceBy(d time.Duration) int {
	target := s.now + d
	ran := 0
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*task)
		if t.ctx != nil && t.ctx.Err() != nil {
			continue
		}
		s.now = t.at
		t.fn()
		ran++
	}
	s.now = target
	return ran
}

// Now returns the current scheduler time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued tasks whose context is still live.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if t.ctx == nil || t.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// Idle reports whether no live task is queued.
func (s *Scheduler) Idle() bool {
	return s.Pending() == 0
}
