// Package notify schedules follow-up alerts for insights the user has not
// resolved yet. Follow-ups are held in a time-ordered heap and emitted on a
// buffered channel when due; a slow consumer loses events rather than
// blocking the loop.
package notify

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidDueTime = errors.New("notify: invalid due time")

// FollowUp is one pending alert for an insight.
type FollowUp struct {
	InsightID int
	Title     string
	Company   string
	DueAt     time.Time
}

type queueItem struct {
	followUp FollowUp
}

type followUpQueue []queueItem

func (q followUpQueue) Len() int { return len(q) }

func (q followUpQueue) Less(i, j int) bool {
	return q[i].followUp.DueAt.Before(q[j].followUp.DueAt)
}

func (q followUpQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *followUpQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *followUpQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   followUpQueue
	out     chan FollowUp
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(followUpQueue, 0),
		out:    make(chan FollowUp, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan FollowUp {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(f FollowUp) error {
	if f.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("notify: engine stopped")
	}

	heap.Push(&e.queue, queueItem{followUp: f})
	e.signalWakeup()
	return nil
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, f := range due {
				select {
				case e.out <- f:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (FollowUp, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return FollowUp{}, false
	}
	return e.queue[0].followUp, true
}

func (e *Engine) popDue(now time.Time) []FollowUp {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]FollowUp, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].followUp
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.followUp)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
