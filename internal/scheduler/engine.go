package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rohanmehra/habitd/internal/model"
)

var (
	ErrNoUpcomingOccurrence = errors.New("scheduler: no upcoming occurrence")
	ErrInvalidTriggerTime   = errors.New("scheduler: invalid trigger time")
)

type TriggerEvent struct {
	TaskID    string
	Title     string
	Day       string
	TriggerAt time.Time
}

type queueItem struct {
	task  model.Task
	event TriggerEvent
}

type triggerQueue []queueItem

func (q triggerQueue) Len() int { return len(q) }

func (q triggerQueue) Less(i, j int) bool {
	return q[i].event.TriggerAt.Before(q[j].event.TriggerAt)
}

func (q triggerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *triggerQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *triggerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   triggerQueue
	out     chan TriggerEvent
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
		queue:  make(triggerQueue, 0),
		out:    make(chan TriggerEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan TriggerEvent {
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

func (e *Engine) Schedule(task model.Task, after time.Time) error {
	at, ok, err := NextTrigger(task, after)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoUpcomingOccurrence
	}
	return e.ScheduleAt(task, at)
}

func (e *Engine) ScheduleAt(task model.Task, at time.Time) error {
	if at.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	heap.Push(&e.queue, queueItem{
		task: task,
		event: TriggerEvent{
			TaskID:    task.ID,
			Title:     task.Title,
			Day:       dayString(at),
			TriggerAt: at,
		},
	})
	e.signalWakeup()
	return nil
}

func (e *Engine) Drop(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := make(triggerQueue, 0, len(e.queue))
	for _, item := range e.queue {
		if item.event.TaskID != taskID {
			kept = append(kept, item)
		}
	}
	e.queue = kept
	heap.Init(&e.queue)
	e.signalWakeup()
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

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, item := range due {
				select {
				case e.out <- item.event:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
				e.requeue(item)
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

func (e *Engine) requeue(item queueItem) {
	if item.task.Repeat == model.RepeatNone || !item.task.Repeat.IsValid() {
		return
	}
	at, ok, err := NextTrigger(item.task, item.event.TriggerAt)
	if err != nil || !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	heap.Push(&e.queue, queueItem{
		task: item.task,
		event: TriggerEvent{
			TaskID:    item.task.ID,
			Title:     item.task.Title,
			Day:       dayString(at),
			TriggerAt: at,
		},
	})
	e.signalWakeup()
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (TriggerEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return TriggerEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []queueItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]queueItem, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.TriggerAt.After(now) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(queueItem))
	}
	return out
}

func dayString(t time.Time) string {
	return t.Format("2006-01-02")
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
