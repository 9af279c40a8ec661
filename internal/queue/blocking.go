package queue

import (
	"context"
	"sync"
	"time"

	"github.com/arloliu/go-minitel/internal/pool"
)

// Blocking is a goroutine-safe FIFO queue with bounded waits.
//
// A queue made by NewJoinable also tracks unfinished work: every item put
// counts as pending until a consumer calls Done for it, and Join blocks
// until no item is pending. A queue made by NewBlocking tracks nothing;
// its Join returns at once and Done panics. Drain removes every queued
// item in one step.
type Blocking[T any] struct {
	mu         sync.Mutex
	tracked    bool
	items      Queue[T]
	notify     chan struct{} // closed and replaced when items arrive
	unfinished int
	idle       chan struct{} // closed while unfinished == 0
}

// NewBlocking creates an empty blocking queue without Done/Join tracking.
func NewBlocking[T any](prealloc int) *Blocking[T] {
	idle := make(chan struct{})
	close(idle)

	return &Blocking[T]{
		items:  NewSliceQueue[T](prealloc),
		notify: make(chan struct{}),
		idle:   idle,
	}
}

// NewJoinable creates an empty blocking queue whose consumers report
// processed items with Done.
func NewJoinable[T any](prealloc int) *Blocking[T] {
	b := NewBlocking[T](prealloc)
	b.tracked = true

	return b
}

// Put appends items to the tail of the queue and wakes waiting consumers.
func (b *Blocking[T]) Put(items ...T) {
	if len(items) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, item := range items {
		b.items.Enqueue(item)
	}
	if b.tracked {
		if b.unfinished == 0 {
			b.idle = make(chan struct{})
		}
		b.unfinished += len(items)
	}

	close(b.notify)
	b.notify = make(chan struct{})
}

// Get removes the head of the queue, waiting up to timeout for an item.
// ok is false when the timeout expired first.
func (b *Blocking[T]) Get(timeout time.Duration) (T, bool) {
	timer := pool.GetTimer(timeout)
	defer pool.PutTimer(timer)

	return b.get(nil, timer.C)
}

// GetContext removes the head of the queue, waiting until ctx is done.
func (b *Blocking[T]) GetContext(ctx context.Context) (T, bool) {
	return b.get(ctx.Done(), nil)
}

// TryGet removes the head of the queue without waiting.
func (b *Blocking[T]) TryGet() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.items.Dequeue()
}

func (b *Blocking[T]) get(done <-chan struct{}, expired <-chan time.Time) (T, bool) {
	for {
		b.mu.Lock()
		item, ok := b.items.Dequeue()
		notify := b.notify
		b.mu.Unlock()

		if ok {
			return item, true
		}

		select {
		case <-notify:
		case <-done:
			var zero T
			return zero, false
		case <-expired:
			return b.TryGet()
		}
	}
}

// Drain atomically removes and returns every queued item. Drained items
// no longer count as unfinished.
func (b *Blocking[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := make([]T, 0, b.items.Length())
	for {
		item, ok := b.items.Dequeue()
		if !ok {
			break
		}
		drained = append(drained, item)
	}
	b.finish(len(drained))

	return drained
}

// Done marks one previously taken item as processed.
// It panics if called more often than items were put.
func (b *Blocking[T]) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unfinished == 0 {
		panic("queue: Done called more times than items were put")
	}
	b.finish(1)
}

func (b *Blocking[T]) finish(n int) {
	if n == 0 || b.unfinished == 0 {
		return
	}
	b.unfinished -= n
	if b.unfinished <= 0 {
		b.unfinished = 0
		close(b.idle)
	}
}

// Join blocks until every item put has been marked done or drained,
// or until ctx is done.
func (b *Blocking[T]) Join(ctx context.Context) error {
	b.mu.Lock()
	idle := b.idle
	b.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of queued items.
func (b *Blocking[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.items.Length()
}

// Unfinished returns the number of items not yet marked done.
func (b *Blocking[T]) Unfinished() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.unfinished
}
