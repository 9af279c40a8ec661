// Package task runs and supervises the long-lived goroutines of a link.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-minitel/logger"
)

// ErrStopped is returned when starting a task on a stopped Manager.
var ErrStopped = errors.New("task: manager already stopped")

// startTimeout bounds how long Start waits for a goroutine to come up.
const startTimeout = 5 * time.Second

// Func is one iteration of a task. It returns true to keep running and
// false to end the goroutine.
type Func func() bool

// Manager manages the lifecycle of goroutines (tasks).
//
// Each task runs its Func in a loop until the Func returns false, the
// Func panics, or the Manager is stopped. Wait blocks until every task has
// returned; afterwards the Manager can start new tasks again.
//
//	mgr := task.NewManager(ctx, logger)
//	_ = mgr.Start("receiver", func() bool {
//	    // ... one unit of work ...
//	    return true
//	})
//	mgr.Stop()
//	mgr.Wait()
type Manager struct {
	pctx   context.Context
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger logger.Logger
	count  atomic.Int32
	mu     sync.RWMutex // protect ctx and cancel
	taskMu sync.RWMutex // protect task creation during Wait()
}

// NewManager creates a Manager whose tasks stop when ctx is done.
func NewManager(ctx context.Context, l logger.Logger) *Manager {
	if l == nil {
		l = logger.GetLogger()
	}
	mgr := &Manager{pctx: ctx, logger: l}
	mgr.ctx, mgr.cancel = context.WithCancel(ctx)

	return mgr
}

func (mgr *Manager) getContext() context.Context {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()

	return mgr.ctx
}

// Context returns the context observed by running tasks.
func (mgr *Manager) Context() context.Context {
	return mgr.getContext()
}

// Start starts a goroutine running fn in a loop. It returns once the
// goroutine is running.
func (mgr *Manager) Start(name string, fn Func) error {
	mgr.logger.Debug("start task", "name", name)

	ctx := mgr.getContext()
	select {
	case <-ctx.Done():
		return ErrStopped
	default:
	}

	started := make(chan struct{})

	mgr.taskMu.RLock()
	mgr.wg.Add(1)
	mgr.count.Add(1)
	go func() {
		defer mgr.wg.Done()
		defer func() {
			mgr.count.Add(-1)
			mgr.logger.Debug("task terminated", "name", name, "task_count", mgr.TaskCount())
		}()

		close(started)
		mgr.runLoop(name, fn)
	}()
	mgr.taskMu.RUnlock()

	select {
	case <-started:
		return nil
	case <-time.After(startTimeout):
		return fmt.Errorf("task: timeout waiting for %s to start", name)
	}
}

// runLoop runs fn until it returns false, panics, or the manager stops.
func (mgr *Manager) runLoop(name string, fn Func) {
	defer func() {
		if r := recover(); r != nil {
			mgr.logger.Error("panic in task loop", "name", name, "panic", r)
		}
	}()

	for {
		ctx := mgr.getContext()
		select {
		case <-ctx.Done():
			return
		default:
			if !fn() {
				return
			}
		}
	}
}

// Stop signals all running tasks to end after their current iteration.
func (mgr *Manager) Stop() {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if mgr.cancel != nil {
		mgr.cancel()
	}
}

// Wait waits for all tasks to terminate, then re-arms the manager.
func (mgr *Manager) Wait() {
	mgr.taskMu.Lock()
	defer mgr.taskMu.Unlock()

	mgr.wg.Wait()

	mgr.mu.Lock()
	mgr.cancel()
	mgr.ctx, mgr.cancel = context.WithCancel(mgr.pctx)
	mgr.mu.Unlock()
}

// WaitTimeout is like Wait but gives up after d. It reports whether every
// task terminated in time. On timeout the manager is stopped so that
// lagging tasks end after their current iteration.
func (mgr *Manager) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		mgr.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		mgr.Stop()
		return false
	}
}

// TaskCount returns the number of currently running goroutines.
func (mgr *Manager) TaskCount() int {
	return int(mgr.count.Load())
}
