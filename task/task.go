/*
Package task starts concurrent tasks, optionally with a handle to cancel them.

A permanent task runs for the remaining life of the process. A droppable task
is bound to a Handle; cancelling the handle cancels the task's context and
waits until the task function has returned. A panic inside a droppable task
is re-raised by Cancel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package task

import (
	"context"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// tracer traces with key 'livestyle.task'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.task")
}

// Func is the body of a task. It should return as soon as ctx is done.
type Func func(ctx context.Context)

// Start runs fn in its own goroutine for the remaining life of the process.
// Its context is never cancelled.
func Start(fn Func) {
	go fn(context.Background())
}

// Handle owns a droppable task.
type Handle struct {
	cancel context.CancelFunc
	wg     conc.WaitGroup
	once   sync.Once
}

// StartDroppable runs fn in its own goroutine, bound to the returned handle.
func StartDroppable(fn Func) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel}
	h.wg.Go(func() {
		fn(ctx)
	})
	return h
}

// Cancel cancels the task and blocks until it has terminated. When Cancel
// returns, the task function will not execute any more code.
// Calling Cancel more than once is a no-op.
//
// If the task has panicked, Cancel re-raises the panic.
func (h *Handle) Cancel() {
	if r := h.CancelAndRecover(); r != nil {
		panic(r)
	}
}

// CancelAndRecover is like Cancel, but returns a panic of the task instead
// of re-raising it.
func (h *Handle) CancelAndRecover() *panics.Recovered {
	if h == nil {
		return nil
	}
	var r *panics.Recovered
	h.once.Do(func() {
		h.cancel()
		r = h.wg.WaitAndRecover()
		if r != nil {
			tracer().Errorf("task panicked: %v", r.Value)
		} else {
			tracer().Debugf("task cancelled")
		}
	})
	return r
}

// Handles is a collection of task handles, cancelled together.
type Handles []*Handle

// CancelAll cancels every task in hs and waits for all of them to
// terminate, even if some of them have panicked. It returns the first
// panic, in order of hs.
func (hs Handles) CancelAll() *panics.Recovered {
	for _, h := range hs {
		if h != nil {
			h.cancel()
		}
	}
	var first *panics.Recovered
	for _, h := range hs {
		if r := h.CancelAndRecover(); r != nil && first == nil {
			first = r
		}
	}
	return first
}
