// Package task implements the cancellable unit of work behind a transition.
//
// A Task moves Running → Committing → Committed, or Running → Cancelled.
// Cancellation is cooperative: it cancels the task's context and marks the
// task invalid, and continuations check Valid at every phase boundary.
// Once a task has begun committing it can no longer be cancelled.
package task

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrCancelled is reported by work whose task was cancelled, usually because
// a later request superseded it.
var ErrCancelled = errors.New("task cancelled")

// State is the lifecycle state of a Task.
type State int32

const (
	StateRunning State = iota
	StateCommitting
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is one "build and commit target T" unit of work.
type Task struct {
	id     uint64
	target string
	ctx    context.Context
	cancel context.CancelFunc
	state  atomic.Int32
	done   chan struct{}
	once   sync.Once
}

func newTask(parent context.Context, id uint64, target string) *Task {
	ctx, cancel := context.WithCancel(parent)
	return &Task{
		id:     id,
		target: target,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID is unique and increasing within the Tracker that started the task.
func (t *Task) ID() uint64 { return t.id }

// Target is the destination the task is building.
func (t *Task) Target() string { return t.target }

// Context is the cancellation token passed through the task's call chain.
func (t *Task) Context() context.Context { return t.ctx }

// State returns the current lifecycle state.
func (t *Task) State() State { return State(t.state.Load()) }

// Valid reports whether continuations of the task should still run.
func (t *Task) Valid() bool {
	switch t.State() {
	case StateRunning:
		return t.ctx.Err() == nil
	case StateCommitting:
		return true
	default:
		return false
	}
}

// Done is closed once the task is committed or cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel stops a running task. It returns false if the task was already
// committing, committed or cancelled.
func (t *Task) Cancel() bool {
	if !t.state.CompareAndSwap(int32(StateRunning), int32(StateCancelled)) {
		return false
	}
	t.cancel()
	t.close()
	return true
}

// BeginCommit moves a running task into its non-cancellable commit phase.
// It returns false if the task was cancelled or its context is done.
func (t *Task) BeginCommit() bool {
	if t.ctx.Err() != nil {
		t.Cancel()
		return false
	}
	return t.state.CompareAndSwap(int32(StateRunning), int32(StateCommitting))
}

// Finish marks a committing task committed and releases its context.
func (t *Task) Finish() bool {
	if !t.state.CompareAndSwap(int32(StateCommitting), int32(StateCommitted)) {
		return false
	}
	t.cancel()
	t.close()
	return true
}

func (t *Task) close() {
	t.once.Do(func() { close(t.done) })
}

// Tracker holds at most one running task per slot. Starting a new task
// cancels the previous one.
type Tracker struct {
	mu      sync.Mutex
	seq     atomic.Uint64
	current *Task
}

// Start creates a task for target and cancels the prior running task.
// A prior task that is already committing is left to finish.
func (tr *Tracker) Start(parent context.Context, target string) *Task {
	t := newTask(parent, tr.seq.Inc(), target)

	tr.mu.Lock()
	prev := tr.current
	tr.current = t
	tr.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	return t
}

// Current returns the most recently started task if it has not finished.
func (tr *Tracker) Current() *Task {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.current == nil {
		return nil
	}
	switch tr.current.State() {
	case StateRunning, StateCommitting:
		return tr.current
	default:
		return nil
	}
}

// IsCurrent reports whether t is the most recently started task.
func (tr *Tracker) IsCurrent(t *Task) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.current == t
}

// CancelCurrent cancels the current task, if any.
func (tr *Tracker) CancelCurrent() {
	tr.mu.Lock()
	cur := tr.current
	tr.mu.Unlock()
	if cur != nil {
		cur.Cancel()
	}
}

// Release forgets t if it is still the current task.
func (tr *Tracker) Release(t *Task) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.current == t {
		tr.current = nil
	}
}
