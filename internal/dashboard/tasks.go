// Package dashboard shows a live view of a multi-file analysis run: one
// task per analyzed file, a status list on the left and the selected file's
// diagnostics on the right. Each file still gets its own independent
// blocking pipeline; the dashboard only watches.
package dashboard

import (
	"context"
	"sync"
	"time"

	"bearwrap/pkg/bear"
)

// TaskStatus represents the runtime state of one file's analysis.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskClean
	TaskIssues
	TaskFailed
)

// RunFunc analyzes one file and returns its diagnostics.
type RunFunc func(ctx context.Context, path string) ([]bear.Diagnostic, error)

// Task tracks the analysis of one file. Workers write its state while the
// view reads it, so everything mutable is behind the mutex; use the
// accessors.
type Task struct {
	Path string

	mu          sync.Mutex
	status      TaskStatus
	diagnostics []bear.Diagnostic
	err         error
	startedAt   time.Time
	finishedAt  time.Time
}

// Status returns the task's current state.
func (t *Task) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Diagnostics returns the findings of a finished task.
func (t *Task) Diagnostics() []bear.Diagnostic {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.diagnostics
}

// Err returns the failure of a finished task, nil otherwise.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Duration reports how long the analysis ran.
func (t *Task) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finishedAt.Sub(t.startedAt)
}

func (t *Task) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = time.Now()
	t.status = TaskRunning
}

func (t *Task) finish(diags []bear.Diagnostic, err error) TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finishedAt = time.Now()
	switch {
	case err != nil:
		t.status = TaskFailed
		t.err = err
	case len(diags) == 0:
		t.status = TaskClean
	default:
		t.status = TaskIssues
		t.diagnostics = diags
	}
	return t.status
}

// TaskUpdate describes a runtime change streamed to the TUI.
type TaskUpdate struct {
	Index       int
	Status      TaskStatus
	Diagnostics []bear.Diagnostic
	Err         error
}

// StartRuns analyzes all files concurrently, one child process per file, and
// streams updates. The returned channel closes when every run has finished.
func StartRuns(ctx context.Context, paths []string, run RunFunc) ([]*Task, <-chan TaskUpdate) {
	updates := make(chan TaskUpdate)
	tasks := make([]*Task, len(paths))

	var wg sync.WaitGroup
	wg.Add(len(paths))
	for i, path := range paths {
		tasks[i] = &Task{Path: path}
		go func(index int, task *Task) {
			defer wg.Done()

			task.start()
			updates <- TaskUpdate{Index: index, Status: TaskRunning}

			diags, err := run(ctx, task.Path)
			status := task.finish(diags, err)
			updates <- TaskUpdate{Index: index, Status: status, Diagnostics: diags, Err: err}
		}(i, tasks[i])
	}

	go func() {
		wg.Wait()
		close(updates)
	}()

	return tasks, updates
}
