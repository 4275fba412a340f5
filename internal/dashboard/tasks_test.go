package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bearwrap/internal/dashboard"
	"bearwrap/pkg/bear"
)

func TestStartRuns_StatusPerOutcome(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	run := func(_ context.Context, path string) ([]bear.Diagnostic, error) {
		switch path {
		case "clean.txt":
			return nil, nil
		case "dirty.txt":
			return []bear.Diagnostic{{File: path, Line: 1, Message: "bad", Severity: bear.Major}}, nil
		default:
			return nil, boom
		}
	}

	tasks, updates := dashboard.StartRuns(context.Background(),
		[]string{"clean.txt", "dirty.txt", "broken.txt"}, run)

	// Drain until completion.
	for range updates {
	}

	require.Len(t, tasks, 3)
	assert.Equal(t, dashboard.TaskClean, tasks[0].Status())
	assert.Equal(t, dashboard.TaskIssues, tasks[1].Status())
	require.Len(t, tasks[1].Diagnostics(), 1)
	assert.Equal(t, dashboard.TaskFailed, tasks[2].Status())
	assert.ErrorIs(t, tasks[2].Err(), boom)
}

func TestStartRuns_ReadsAreSafeWhileRunning(t *testing.T) {
	t.Parallel()

	paths := make([]string, 16)
	for i := range paths {
		paths[i] = fmt.Sprintf("file%d.txt", i)
	}
	run := func(_ context.Context, path string) ([]bear.Diagnostic, error) {
		return []bear.Diagnostic{{File: path, Line: 1, Message: "found", Severity: bear.Normal}}, nil
	}

	tasks, updates := dashboard.StartRuns(context.Background(), paths, run)

	// Read every task on every update, the way a view redraw does, while
	// other workers are still writing. The race detector covers this.
	for range updates {
		for _, task := range tasks {
			_ = task.Status()
			_ = task.Diagnostics()
			_ = task.Err()
		}
	}

	for _, task := range tasks {
		assert.Equal(t, dashboard.TaskIssues, task.Status())
	}
}

func TestStartRuns_EmitsRunningThenFinal(t *testing.T) {
	t.Parallel()

	run := func(context.Context, string) ([]bear.Diagnostic, error) { return nil, nil }
	_, updates := dashboard.StartRuns(context.Background(), []string{"only.txt"}, run)

	var statuses []dashboard.TaskStatus
	for u := range updates {
		statuses = append(statuses, u.Status)
	}
	require.Equal(t, []dashboard.TaskStatus{dashboard.TaskRunning, dashboard.TaskClean}, statuses)
}
