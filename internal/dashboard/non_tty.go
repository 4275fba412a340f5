package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"bearwrap/internal/render"
)

// RunNonTTY analyzes the files with live prefixed progress lines instead of
// the interactive view, for pipes and CI logs. It returns the final task
// states once every run has finished.
func RunNonTTY(ctx context.Context, paths []string, run RunFunc, out io.Writer) []*Task {
	tasks, updates := StartRuns(ctx, paths, run)
	for update := range updates {
		task := tasks[update.Index]
		switch update.Status {
		case TaskRunning:
			fmt.Fprintf(out, "[%s] analyzing\n", task.Path)
		case TaskFailed:
			fmt.Fprintf(out, "[%s] failed: %v\n", task.Path, update.Err)
		case TaskClean:
			fmt.Fprintf(out, "[%s] no issues\n", task.Path)
		default:
			for _, d := range update.Diagnostics {
				fmt.Fprintf(out, "[%s] %s\n", task.Path, render.PlainString(d))
			}
		}
	}
	writeSummary(out, tasks)
	return tasks
}

func writeSummary(out io.Writer, tasks []*Task) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	for _, task := range tasks {
		glyph := "+"
		switch task.Status() {
		case TaskFailed:
			glyph = "x"
		case TaskIssues:
			glyph = "!"
		}
		duration := task.Duration().Round(10 * time.Millisecond)
		fmt.Fprintf(out, "  %s %s (%d issues, %s)\n", glyph, task.Path, len(task.Diagnostics()), duration)
	}
}
