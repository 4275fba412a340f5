package bear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// stdinPayload is the JSON object fed to tools that take their input on
// stdin: the analyzed file name, its full content, and the resolved
// settings.
type stdinPayload struct {
	Filename string         `json:"filename"`
	File     string         `json:"file"`
	Settings map[string]any `json:"settings"`
}

// runProcess spawns the tool and captures its stdout and exit status. A
// non-zero exit is not an error here: linters conventionally exit non-zero
// when they find something, and the output parser decides whether the run
// produced anything usable. Cancelling ctx kills the child rather than
// leaking it.
func (b *Bear) runProcess(ctx context.Context, inv Invocation, filename string, file []string, settings Settings) (string, int, error) {
	cmd := exec.CommandContext(ctx, inv.Executable, inv.Args...)
	cmd.Env = append(os.Environ(), b.spec.Env...)
	cmd.Stderr = io.Discard

	if b.spec.UseStdin {
		payload, err := json.Marshal(stdinPayload{
			Filename: filename,
			File:     strings.Join(file, ""),
			Settings: settings,
		})
		if err != nil {
			return "", 0, fmt.Errorf("encode stdin payload: %w", err)
		}
		cmd.Stdin = bytes.NewReader(payload)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", 0, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Exit code is informational only; keep the output.
			return stdout.String(), exitErr.ExitCode(), nil
		}
		return "", 0, fmt.Errorf("%w: %s: %v", ErrSpawn, inv.Executable, err)
	}
	return stdout.String(), 0, nil
}
