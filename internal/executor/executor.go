// Package executor runs external helper commands on behalf of collectors.
// Every call spawns exactly one process, feeds it an empty standard input,
// and captures standard output as text.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// SpawnError reports that a command could not be started at all, for example
// because the executable does not exist.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports that a command ran but exited with a non-zero status.
// Code is -1 when the process was terminated by a signal.
type ExitError struct {
	Path string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited abnormally, code: %d", e.Path, e.Code)
}

// Exec runs path with args and returns everything the process wrote to
// standard output. Output is discarded when the process exits non-zero.
// Standard error is not captured.
func Exec(ctx context.Context, path string, args ...string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Path: path, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("running %s: %w", path, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{Path: path, Code: exitErr.ExitCode()}
		}
		return "", fmt.Errorf("waiting for %s: %w", path, err)
	}

	return stdout.String(), nil
}
