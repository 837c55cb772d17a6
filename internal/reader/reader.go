// Package reader provides the concurrent file primitives collectors use to
// pull kernel-exposed text such as procfs entries.
//
// Both ReadAll and ForEachLine start one read per file at once. Completion
// handling stays on the calling goroutine: results are drained one at a time
// from a channel, so callbacks never run concurrently with each other.
package reader

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileReadError reports the first file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

type readResult struct {
	index   int
	path    string
	content string
	err     error
}

// startReads launches one goroutine per file. The channel is buffered to
// len(files) so that reads abandoned after an early return never block.
func startReads(files []string) <-chan readResult {
	results := make(chan readResult, len(files))
	for i, path := range files {
		go func(i int, path string) {
			data, err := os.ReadFile(path)
			results <- readResult{index: i, path: path, content: string(data), err: err}
		}(i, path)
	}
	return results
}

// next waits for the next completed read or for ctx to be done.
func next(ctx context.Context, results <-chan readResult) (readResult, error) {
	select {
	case <-ctx.Done():
		return readResult{}, ctx.Err()
	case r := <-results:
		if r.err != nil {
			return r, &FileReadError{Path: r.path, Err: r.err}
		}
		return r, nil
	}
}

// ReadAll reads every file concurrently and returns their contents joined in
// the order given, with no separator. The first failed read is returned as a
// *FileReadError without waiting for the remaining reads.
func ReadAll(ctx context.Context, files ...string) (string, error) {
	if len(files) == 0 {
		return "", nil
	}

	results := startReads(files)
	parts := make([]string, len(files))
	for range files {
		r, err := next(ctx, results)
		if err != nil {
			return "", err
		}
		parts[r.index] = r.content
	}

	return strings.Join(parts, ""), nil
}

// ForEachLine reads every file concurrently and calls onLine for each
// newline-separated segment. Content ending in a newline produces a final
// empty segment.
//
// Lines of one file arrive in file order. Files are delivered whole, in the
// order their reads complete. On failure, lines already handed to onLine are
// not retracted.
func ForEachLine(ctx context.Context, onLine func(line string), files ...string) error {
	results := startReads(files)
	for range files {
		r, err := next(ctx, results)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(r.content, "\n") {
			onLine(line)
		}
	}
	return nil
}
