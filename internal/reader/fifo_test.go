//go:build linux || darwin

package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// makeFIFO creates a named pipe whose reads block until release is called.
func makeFIFO(t *testing.T, dir, name string) (path string, release func(content string)) {
	t.Helper()
	path = filepath.Join(dir, name)
	require.NoError(t, unix.Mkfifo(path, 0o600))

	var once sync.Once
	release = func(content string) {
		once.Do(func() {
			w, err := os.OpenFile(path, os.O_WRONLY, 0)
			if err != nil {
				t.Errorf("open fifo for write: %v", err)
				return
			}
			_, _ = w.WriteString(content)
			_ = w.Close()
		})
	}
	return path, release
}

func TestReadAll_OutOfOrderCompletion(t *testing.T) {
	dir := t.TempDir()
	slow, release := makeFIFO(t, dir, "slow")
	fast := writeFile(t, dir, "fast", "second")

	type outcome struct {
		content string
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		content, err := ReadAll(context.Background(), slow, fast)
		done <- outcome{content, err}
	}()

	// Give the fast read time to finish before the slow one can.
	time.Sleep(50 * time.Millisecond)
	release("first")

	select {
	case got := <-done:
		require.NoError(t, got.err)
		assert.Equal(t, "firstsecond", got.content)
	case <-time.After(5 * time.Second):
		t.Fatal("ReadAll did not return")
	}
}

func TestReadAll_FailureDoesNotWaitForPendingReads(t *testing.T) {
	dir := t.TempDir()
	stuck, release := makeFIFO(t, dir, "stuck")
	t.Cleanup(func() { release("") })
	missing := filepath.Join(dir, "missing")

	done := make(chan error, 1)
	go func() {
		_, err := ReadAll(context.Background(), stuck, missing)
		done <- err
	}()

	select {
	case err := <-done:
		var readErr *FileReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, missing, readErr.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("ReadAll waited for a blocked read")
	}
}

func TestForEachLine_DeliversInCompletionOrder(t *testing.T) {
	dir := t.TempDir()
	slow, release := makeFIFO(t, dir, "slow")
	fast := writeFile(t, dir, "fast", "f1\nf2")

	fastDone := make(chan struct{})
	var lines []string
	done := make(chan error, 1)
	go func() {
		done <- ForEachLine(context.Background(), func(line string) {
			lines = append(lines, line)
			if line == "f2" {
				close(fastDone)
			}
		}, slow, fast)
	}()

	select {
	case <-fastDone:
	case <-time.After(5 * time.Second):
		release("")
		t.Fatal("fast file lines never delivered")
	}
	release("s1\ns2")

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Equal(t, []string{"f1", "f2", "s1", "s2"}, lines)
	case <-time.After(5 * time.Second):
		t.Fatal("ForEachLine did not return")
	}
}

func TestReadAll_ContextCancelWhileBlocked(t *testing.T) {
	dir := t.TempDir()
	stuck, release := makeFIFO(t, dir, "stuck")
	t.Cleanup(func() { release("") })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ReadAll(ctx, stuck)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
