package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle position of a supervised subprocess. Transitions
// are driven only by process exit, deadline expiry, or cancellation.
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateTimedOut   State = "timed_out"
	StateCancelled  State = "cancelled"
	StateFailed     State = "failed"
)

// tailLines is how many trailing output lines are kept for error reporting.
const tailLines = 20

// killGrace bounds how long a terminated subprocess may linger between the
// kill signal and forced reaping.
const killGrace = 3 * time.Second

// ExecResult holds the outcome of a single supervised invocation.
type ExecResult struct {
	State    State
	ExitCode int      // Valid when State is Completed or Failed; -1 otherwise.
	Tail     []string // Last lines of combined output.
	Elapsed  time.Duration
	Err      error // Underlying failure for TimedOut, Cancelled and Failed.
}

// Execute runs bin with args under ctx, forwarding each output line to
// onLine as it arrives (stderr and stdout both; ffmpeg reports on stderr).
// The context carries both the caller's deadline and its cancellation;
// either one terminates the subprocess, with [killGrace] bounding the
// cleanup. onLine may be nil; it is never called concurrently.
func Execute(ctx context.Context, bin string, args []string, onLine func(string)) ExecResult {
	start := time.Now()
	res := ExecResult{State: StateNotStarted, ExitCode: -1}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.WaitDelay = killGrace

	stderr, err := cmd.StderrPipe()
	if err != nil {
		res.State = StateFailed
		res.Err = fmt.Errorf("stderr pipe: %w", err)
		return res
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		res.State = StateFailed
		res.Err = fmt.Errorf("stdout pipe: %w", err)
		return res
	}

	if err := cmd.Start(); err != nil {
		res.State = StateFailed
		res.Err = fmt.Errorf("start %s: %w", bin, err)
		return res
	}
	res.State = StateRunning

	// Both pipe readers funnel through one mutex so onLine sees a serial
	// stream and the tail stays ordered.
	var (
		mu   sync.Mutex
		tail []string
	)
	emit := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		tail = append(tail, line)
		if len(tail) > tailLines {
			tail = tail[len(tail)-tailLines:]
		}
		if onLine != nil {
			onLine(line)
		}
	}

	g := new(errgroup.Group)
	g.Go(func() error { return consumeLines(stderr, emit) })
	g.Go(func() error { return consumeLines(stdout, emit) })
	_ = g.Wait() // pipes close when the process exits
	waitErr := cmd.Wait()

	res.Elapsed = time.Since(start)
	res.Tail = tail

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		res.State = StateTimedOut
		res.Err = ctx.Err()
	case ctx.Err() == context.Canceled:
		res.State = StateCancelled
		res.Err = ctx.Err()
	case waitErr == nil:
		res.State = StateCompleted
		res.ExitCode = 0
	default:
		res.State = StateFailed
		res.Err = waitErr
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
	}
	return res
}

// consumeLines scans r and emits each non-empty line.
func consumeLines(r io.Reader, emit func(string)) error {
	sc := bufio.NewScanner(r)
	sc.Split(scanStatusLines)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			emit(line)
		}
	}
	return sc.Err()
}

// scanStatusLines splits on both \n and \r, so ffmpeg's carriage-return
// status updates stream incrementally instead of accumulating until exit.
func scanStatusLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
