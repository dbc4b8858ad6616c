package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/backmassage/panomux/internal/ffmpeg"
)

// executeMerge runs the resolved tool against the manifest under the
// configured wall-clock timeout, forwarding output lines to onLine, and maps
// how the subprocess ended onto the merge error taxonomy. On any failure the
// partial output is removed; nothing half-written survives a request.
func executeMerge(ctx context.Context, bin string, args []string, outputPath string, timeout time.Duration, onLine func(string)) (time.Duration, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := runCtx.Err(); err != nil {
		return 0, ctxError(err)
	}

	res := ffmpeg.Execute(runCtx, bin, args, onLine)

	switch res.State {
	case ffmpeg.StateCompleted:
		if verr := verifyOutput(outputPath); verr != nil {
			verr.Tail = res.Tail
			return res.Elapsed, verr
		}
		return res.Elapsed, nil

	case ffmpeg.StateTimedOut:
		os.Remove(outputPath)
		e := wrapf(KindTimeout, res.Err, "tool terminated after exceeding the %s timeout", timeout)
		e.Tail = res.Tail
		return res.Elapsed, e

	case ffmpeg.StateCancelled:
		os.Remove(outputPath)
		return res.Elapsed, wrapf(KindCancelled, res.Err, "merge cancelled while the tool was running")

	default: // StateFailed, StateNotStarted
		os.Remove(outputPath)
		e := wrapf(KindToolExecutionFailed, res.Err, "tool exited with code %d", res.ExitCode)
		e.Tail = res.Tail
		return res.Elapsed, e
	}
}

// verifyOutput closes the gap where the tool exits 0 without writing a
// usable file: the output must exist and be non-empty.
func verifyOutput(path string) *Error {
	fi, err := os.Stat(path)
	if err != nil {
		return wrapf(KindOutputVerificationFailed, err, "tool exited cleanly but wrote no output at %s", path)
	}
	if fi.Size() == 0 {
		os.Remove(path)
		return failf(KindOutputVerificationFailed, "tool exited cleanly but the output %s is empty", path)
	}
	return nil
}
