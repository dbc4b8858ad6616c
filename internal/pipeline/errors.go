package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies terminal merge failures. Every hard failure surfaced by
// [Runner.Merge] carries exactly one of these.
type Kind string

const (
	KindSourceUnavailable        Kind = "source_unavailable"
	KindNoValidSegments          Kind = "no_valid_segments"
	KindToolUnavailable          Kind = "tool_unavailable"
	KindTimeout                  Kind = "timeout"
	KindToolExecutionFailed      Kind = "tool_execution_failed"
	KindOutputVerificationFailed Kind = "output_verification_failed"
	KindAlreadyRunning           Kind = "already_running"
	KindCancelled                Kind = "cancelled"
	KindOutputAlreadyExists      Kind = "output_already_exists"
)

// Error is a terminal merge failure: a machine-readable kind, human detail,
// and, when a subprocess was involved, the tail of its captured output.
type Error struct {
	Kind   Kind
	Detail string
	Tail   []string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the failure kind from err, or "" when err carries none
// (internal I/O failures outside the merge taxonomy).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func failf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), cause: cause}
}

// ctxError maps a context termination that fired between stages (before the
// subprocess ran) onto the taxonomy.
func ctxError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Detail: "deadline exceeded before the tool ran", cause: err}
	}
	return &Error{Kind: KindCancelled, Detail: "merge cancelled", cause: err}
}
