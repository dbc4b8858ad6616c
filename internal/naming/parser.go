package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix is the segment filename prefix written by the recorder.
const DefaultPrefix = "RecM0"

// timestampLayout is the reference layout for the date and time tokens
// embedded in a segment name (YYYYMMDD_HHMMSS).
const timestampLayout = "20060102_150405"

// Parse rejection reasons. Wrapped with per-name detail; match with errors.Is.
var (
	ErrPrefixMismatch      = errors.New("prefix mismatch")
	ErrTimestampUnparsable = errors.New("timestamp unparsable")
)

// ParsedName holds the structured result of segment filename parsing.
type ParsedName struct {
	// Unit is the camera/unit index that follows the prefix. Informational
	// only; ordering never consults it.
	Unit int

	// Timestamp is the recording instant encoded in the name, the primary
	// ordering key.
	Timestamp time.Time
}

// Pattern describes the segment naming scheme. The prefix is configurable;
// the timestamp token layout is fixed. Construct with [NewPattern].
type Pattern struct {
	Prefix string
	re     *regexp.Regexp
}

// NewPattern compiles a Pattern for the given case-sensitive prefix.
// An empty prefix falls back to [DefaultPrefix].
func NewPattern(prefix string) Pattern {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)_(\d{8})_(\d{6})`)
	return Pattern{Prefix: prefix, re: re}
}

// Parse validates a base filename (extension included or not) against the
// pattern and extracts its unit index and timestamp.
//
// Pure: no filesystem access; every failure path returns a wrapped
// [ErrPrefixMismatch] or [ErrTimestampUnparsable].
func (p Pattern) Parse(base string) (ParsedName, error) {
	if !strings.HasPrefix(base, p.Prefix) {
		return ParsedName{}, fmt.Errorf("%w: %q does not start with %q", ErrPrefixMismatch, base, p.Prefix)
	}

	m := p.re.FindStringSubmatch(base)
	if m == nil {
		return ParsedName{}, fmt.Errorf("%w: %q lacks a _YYYYMMDD_HHMMSS token pair", ErrTimestampUnparsable, base)
	}

	// time.Parse also validates the calendar (month 13, day 32, hour 25
	// all fail here despite matching the digit pattern).
	ts, err := time.Parse(timestampLayout, m[2]+"_"+m[3])
	if err != nil {
		return ParsedName{}, fmt.Errorf("%w: %q: %v", ErrTimestampUnparsable, base, err)
	}

	return ParsedName{Unit: atoi(m[1]), Timestamp: ts}, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
