package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/panomux/internal/naming"
)

// Segment is one accepted merge candidate: an absolute path plus the
// metadata derived from its name at discovery time. Immutable afterwards.
type Segment struct {
	Path      string
	BaseName  string
	Unit      int       // Camera/unit index from the name. Informational only.
	Timestamp time.Time // Recording instant from the name; primary ordering key.
	Size      int64
}

// Rejection records one candidate that discovery turned away, and why.
// Rejections are soft diagnostics: they never abort a request on their own.
type Rejection struct {
	Path   string
	Reason string
}

// Discovery is the outcome of scanning a source. Accepted order is whatever
// the source yielded; only [Sequence] establishes the merge order.
type Discovery struct {
	Accepted []Segment
	Rejected []Rejection
}

// Discover scans src for segment candidates and validates each one against
// pat. Directory sources take only immediate regular files whose extension
// is in extensions (lowercase, dotted; empty means no extension filter);
// explicit file lists skip the extension filter, matching how operators pick
// files by hand. Zero-length and unstatable files are rejected so obviously
// corrupt inputs never reach the tool.
//
// The returned error is a [KindSourceUnavailable] failure when the source
// itself is unusable; per-file problems land in [Discovery.Rejected].
func Discover(src Source, pat naming.Pattern, extensions []string) (Discovery, error) {
	switch src.kind {
	case sourceDir:
		return discoverDir(src.dir, pat, extensions)
	default:
		return discoverFiles(src.files, pat)
	}
}

func discoverDir(dir string, pat naming.Pattern, extensions []string) (Discovery, error) {
	var d Discovery

	entries, err := os.ReadDir(dir)
	if err != nil {
		return d, wrapf(KindSourceUnavailable, err, "cannot list source directory %s", dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return d, wrapf(KindSourceUnavailable, err, "cannot resolve source directory %s", dir)
	}

	exts := extensionSet(extensions)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		// Entries outside the extension filter are not candidates at all;
		// only plausible segment files produce rejection diagnostics.
		if len(exts) > 0 && !exts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}

		path := filepath.Join(absDir, e.Name())
		parsed, err := pat.Parse(e.Name())
		if err != nil {
			d.Rejected = append(d.Rejected, Rejection{Path: path, Reason: rejectReason(err)})
			continue
		}
		fi, err := e.Info()
		if err != nil {
			d.Rejected = append(d.Rejected, Rejection{Path: path, Reason: "file unreadable: " + err.Error()})
			continue
		}
		if fi.Size() == 0 {
			d.Rejected = append(d.Rejected, Rejection{Path: path, Reason: "zero-length file"})
			continue
		}
		d.Accepted = append(d.Accepted, Segment{
			Path:      path,
			BaseName:  e.Name(),
			Unit:      parsed.Unit,
			Timestamp: parsed.Timestamp,
			Size:      fi.Size(),
		})
	}
	return d, nil
}

func discoverFiles(paths []string, pat naming.Pattern) (Discovery, error) {
	var d Discovery

	if len(paths) == 0 {
		return d, failf(KindSourceUnavailable, "explicit file list is empty")
	}

	for _, p := range paths {
		base := filepath.Base(p)
		abs, err := filepath.Abs(p)
		if err != nil {
			d.Rejected = append(d.Rejected, Rejection{Path: p, Reason: "file unreadable: " + err.Error()})
			continue
		}
		parsed, err := pat.Parse(base)
		if err != nil {
			d.Rejected = append(d.Rejected, Rejection{Path: abs, Reason: rejectReason(err)})
			continue
		}
		fi, err := os.Stat(abs)
		if err != nil {
			d.Rejected = append(d.Rejected, Rejection{Path: abs, Reason: "file unreadable: " + err.Error()})
			continue
		}
		if !fi.Mode().IsRegular() {
			d.Rejected = append(d.Rejected, Rejection{Path: abs, Reason: "not a regular file"})
			continue
		}
		if fi.Size() == 0 {
			d.Rejected = append(d.Rejected, Rejection{Path: abs, Reason: "zero-length file"})
			continue
		}
		d.Accepted = append(d.Accepted, Segment{
			Path:      abs,
			BaseName:  base,
			Unit:      parsed.Unit,
			Timestamp: parsed.Timestamp,
			Size:      fi.Size(),
		})
	}
	return d, nil
}

func extensionSet(extensions []string) map[string]bool {
	m := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		m[strings.ToLower(e)] = true
	}
	return m
}

// rejectReason maps a parse failure onto the short diagnostic vocabulary
// used in reports and tables.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, naming.ErrPrefixMismatch):
		return "prefix mismatch"
	case errors.Is(err, naming.ErrTimestampUnparsable):
		return "timestamp unparsable"
	}
	return err.Error()
}
