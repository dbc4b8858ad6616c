// Package check resolves and validates the external ffmpeg binary.
//
// Resolution order: a bundled copy shipped next to the executable wins when
// it answers -version; otherwise the environment PATH is searched. Both
// candidates are validated by actually running them, so a present-but-broken
// binary never reaches the merge.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrToolNotFound is returned when neither a bundled nor a PATH ffmpeg is usable.
var ErrToolNotFound = errors.New("ffmpeg not found (no bundled copy, nothing usable on PATH)")

// versionProbeTimeout bounds one `ffmpeg -version` validation run.
const versionProbeTimeout = 10 * time.Second

// executablePath is swapped in tests to point resolution at a fixture tree.
var executablePath = os.Executable

// Tool describes a resolved ffmpeg binary.
type Tool struct {
	Path    string
	Version string // First line of `ffmpeg -version` output.
	Bundled bool   // True when the copy next to the executable won.
}

// Origin names where the binary came from, for logs and diagnostics.
func (t Tool) Origin() string {
	if t.Bundled {
		return "bundled"
	}
	return "PATH"
}

// Resolve locates the ffmpeg binary to run. The bundled copy under
// <exedir>/ffmpeg/bin/ is preferred; a bundled copy that fails -version is
// skipped rather than fatal. Returns [ErrToolNotFound] when nothing works.
func Resolve(ctx context.Context) (Tool, error) {
	if p := bundledPath(); p != "" {
		if v, err := probeVersion(ctx, p); err == nil {
			return Tool{Path: p, Version: v, Bundled: true}, nil
		}
	}

	p, err := exec.LookPath("ffmpeg")
	if err != nil {
		return Tool{}, ErrToolNotFound
	}
	v, err := probeVersion(ctx, p)
	if err != nil {
		return Tool{}, fmt.Errorf("%w: %s is on PATH but -version failed: %v", ErrToolNotFound, p, err)
	}
	return Tool{Path: p, Version: v}, nil
}

// Run prints the `check` diagnostics: where ffmpeg resolved from and what
// version it reports.
func Run(ctx context.Context, log *zap.Logger) error {
	tool, err := Resolve(ctx)
	if err != nil {
		log.Error("ffmpeg unavailable", zap.Error(err))
		return err
	}
	log.Info("ffmpeg resolved",
		zap.String("path", tool.Path),
		zap.String("origin", tool.Origin()))
	log.Info("ffmpeg version", zap.String("version", tool.Version))
	return nil
}

// --- internal helpers ---

// bundledPath returns the expected bundled ffmpeg location next to the
// running executable, or "" when no such file exists.
func bundledPath() string {
	exe, err := executablePath()
	if err != nil {
		return ""
	}
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	p := filepath.Join(filepath.Dir(exe), "ffmpeg", "bin", name)
	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		return ""
	}
	return p
}

// probeVersion runs `<bin> -version` under its own deadline and returns the
// first line of output.
func probeVersion(ctx context.Context, bin string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "-version").Output()
	if err != nil {
		return "", err
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	if first == "" {
		return "", errors.New("empty -version output")
	}
	return first, nil
}
