// Package config holds runtime configuration: defaults, optional YAML file
// overlay, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backmassage/panomux/internal/naming"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Log levels accepted by [Config.LogLevel].
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// DefaultOutputName is the merged file name when the caller gives none.
const DefaultOutputName = "Panorama.mp4"

// DefaultTimeout bounds one ffmpeg invocation.
const DefaultTimeout = 5 * time.Minute

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from a YAML file, then mutated by flag binding before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Source selection (set from positional args; mutually exclusive).
	SourceDir   string
	SourceFiles []string

	// Output.
	OutputDir  string // Default: ".".
	OutputName string // Default: "Panorama.mp4". Bare file name, no separators.
	Overwrite  bool   // Caller's confirmation to replace an existing output.

	// Segment matching.
	Prefix     string   // Default: "RecM0". Case-sensitive name prefix.
	Extensions []string // Default: .mp4, .avi, .mov. Directory-mode filter.

	// Tool execution.
	Timeout time.Duration // Default: 5m. Wall clock for one ffmpeg run.

	// Behavior flags.
	DryRun bool

	// Display and logging.
	LogLevel  string    // Default: "info".
	LogFile   string    // Optional JSON log file path.
	ColorMode ColorMode // Default: "auto".
}

// DefaultConfig returns a Config with the stock recorder naming scheme and
// conservative execution limits. Used as the base before file and flag
// overrides apply.
func DefaultConfig() Config {
	return Config{
		OutputDir:  ".",
		OutputName: DefaultOutputName,
		Prefix:     naming.DefaultPrefix,
		Extensions: []string{".mp4", ".avi", ".mov"},
		Timeout:    DefaultTimeout,
		LogLevel:   LevelInfo,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and value ranges, and canonicalizes the
// extension filter. Source presence is the commands' concern; mutual
// exclusivity of the two source forms is enforced here.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.LogLevel {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		// valid
	default:
		return errors.New("invalid log level (use 'debug', 'info', 'warn' or 'error')")
	}

	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if c.OutputName == "" {
		return errors.New("output name must not be empty")
	}
	if strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("output name %q must be a bare file name, not a path", c.OutputName)
	}

	exts, err := normalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = exts

	if c.SourceDir != "" && len(c.SourceFiles) > 0 {
		return errors.New("source directory and explicit file list are mutually exclusive")
	}
	return nil
}

// normalizeExtensions canonicalizes user extension input. Accepted forms:
// "mp4", ".mp4", "MP4". Output is lowercase with a leading dot.
func normalizeExtensions(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("extension filter must not be empty")
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s := strings.ToLower(strings.TrimSpace(e))
		if s == "" {
			return nil, errors.New("extension filter contains an empty entry")
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		if s == "." {
			return nil, fmt.Errorf("invalid extension %q", e)
		}
		out = append(out, s)
	}
	return out, nil
}
