package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// WriteManifest renders the ordered segments into a temporary concat-demuxer
// list file, one entry per segment in exactly the given order, and returns
// its path. The manifest is request-scoped: the caller owns removal on every
// exit path.
func WriteManifest(segments []Segment) (string, error) {
	f, err := os.CreateTemp("", "panomux-concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create manifest: %w", err)
	}

	var b strings.Builder
	for _, s := range segments {
		b.WriteString(manifestEntry(s.Path))
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close manifest: %w", err)
	}
	return f.Name(), nil
}

// manifestEntry escapes one path for the concat list format. Backslashes
// double first so the quote escapes that follow survive, then single quotes
// are escaped; the entry stays a single quoted token no matter what spaces
// or specials the path carries.
func manifestEntry(path string) string {
	p := strings.ReplaceAll(path, `\`, `\\`)
	p = strings.ReplaceAll(p, `'`, `\'`)
	return "file '" + p + "'\n"
}
