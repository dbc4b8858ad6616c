package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeTool writes an executable shell script posing as ffmpeg.
func fakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func skipWithoutSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools need /bin/sh")
	}
}

func TestResolve_FromPath(t *testing.T) {
	skipWithoutSh(t)

	dir := t.TempDir()
	fakeTool(t, dir, "ffmpeg", `echo "ffmpeg version 6.1-fake Copyright"; echo "built with gcc"`)
	t.Setenv("PATH", dir)

	tool, err := Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tool.Bundled {
		t.Error("PATH resolution should not report bundled")
	}
	if tool.Path != filepath.Join(dir, "ffmpeg") {
		t.Errorf("path: got %q", tool.Path)
	}
	if tool.Version != "ffmpeg version 6.1-fake Copyright" {
		t.Errorf("version: got %q, want first line only", tool.Version)
	}
	if tool.Origin() != "PATH" {
		t.Errorf("origin: got %q, want PATH", tool.Origin())
	}
}

func TestResolve_PrefersBundled(t *testing.T) {
	skipWithoutSh(t)

	appDir := t.TempDir()
	binDir := filepath.Join(appDir, "ffmpeg", "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	bundled := fakeTool(t, binDir, "ffmpeg", `echo "ffmpeg version bundled-7.0"`)

	pathDir := t.TempDir()
	fakeTool(t, pathDir, "ffmpeg", `echo "ffmpeg version path-6.0"`)
	t.Setenv("PATH", pathDir)

	orig := executablePath
	executablePath = func() (string, error) { return filepath.Join(appDir, "panomux"), nil }
	t.Cleanup(func() { executablePath = orig })

	tool, err := Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !tool.Bundled {
		t.Error("bundled copy should win over PATH")
	}
	if tool.Path != bundled {
		t.Errorf("path: got %q, want %q", tool.Path, bundled)
	}
	if !strings.Contains(tool.Version, "bundled-7.0") {
		t.Errorf("version: got %q, want the bundled one", tool.Version)
	}
	if tool.Origin() != "bundled" {
		t.Errorf("origin: got %q, want bundled", tool.Origin())
	}
}

func TestResolve_BrokenBundledFallsBack(t *testing.T) {
	skipWithoutSh(t)

	appDir := t.TempDir()
	binDir := filepath.Join(appDir, "ffmpeg", "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	fakeTool(t, binDir, "ffmpeg", `exit 1`)

	pathDir := t.TempDir()
	fakeTool(t, pathDir, "ffmpeg", `echo "ffmpeg version path-6.0"`)
	t.Setenv("PATH", pathDir)

	orig := executablePath
	executablePath = func() (string, error) { return filepath.Join(appDir, "panomux"), nil }
	t.Cleanup(func() { executablePath = orig })

	tool, err := Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tool.Bundled {
		t.Error("a bundled copy that fails -version must not be selected")
	}
	if !strings.Contains(tool.Version, "path-6.0") {
		t.Errorf("version: got %q, want the PATH one", tool.Version)
	}
}

func TestResolve_NotFound(t *testing.T) {
	skipWithoutSh(t)

	t.Setenv("PATH", t.TempDir())

	_, err := Resolve(context.Background())
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("error = %v, want ErrToolNotFound", err)
	}
}

func TestResolve_BrokenPathBinary(t *testing.T) {
	skipWithoutSh(t)

	dir := t.TempDir()
	fakeTool(t, dir, "ffmpeg", `exit 2`)
	t.Setenv("PATH", dir)

	_, err := Resolve(context.Background())
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("error = %v, want wrapped ErrToolNotFound", err)
	}
}
