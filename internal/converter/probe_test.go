package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeFakeFFmpeg writes a shell script standing in for ffmpeg.
func writeFakeFFmpeg(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg script requires a POSIX shell")
	}
	path := filepath.Join(dir, FFmpegCommand)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write fake ffmpeg: %v", err)
	}
	return path
}

func TestProbe_AvailableFromFile(t *testing.T) {
	path := writeFakeFFmpeg(t, t.TempDir(), `echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers"`)

	capability := NewServiceWithLocation(path).Probe(context.Background())

	if !capability.Available {
		t.Fatalf("Expected ffmpeg to be available, reason: %s", capability.Reason)
	}
	if capability.Version != "6.1.1" {
		t.Errorf("Expected version 6.1.1, got %q", capability.Version)
	}
	if capability.Path != path {
		t.Errorf("Expected path %s, got %s", path, capability.Path)
	}
}

func TestProbe_AvailableFromFolder(t *testing.T) {
	dir := t.TempDir()
	writeFakeFFmpeg(t, dir, `echo "ffmpeg version n7.0 Copyright"`)

	capability := NewServiceWithLocation(dir).Probe(context.Background())

	if !capability.Available {
		t.Fatalf("Expected ffmpeg to be available, reason: %s", capability.Reason)
	}
	if capability.Version != "n7.0" {
		t.Errorf("Expected version n7.0, got %q", capability.Version)
	}
}

func TestProbe_NonZeroExit(t *testing.T) {
	path := writeFakeFFmpeg(t, t.TempDir(), "exit 1")

	capability := NewServiceWithLocation(path).Probe(context.Background())

	if capability.Available {
		t.Error("Expected non-zero exit to mark ffmpeg unavailable")
	}
	if capability.Reason == "" {
		t.Error("Expected a failure reason")
	}
}

func TestProbe_Timeout(t *testing.T) {
	path := writeFakeFFmpeg(t, t.TempDir(), "exec sleep 5")

	svc := NewServiceWithLocation(path)
	svc.SetTimeout(100 * time.Millisecond)

	capability := svc.Probe(context.Background())

	if capability.Available {
		t.Error("Expected timeout to mark ffmpeg unavailable")
	}
}

func TestProbe_MissingLocation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "ffmpeg")

	capability := NewServiceWithLocation(missing).Probe(context.Background())

	if capability.Available {
		t.Error("Expected missing location to mark ffmpeg unavailable")
	}
	if !strings.Contains(capability.Reason, "does not exist") {
		t.Errorf("Unexpected reason: %s", capability.Reason)
	}
}

func TestProbe_FolderWithoutBinary(t *testing.T) {
	capability := NewServiceWithLocation(t.TempDir()).Probe(context.Background())

	if capability.Available {
		t.Error("Expected empty folder to mark ffmpeg unavailable")
	}
	if !strings.Contains(capability.Reason, "was not found") {
		t.Errorf("Unexpected reason: %s", capability.Reason)
	}
}

func TestProbe_NotOnPath(t *testing.T) {
	svc := NewServiceWithLocation("")
	svc.lookPath = func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}

	capability := svc.Probe(context.Background())

	if capability.Available {
		t.Error("Expected ffmpeg missing from PATH to be unavailable")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output   string
		expected string
	}{
		{"ffmpeg version 6.0 Copyright (c)\nbuilt with gcc", "6.0"},
		{"ffmpeg version 4.4.2-0ubuntu0.22.04.1 Copyright", "4.4.2-0ubuntu0.22.04.1"},
		{"something else", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := parseVersion([]byte(test.output)); got != test.expected {
			t.Errorf("parseVersion(%q) = %q, expected %q", test.output, got, test.expected)
		}
	}
}

func TestCleanLocation(t *testing.T) {
	if got := cleanLocation(`  "/opt/ffmpeg/bin"  `); got != filepath.Clean("/opt/ffmpeg/bin") {
		t.Errorf("Expected quotes and spaces to be stripped, got %q", got)
	}
	if got := cleanLocation(""); got != "" {
		t.Errorf("Expected empty location, got %q", got)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		if got := cleanLocation("~/bin/ffmpeg"); got != filepath.Join(home, "bin", "ffmpeg") {
			t.Errorf("Expected ~ to expand, got %q", got)
		}
	}
}

func TestUnavailable(t *testing.T) {
	capability := Unavailable("missing")
	if capability.Available || capability.Reason != "missing" {
		t.Errorf("Unexpected capability: %+v", capability)
	}
	if capability.Name() != "ffmpeg" {
		t.Errorf("Expected binary name ffmpeg, got %s", capability.Name())
	}
}
