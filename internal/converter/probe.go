package converter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// FFmpeg constants for the version query
const (
	FFmpegCommand       = "ffmpeg"
	VersionFlag         = "-version"
	VersionLinePrefix   = "ffmpeg version "
	LocationEnvVar      = "FFMPEG_LOCATION"
	DefaultProbeTimeout = 5 * time.Second
)

// Capability is the result of the startup probe. It is a plain value:
// compute it once and hand it to whoever needs it.
type Capability struct {
	Available bool
	Path      string // absolute path of the binary, empty when unavailable
	Version   string // e.g. "6.1.1", best effort
	Reason    string // why the probe failed, empty when available
}

// Unavailable returns a Capability reporting the binary as missing.
func Unavailable(reason string) Capability {
	return Capability{Reason: reason}
}

// Name returns the binary name shown to the user.
func (c Capability) Name() string {
	return FFmpegCommand
}

// Service probes for ffmpeg on the execution path or at an explicit location
type Service struct {
	location string
	timeout  time.Duration
	lookPath func(string) (string, error)
}

// NewService creates a probe honouring the FFMPEG_LOCATION environment
// variable when it is set.
func NewService() *Service {
	return NewServiceWithLocation(cleanLocation(os.Getenv(LocationEnvVar)))
}

// NewServiceWithLocation creates a probe for an explicit binary or folder.
// An empty location means "search PATH".
func NewServiceWithLocation(location string) *Service {
	return &Service{
		location: location,
		timeout:  DefaultProbeTimeout,
		lookPath: exec.LookPath,
	}
}

// SetTimeout sets the timeout for the version query
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Probe runs the version query once. Any failure yields Available=false.
func (s *Service) Probe(ctx context.Context) Capability {
	path, err := s.resolve()
	if err != nil {
		log.Printf("ffmpeg probe: %v", err)
		return Unavailable(err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, VersionFlag)
	cmd.WaitDelay = time.Second
	output, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		log.Printf("ffmpeg probe: version query timed out after %s", s.timeout)
		return Unavailable(fmt.Sprintf("%s %s timed out", path, VersionFlag))
	}
	if err != nil {
		log.Printf("ffmpeg probe: version query failed: %v", err)
		return Unavailable(fmt.Sprintf("%s %s failed: %v", path, VersionFlag, err))
	}

	capability := Capability{
		Available: true,
		Path:      path,
		Version:   parseVersion(output),
	}
	log.Printf("ffmpeg probe: found %s (version %s)", capability.Path, capability.Version)
	return capability
}

// resolve returns the absolute path of the binary to query.
func (s *Service) resolve() (string, error) {
	if s.location == "" {
		path, err := s.lookPath(FFmpegCommand)
		if err != nil {
			return "", fmt.Errorf("%s not found on PATH: %w", FFmpegCommand, err)
		}
		return absPath(path), nil
	}

	info, err := os.Stat(s.location)
	if err != nil {
		return "", fmt.Errorf("%s location does not exist: %s", FFmpegCommand, s.location)
	}

	if info.IsDir() {
		candidate := filepath.Join(s.location, binaryName(FFmpegCommand))
		if _, err := os.Stat(candidate); err != nil {
			return "", fmt.Errorf("%s location is a folder but %s was not found: %s",
				FFmpegCommand, binaryName(FFmpegCommand), s.location)
		}
		return absPath(candidate), nil
	}

	return absPath(s.location), nil
}

// parseVersion extracts the version token from the first output line.
func parseVersion(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if !scanner.Scan() {
		return ""
	}
	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, VersionLinePrefix) {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, VersionLinePrefix))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// cleanLocation strips whitespace and quotes and expands ~ and env vars.
func cleanLocation(location string) string {
	location = strings.Trim(strings.TrimSpace(location), `"'`)
	if location == "" {
		return ""
	}
	location = os.ExpandEnv(location)
	if strings.HasPrefix(location, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			location = filepath.Join(home, strings.TrimPrefix(location, "~"))
		}
	}
	return filepath.Clean(location)
}

func binaryName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
