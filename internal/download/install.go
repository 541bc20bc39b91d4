package download

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lrstanley/go-ytdlp"
)

// ErrRetrieverPending is reported while the yt-dlp lookup has not finished.
var ErrRetrieverPending = errors.New("yt-dlp lookup still in progress")

// RetrieverStatus describes the resolved yt-dlp executable.
type RetrieverStatus struct {
	Ready      bool
	Executable string
	Version    string
	Err        error
}

// EnsureRetriever resolves yt-dlp, using a system install when present and
// downloading a cached copy otherwise.
func EnsureRetriever(ctx context.Context) RetrieverStatus {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return RetrieverStatus{Err: fmt.Errorf("resolve %s: %w", RetrieverBinary, err)}
	}
	return RetrieverStatus{
		Ready:      true,
		Executable: resolved.Executable,
		Version:    resolved.Version,
	}
}

// RetrieverState holds the latest RetrieverStatus. It is filled in by a
// background lookup and read by the builder.
type RetrieverState struct {
	mu     sync.RWMutex
	status *RetrieverStatus
}

// Set stores status
func (s *RetrieverState) Set(status RetrieverStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = &status
}

// Get returns the stored status and whether the lookup has finished.
func (s *RetrieverState) Get() (RetrieverStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return RetrieverStatus{}, false
	}
	return *s.status, true
}

// Check returns nil once yt-dlp is ready. It is meant for WithRetrieverCheck.
func (s *RetrieverState) Check() error {
	status, done := s.Get()
	if !done {
		return ErrRetrieverPending
	}
	if !status.Ready {
		if status.Err != nil {
			return status.Err
		}
		return fmt.Errorf("%s not found", RetrieverBinary)
	}
	return nil
}
