package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Outcome is the final state of a download.
type Outcome string

const (
	OutcomeSuccess Outcome = "Success"
	OutcomeFailure Outcome = "Failure"
)

// ResultIDPrefix prefixes every result identifier.
const ResultIDPrefix = "dl-"

// HistoryTimeLayout is the timestamp layout used in history lines.
const HistoryTimeLayout = "2006-01-02 15:04:05"

// maxLineURLLength caps the URL part of a history line.
const maxLineURLLength = 50

// DownloadResult is the immutable record of one finished request.
type DownloadResult struct {
	ID         string
	Timestamp  time.Time
	Summary    string
	URL        string
	Mode       Mode
	Format     Format
	Outcome    Outcome
	ErrorKind  string // classified error kind, empty on success
	Message    string // human readable outcome message
	OutputPath string // path to the downloaded file, success only
	Duration   time.Duration
}

// NewResultID returns a fresh identifier for a result.
func NewResultID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return ResultIDPrefix + uuid.NewString()
	}
	return ResultIDPrefix + id.String()
}

// NewSuccessResult builds the result of a completed request.
func NewSuccessResult(req *DownloadRequest, outputPath string, started time.Time) DownloadResult {
	return DownloadResult{
		ID:         NewResultID(),
		Timestamp:  time.Now(),
		Summary:    req.Summary(),
		URL:        req.URL,
		Mode:       req.Mode,
		Format:     req.Format,
		Outcome:    OutcomeSuccess,
		Message:    "Saved to " + req.Destination,
		OutputPath: outputPath,
		Duration:   time.Since(started),
	}
}

// NewFailureResult builds the result of a failed request.
func NewFailureResult(req *DownloadRequest, kind, message string, started time.Time) DownloadResult {
	return DownloadResult{
		ID:        NewResultID(),
		Timestamp: time.Now(),
		Summary:   req.Summary(),
		URL:       req.URL,
		Mode:      req.Mode,
		Format:    req.Format,
		Outcome:   OutcomeFailure,
		ErrorKind: kind,
		Message:   message,
		Duration:  time.Since(started),
	}
}

// Succeeded reports whether the download produced a file.
func (r DownloadResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// HistoryLine formats the result for the history list, e.g.
// "[2025-01-02 15:04:05] AUDIO - Success: https://youtu.be/abc".
func (r DownloadResult) HistoryLine() string {
	url := r.URL
	if len(url) > maxLineURLLength {
		url = url[:maxLineURLLength] + "..."
	}
	return fmt.Sprintf("[%s] %s - %s: %s", r.Timestamp.Format(HistoryTimeLayout), r.Mode.Label(), r.Outcome, url)
}

// GetDisplayTitle returns the file name without extension, or the URL
func (r DownloadResult) GetDisplayTitle() string {
	if r.OutputPath != "" {
		name := filepath.Base(strings.ReplaceAll(r.OutputPath, "\\", "/"))
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		if name != "" && name != "." && name != "/" {
			return name
		}
	}
	return r.URL
}
