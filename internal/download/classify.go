package download

import (
	"errors"
	"os/exec"
	"strings"
)

// Markers in yt-dlp output that point at the conversion binary rather than
// at the network or the video itself.
var conversionMarkers = []string{
	"ffmpeg",
	"ffprobe",
	"postprocessing",
	"post-processing",
	"merging formats",
	"unable to merge",
	"conversion failed",
	"audio conversion",
}

const (
	errorLinePrefix   = "ERROR:"
	maxMessageLength  = 500
	unknownErrorText  = "Unknown error"
	missingBinaryHint = "executable file not found"
)

// RunError carries the retrieval library's error together with its stderr.
type RunError struct {
	Err    error
	Stderr string
}

func (e *RunError) Error() string {
	if msg := lastErrorLine(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return unknownErrorText
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// classify maps a retrieval failure to a typed error. Nothing is retried.
func classify(err error) *Error {
	if err == nil {
		return nil
	}

	var de *Error
	if errors.As(err, &de) {
		return de
	}

	text := err.Error()
	var runErr *RunError
	if errors.As(err, &runErr) {
		text = runErr.Stderr + "\n" + text
	}

	if errors.Is(err, exec.ErrNotFound) || (strings.Contains(text, missingBinaryHint) && strings.Contains(text, RetrieverBinary)) {
		return missingRetriever(RetrieverBinary, err)
	}

	kind := KindNetworkFailure
	lower := strings.ToLower(text)
	for _, marker := range conversionMarkers {
		if strings.Contains(lower, marker) {
			kind = KindConversionFailure
			break
		}
	}

	return &Error{
		Kind:    kind,
		Message: truncate(err.Error(), maxMessageLength),
		Err:     err,
	}
}

// lastErrorLine returns the last "ERROR:" line of stderr without the prefix.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, errorLinePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, errorLinePrefix))
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
