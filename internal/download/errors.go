package download

import (
	"errors"
	"fmt"

	"github.com/ytget/yt-grabber/internal/model"
)

// Kind classifies a download failure.
type Kind string

const (
	KindInvalidURL           Kind = "InvalidURL"
	KindInvalidFormatForMode Kind = "InvalidFormatForMode"
	KindMissingDependency    Kind = "MissingDependency"
	KindNetworkFailure       Kind = "NetworkFailure"
	KindConversionFailure    Kind = "ConversionFailure"
	KindStorageFailure       Kind = "StorageFailure"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Error is the error type returned by the builder and carried in failed
// results. Binary and Fallback are set for KindMissingDependency.
type Error struct {
	Kind     Kind
	Message  string
	Binary   string
	Fallback model.Format
	Err      error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidURL)
// works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidURL           = &Error{Kind: KindInvalidURL}
	ErrInvalidFormatForMode = &Error{Kind: KindInvalidFormatForMode}
	ErrMissingDependency    = &Error{Kind: KindMissingDependency}
	ErrNetworkFailure       = &Error{Kind: KindNetworkFailure}
	ErrConversionFailure    = &Error{Kind: KindConversionFailure}
	ErrStorageFailure       = &Error{Kind: KindStorageFailure}
)

// ErrBusy is returned by Service.Start while another download runs.
var ErrBusy = errors.New("a download is already in progress")

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func invalidURL(raw, reason string) *Error {
	return &Error{
		Kind:    KindInvalidURL,
		Message: fmt.Sprintf("invalid video URL %q: %s", raw, reason),
	}
}

func invalidFormat(mode model.Mode, format model.Format) *Error {
	return &Error{
		Kind:    KindInvalidFormatForMode,
		Message: fmt.Sprintf("format %q is not available for %s mode", format, mode),
	}
}

func missingConverter(format model.Format, binary string) *Error {
	fallback := format.Fallback()
	return &Error{
		Kind:     KindMissingDependency,
		Binary:   binary,
		Fallback: fallback,
		Message: fmt.Sprintf("%s requires %s, which was not found. Install %s or download as %s instead",
			format.Label(), binary, binary, fallback.Label()),
	}
}

func missingRetriever(binary string, cause error) *Error {
	msg := fmt.Sprintf("%s is not available", binary)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Kind:    KindMissingDependency,
		Binary:  binary,
		Message: msg,
		Err:     cause,
	}
}
