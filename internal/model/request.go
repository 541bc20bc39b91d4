package model

import (
	"fmt"
	"strings"
)

// DownloadRequest is a validated, worker-bound download. Build it through
// download.Builder so the format table and the capability gate apply.
type DownloadRequest struct {
	URL         string
	Mode        Mode
	Format      Format
	Quality     Quality
	Destination string

	// SubstitutedFrom holds the originally selected format when the
	// builder swapped it for a converter-free fallback.
	SubstitutedFrom Format
}

// Substituted reports whether the format was swapped for a fallback.
func (r *DownloadRequest) Substituted() bool {
	return r.SubstitutedFrom != ""
}

// Summary returns a short human readable description, e.g.
// "AUDIO M4A (best) https://youtu.be/abc".
func (r *DownloadRequest) Summary() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s (%s)", r.Mode.Label(), r.Format.Label(), r.Quality))
	if r.Substituted() {
		b.WriteString(fmt.Sprintf(" [%s→%s]", r.SubstitutedFrom.Label(), r.Format.Label()))
	}
	if r.URL != "" {
		b.WriteString(" ")
		b.WriteString(r.URL)
	}
	return b.String()
}
