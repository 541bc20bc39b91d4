package download

import (
	"strings"

	"github.com/ytget/yt-grabber/internal/converter"
	"github.com/ytget/yt-grabber/internal/model"
)

// RetrieverBinary is the name of the retrieval tool shown to the user.
const RetrieverBinary = "yt-dlp"

// Selection holds the raw choices from the UI.
type Selection struct {
	URL         string
	Mode        model.Mode
	Format      model.Format
	Quality     model.Quality
	Destination string

	// AllowFallback means the user already agreed to swap a format that
	// needs the converter for its converter-free fallback.
	AllowFallback bool
}

// FormatOption is a format as offered to the user for a mode.
type FormatOption struct {
	Format    model.Format
	Available bool
}

// Builder validates selections and produces worker-bound requests. It is
// immutable after construction and performs no network I/O.
type Builder struct {
	capability         converter.Capability
	retrieverCheck     func() error
	defaultDestination string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRetrieverCheck makes Build fail with MissingDependency while check
// returns an error.
func WithRetrieverCheck(check func() error) BuilderOption {
	return func(b *Builder) {
		b.retrieverCheck = check
	}
}

// WithDefaultDestination sets the folder used when the selection has none.
func WithDefaultDestination(dir string) BuilderOption {
	return func(b *Builder) {
		b.defaultDestination = dir
	}
}

// NewBuilder creates a builder gated by the startup capability.
func NewBuilder(capability converter.Capability, opts ...BuilderOption) *Builder {
	b := &Builder{capability: capability}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capability returns the capability the builder was created with.
func (b *Builder) Capability() converter.Capability {
	return b.capability
}

// FormatOptions lists the formats for mode and whether each can be produced
// with the current capability.
func (b *Builder) FormatOptions(mode model.Mode) []FormatOption {
	formats := model.FormatsFor(mode)
	options := make([]FormatOption, 0, len(formats))
	for _, f := range formats {
		options = append(options, FormatOption{
			Format:    f,
			Available: b.capability.Available || !f.RequiresConverter(),
		})
	}
	return options
}

// Build validates sel and returns the request to hand to the worker.
//
// A format that needs the converter while it is missing is rejected with
// KindMissingDependency unless sel.AllowFallback is set, in which case the
// fallback format is used and recorded in SubstitutedFrom.
func (b *Builder) Build(sel Selection) (*model.DownloadRequest, error) {
	rawURL := strings.TrimSpace(sel.URL)
	if err := ValidateVideoURL(rawURL); err != nil {
		return nil, err
	}

	if !sel.Mode.Valid() || !sel.Format.AllowedFor(sel.Mode) {
		return nil, invalidFormat(sel.Mode, sel.Format)
	}

	quality := sel.Quality
	if !quality.Valid() {
		quality = model.QualityBest
	}

	if b.retrieverCheck != nil {
		if err := b.retrieverCheck(); err != nil {
			return nil, missingRetriever(RetrieverBinary, err)
		}
	}

	req := &model.DownloadRequest{
		URL:         rawURL,
		Mode:        sel.Mode,
		Format:      sel.Format,
		Quality:     quality,
		Destination: strings.TrimSpace(sel.Destination),
	}

	if req.Format.RequiresConverter() && !b.capability.Available {
		if !sel.AllowFallback {
			return nil, missingConverter(req.Format, b.capability.Name())
		}
		req.SubstitutedFrom = req.Format
		req.Format = req.Format.Fallback()
	}

	if req.Destination == "" {
		req.Destination = b.defaultDestination
	}

	return req, nil
}
