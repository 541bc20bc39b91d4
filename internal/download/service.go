package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ytget/yt-grabber/internal/converter"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// EventBuffer is the capacity of the channel returned by Start.
const EventBuffer = 16

// Service runs at most one download at a time. Progress is sent without
// blocking so a slow reader only loses intermediate updates; the terminal
// event is always delivered.
type Service struct {
	retriever  Retriever
	recorder   Recorder
	capability converter.Capability

	busy atomic.Bool

	// Resolves the destination when a request has none.
	defaultDir func() (string, error)
}

// NewService creates a new download service
func NewService(retriever Retriever, recorder Recorder, capability converter.Capability) *Service {
	return &Service{
		retriever:  retriever,
		recorder:   recorder,
		capability: capability,
		defaultDir: platform.DefaultMediaDir,
	}
}

// Busy reports whether a download is in flight.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Start launches req on a worker goroutine. The returned channel yields
// progress events followed by exactly one event carrying the result, and is
// closed afterwards. The result is recorded before it is sent.
func (s *Service) Start(req *model.DownloadRequest) (<-chan model.Event, error) {
	if req == nil {
		return nil, errors.New("nil download request")
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	events := make(chan model.Event, EventBuffer)
	go s.run(*req, events)
	return events, nil
}

func (s *Service) run(req model.DownloadRequest, events chan<- model.Event) {
	started := time.Now()
	tracker := newProgressTracker()

	log.Printf("Starting download: %s", req.Summary())

	emit := func(ev model.ProgressEvent) {
		select {
		case events <- model.Event{Progress: ev}:
		default:
		}
	}
	emit(model.ProgressEvent{Percent: 0, Stage: model.StageFetching})

	outputPath, err := s.download(&req, tracker, emit)

	var result model.DownloadResult
	if err != nil {
		de := classify(err)
		log.Printf("Download failed (%s): %s: %v", de.Kind, req.URL, err)
		result = model.NewFailureResult(&req, de.Kind.String(), de.Error(), started)
	} else {
		log.Printf("Download completed: %s -> %s", req.URL, outputPath)
		result = model.NewSuccessResult(&req, outputPath, started)
	}

	if s.recorder != nil {
		s.recorder.Append(result)
	}
	s.busy.Store(false)

	events <- model.Event{Progress: tracker.finish(result.Succeeded()), Result: &result}
	close(events)
}

func (s *Service) download(req *model.DownloadRequest, tracker *progressTracker, emit func(model.ProgressEvent)) (string, error) {
	if strings.TrimSpace(req.Destination) == "" && s.defaultDir != nil {
		dir, err := s.defaultDir()
		if err != nil {
			return "", &Error{Kind: KindStorageFailure, Message: fmt.Sprintf("resolve download folder: %v", err), Err: err}
		}
		req.Destination = dir
	}

	if err := platform.CreateDirectoryIfNotExists(req.Destination); err != nil {
		return "", &Error{
			Kind:    KindStorageFailure,
			Message: fmt.Sprintf("cannot create folder %s: %v", req.Destination, err),
			Err:     err,
		}
	}

	plan := NewPlan(req, s.capability)
	log.Printf("yt-dlp %s", strings.Join(plan.Args(), " "))

	return s.retriever.Retrieve(context.Background(), plan, func(raw RawProgress) {
		if ev, changed := tracker.update(raw); changed {
			emit(ev)
		}
	})
}
