package download

import (
	"sync"

	"github.com/ytget/yt-grabber/internal/model"
)

// Raw statuses reported by yt-dlp progress hooks.
const (
	RawStatusStarting       = "starting"
	RawStatusDownloading    = "downloading"
	RawStatusPostProcessing = "post_processing"
	RawStatusFinished       = "finished"
	RawStatusError          = "error"
)

// Share of the bar given to fetching. Conversion starts at the same mark
// and the bar only reaches 100 on success.
const (
	fetchShare      = 90.0
	convertingFloor = fetchShare
	convertingCeil  = 99.0
)

// RawProgress is a progress report as the retrieval library sees it.
type RawProgress struct {
	Status   string
	Percent  float64 // 0 to 100 for the current stream
	Filename string
}

// progressTracker folds raw reports into a non-decreasing event sequence.
// yt-dlp restarts at 0% for every stream it fetches, so the reported
// percent is clamped to the highest value seen so far.
type progressTracker struct {
	mu      sync.Mutex
	percent float64
	stage   model.Stage
}

func newProgressTracker() *progressTracker {
	return &progressTracker{stage: model.StageFetching}
}

// update returns the event for raw and whether it changed anything.
func (p *progressTracker) update(raw RawProgress) (model.ProgressEvent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prevPercent, prevStage := p.percent, p.stage

	switch raw.Status {
	case RawStatusPostProcessing:
		p.stage = model.StageConverting
		p.raise(convertingFloor)
	case RawStatusFinished:
		if p.stage == model.StageFetching {
			p.raise(fetchShare)
		}
	case RawStatusDownloading, RawStatusStarting:
		if p.stage == model.StageFetching {
			p.raise(clampPercent(raw.Percent) * fetchShare / 100)
		}
	}

	changed := p.percent != prevPercent || p.stage != prevStage
	return model.ProgressEvent{Percent: p.percent, Stage: p.stage}, changed
}

// finish returns the terminal progress for the given outcome.
func (p *progressTracker) finish(success bool) model.ProgressEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	if success {
		p.percent = 100
		p.stage = model.StageDone
	} else {
		p.stage = model.StageFailed
	}
	return model.ProgressEvent{Percent: p.percent, Stage: p.stage}
}

func (p *progressTracker) raise(percent float64) {
	if p.stage == model.StageConverting && percent > convertingCeil {
		percent = convertingCeil
	}
	if percent > p.percent {
		p.percent = percent
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
