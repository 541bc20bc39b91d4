package download

import (
	"context"

	"github.com/ytget/yt-grabber/internal/model"
)

// Downloader runs one download at a time and streams its events
type Downloader interface {
	Start(req *model.DownloadRequest) (<-chan model.Event, error)
	Busy() bool
}

// Retriever fetches the media described by plan and returns the path of the
// file it reported writing. onProgress may be called from any goroutine.
type Retriever interface {
	Retrieve(ctx context.Context, plan Plan, onProgress func(RawProgress)) (string, error)
}

// Recorder stores finished results
type Recorder interface {
	Append(result model.DownloadResult)
}
