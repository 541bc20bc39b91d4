package download

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// ProgressInterval is how often yt-dlp progress is reported.
const ProgressInterval = 500 * time.Millisecond

// YTDLPRetriever drives yt-dlp through go-ytdlp.
type YTDLPRetriever struct{}

// NewYTDLPRetriever creates a retriever backed by the yt-dlp executable.
func NewYTDLPRetriever() *YTDLPRetriever {
	return &YTDLPRetriever{}
}

// Retrieve runs yt-dlp for plan. The error carries yt-dlp's stderr so it can
// be classified.
func (r *YTDLPRetriever) Retrieve(ctx context.Context, plan Plan, onProgress func(RawProgress)) (string, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		Format(plan.FormatSelector).
		Output(plan.OutputTemplate)

	if plan.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(plan.AudioFormat).
			AudioQuality(plan.AudioQuality)
	}
	if plan.MergeOutputFormat != "" {
		dl = dl.MergeOutputFormat(plan.MergeOutputFormat)
	}
	if plan.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(plan.FFmpegLocation)
	}

	var (
		mu       sync.Mutex
		lastFile string
	)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Filename != "" {
			mu.Lock()
			lastFile = update.Filename
			mu.Unlock()
		}
		if onProgress != nil {
			onProgress(toRawProgress(update))
		}
	})

	result, err := dl.Run(ctx, plan.URL)
	if err != nil {
		stderr := ""
		if result != nil {
			stderr = result.Stderr
		}
		return "", &RunError{Err: err, Stderr: stderr}
	}

	mu.Lock()
	path := lastFile
	mu.Unlock()
	if info, infoErr := result.GetExtractedInfo(); infoErr == nil && len(info) > 0 && info[0].Filename != nil {
		path = *info[0].Filename
	} else if infoErr != nil {
		log.Printf("Could not read extracted info for %s: %v", plan.URL, infoErr)
	}

	return plan.FinalPath(path), nil
}

func toRawProgress(update ytdlp.ProgressUpdate) RawProgress {
	raw := RawProgress{
		Status:   string(update.Status),
		Filename: update.Filename,
	}
	if update.TotalBytes > 0 {
		raw.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}
	return raw
}
