package download

import (
	"fmt"
	"path/filepath"

	"github.com/ytget/yt-grabber/internal/converter"
	"github.com/ytget/yt-grabber/internal/model"
)

// OutputTemplate names files after the video title, as yt-dlp does by default.
const OutputTemplate = "%(title)s.%(ext)s"

// Format selectors
const (
	selectorBestAudio    = "bestaudio/best"
	selectorNativeM4A    = "bestaudio[ext=m4a]/bestaudio/best"
	selectorMergedVideo  = "bestvideo+bestaudio/best"
	selectorCappedMerged = "bestvideo[height<=%d]+bestaudio/best[height<=%d]"
	selectorNativeWEBM   = "best[ext=webm]/best"
	selectorCappedNative = "best[ext=webm][height<=%d]/best[height<=%d]"
)

// Plan is the concrete yt-dlp invocation for one request.
type Plan struct {
	URL               string
	FormatSelector    string
	ExtractAudio      bool
	AudioFormat       string
	AudioQuality      string
	MergeOutputFormat string
	FFmpegLocation    string
	OutputTemplate    string
	TargetExt         string // extension expected on disk when the converter runs
}

// NewPlan assembles the invocation for req. Converter-backed options are
// only emitted when the capability says the binary is present.
func NewPlan(req *model.DownloadRequest, capability converter.Capability) Plan {
	plan := Plan{
		URL:            req.URL,
		OutputTemplate: filepath.Join(req.Destination, OutputTemplate),
	}

	if capability.Available {
		plan.FFmpegLocation = capability.Path
	}

	switch req.Mode {
	case model.ModeAudio:
		planAudio(&plan, req, capability.Available)
	case model.ModeVideo:
		planVideo(&plan, req, capability.Available)
	}

	return plan
}

func planAudio(plan *Plan, req *model.DownloadRequest, converterAvailable bool) {
	if !converterAvailable {
		// Without ffmpeg only a native m4a stream can be saved as-is.
		plan.FormatSelector = selectorNativeM4A
		return
	}

	plan.FormatSelector = selectorBestAudio
	plan.ExtractAudio = true
	plan.AudioFormat = req.Format.String()
	plan.AudioQuality = req.Quality.AudioQuality()
	plan.TargetExt = req.Format.String()
}

func planVideo(plan *Plan, req *model.DownloadRequest, converterAvailable bool) {
	height := req.Quality.MaxHeight()

	if !converterAvailable {
		// No merging possible: pick a single progressive stream.
		if height > 0 {
			plan.FormatSelector = fmt.Sprintf(selectorCappedNative, height, height)
		} else {
			plan.FormatSelector = selectorNativeWEBM
		}
		return
	}

	if height > 0 {
		plan.FormatSelector = fmt.Sprintf(selectorCappedMerged, height, height)
	} else {
		plan.FormatSelector = selectorMergedVideo
	}
	plan.MergeOutputFormat = req.Format.String()
	plan.TargetExt = req.Format.String()
}

// Args renders the plan as yt-dlp command line arguments, for logging.
func (p Plan) Args() []string {
	args := []string{"--no-playlist"}
	if p.ExtractAudio {
		args = append(args, "-x", "--audio-format", p.AudioFormat, "--audio-quality", p.AudioQuality)
	}
	args = append(args, "-f", p.FormatSelector)
	if p.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", p.MergeOutputFormat)
	}
	if p.FFmpegLocation != "" {
		args = append(args, "--ffmpeg-location", p.FFmpegLocation)
	}
	args = append(args, "-o", p.OutputTemplate, p.URL)
	return args
}

// FinalPath returns where the file ends up after post-processing. yt-dlp
// reports the pre-conversion name, so the extension is swapped when the
// converter changes it.
func (p Plan) FinalPath(reported string) string {
	if reported == "" || p.TargetExt == "" {
		return reported
	}
	ext := filepath.Ext(reported)
	if ext == "."+p.TargetExt {
		return reported
	}
	return reported[:len(reported)-len(ext)] + "." + p.TargetExt
}
