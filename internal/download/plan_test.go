package download

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ytget/yt-grabber/internal/model"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name        string
		req         model.DownloadRequest
		converter   bool
		wantFormat  string
		wantExtract bool
		wantAudio   string
		wantQual    string
		wantMerge   string
		wantExt     string
	}{
		{
			name:        "mp3 best",
			req:         model.DownloadRequest{Mode: model.ModeAudio, Format: model.FormatMP3, Quality: model.QualityBest},
			converter:   true,
			wantFormat:  "bestaudio/best",
			wantExtract: true,
			wantAudio:   "mp3",
			wantQual:    "0",
			wantExt:     "mp3",
		},
		{
			name:        "wav low",
			req:         model.DownloadRequest{Mode: model.ModeAudio, Format: model.FormatWAV, Quality: model.QualityLow},
			converter:   true,
			wantFormat:  "bestaudio/best",
			wantExtract: true,
			wantAudio:   "wav",
			wantQual:    "9",
			wantExt:     "wav",
		},
		{
			name:       "m4a without converter",
			req:        model.DownloadRequest{Mode: model.ModeAudio, Format: model.FormatM4A, Quality: model.QualityHigh},
			wantFormat: "bestaudio[ext=m4a]/bestaudio/best",
		},
		{
			name:       "mp4 medium",
			req:        model.DownloadRequest{Mode: model.ModeVideo, Format: model.FormatMP4, Quality: model.QualityMedium},
			converter:  true,
			wantFormat: "bestvideo[height<=720]+bestaudio/best[height<=720]",
			wantMerge:  "mp4",
			wantExt:    "mp4",
		},
		{
			name:       "mp4 best",
			req:        model.DownloadRequest{Mode: model.ModeVideo, Format: model.FormatMP4, Quality: model.QualityBest},
			converter:  true,
			wantFormat: "bestvideo+bestaudio/best",
			wantMerge:  "mp4",
			wantExt:    "mp4",
		},
		{
			name:       "webm low without converter",
			req:        model.DownloadRequest{Mode: model.ModeVideo, Format: model.FormatWEBM, Quality: model.QualityLow},
			wantFormat: "best[ext=webm][height<=480]/best[height<=480]",
		},
		{
			name:       "webm best without converter",
			req:        model.DownloadRequest{Mode: model.ModeVideo, Format: model.FormatWEBM, Quality: model.QualityBest},
			wantFormat: "best[ext=webm]/best",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.URL = testURL
			tt.req.Destination = "/dl"
			capability := withoutConverter
			if tt.converter {
				capability = withConverter
			}

			plan := NewPlan(&tt.req, capability)

			if plan.FormatSelector != tt.wantFormat {
				t.Errorf("FormatSelector = %q, want %q", plan.FormatSelector, tt.wantFormat)
			}
			if plan.ExtractAudio != tt.wantExtract {
				t.Errorf("ExtractAudio = %v, want %v", plan.ExtractAudio, tt.wantExtract)
			}
			if plan.AudioFormat != tt.wantAudio {
				t.Errorf("AudioFormat = %q, want %q", plan.AudioFormat, tt.wantAudio)
			}
			if plan.AudioQuality != tt.wantQual {
				t.Errorf("AudioQuality = %q, want %q", plan.AudioQuality, tt.wantQual)
			}
			if plan.MergeOutputFormat != tt.wantMerge {
				t.Errorf("MergeOutputFormat = %q, want %q", plan.MergeOutputFormat, tt.wantMerge)
			}
			if plan.TargetExt != tt.wantExt {
				t.Errorf("TargetExt = %q, want %q", plan.TargetExt, tt.wantExt)
			}
			if want := filepath.Join("/dl", OutputTemplate); plan.OutputTemplate != want {
				t.Errorf("OutputTemplate = %q, want %q", plan.OutputTemplate, want)
			}
			if tt.converter && plan.FFmpegLocation != withConverter.Path {
				t.Errorf("FFmpegLocation = %q, want %q", plan.FFmpegLocation, withConverter.Path)
			}
			if !tt.converter && plan.FFmpegLocation != "" {
				t.Errorf("FFmpegLocation = %q, want empty", plan.FFmpegLocation)
			}
		})
	}
}

func TestPlan_Args(t *testing.T) {
	req := model.DownloadRequest{URL: testURL, Mode: model.ModeAudio, Format: model.FormatMP3, Quality: model.QualityHigh, Destination: "/dl"}
	got := NewPlan(&req, withConverter).Args()
	want := []string{
		"--no-playlist",
		"-x", "--audio-format", "mp3", "--audio-quality", "2",
		"-f", "bestaudio/best",
		"--ffmpeg-location", "/usr/bin/ffmpeg",
		"-o", filepath.Join("/dl", OutputTemplate),
		testURL,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %q\nwant %q", got, want)
	}
}

func TestPlan_FinalPath(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		reported string
		want     string
	}{
		{"converted", "mp3", "/dl/Song.webm", "/dl/Song.mp3"},
		{"already right", "mp4", "/dl/Clip.mp4", "/dl/Clip.mp4"},
		{"no target", "", "/dl/Song.m4a", "/dl/Song.m4a"},
		{"nothing reported", "mp3", "", ""},
		{"dots in title", "mp3", "/dl/Mr. Song v1.2.webm", "/dl/Mr. Song v1.2.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan{TargetExt: tt.ext}
			if got := p.FinalPath(tt.reported); got != tt.want {
				t.Errorf("FinalPath(%q) = %q, want %q", tt.reported, got, tt.want)
			}
		})
	}
}
