package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
)

type fakeRetriever struct {
	reports []RawProgress
	path    string
	err     error
	release chan struct{}

	mu    sync.Mutex
	plans []Plan
}

func (f *fakeRetriever) Retrieve(ctx context.Context, plan Plan, onProgress func(RawProgress)) (string, error) {
	f.mu.Lock()
	f.plans = append(f.plans, plan)
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	for _, r := range f.reports {
		onProgress(r)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []model.DownloadResult
}

func (f *fakeRecorder) Append(result model.DownloadResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

func (f *fakeRecorder) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

func collect(t *testing.T, events <-chan model.Event, rec *fakeRecorder) []model.Event {
	t.Helper()
	var out []model.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			if ev.IsTerminal() && rec != nil && rec.Len() == 0 {
				t.Error("terminal event arrived before the result was recorded")
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func newTestRequest(t *testing.T, format model.Format) *model.DownloadRequest {
	t.Helper()
	return &model.DownloadRequest{
		URL:         testURL,
		Mode:        format.Mode(),
		Format:      format,
		Quality:     model.QualityBest,
		Destination: filepath.Join(t.TempDir(), "out"),
	}
}

func TestService_Success(t *testing.T) {
	retriever := &fakeRetriever{
		reports: []RawProgress{
			{Status: RawStatusDownloading, Percent: 10},
			{Status: RawStatusDownloading, Percent: 60},
			{Status: RawStatusDownloading, Percent: 30},
			{Status: RawStatusPostProcessing},
		},
		path: "/dl/Song.mp3",
	}
	rec := &fakeRecorder{}
	svc := NewService(retriever, rec, withConverter)

	req := newTestRequest(t, model.FormatMP3)
	events, err := svc.Start(req)
	if err != nil {
		t.Fatalf("Start error = %v", err)
	}

	got := collect(t, events, rec)
	if len(got) == 0 {
		t.Fatal("no events")
	}

	terminal := 0
	last := -1.0
	for _, ev := range got {
		if ev.Progress.Percent < last {
			t.Errorf("percent decreased from %.1f to %.1f", last, ev.Progress.Percent)
		}
		last = ev.Progress.Percent
		if ev.IsTerminal() {
			terminal++
		}
	}
	if terminal != 1 {
		t.Fatalf("got %d terminal events, want 1", terminal)
	}

	final := got[len(got)-1]
	if !final.IsTerminal() {
		t.Fatal("last event is not terminal")
	}
	if final.Progress.Stage != model.StageDone || final.Progress.Percent != 100 {
		t.Errorf("final progress = %+v, want done/100", final.Progress)
	}
	if !final.Result.Succeeded() || final.Result.OutputPath != "/dl/Song.mp3" {
		t.Errorf("result = %+v", final.Result)
	}

	if _, err := os.Stat(req.Destination); err != nil {
		t.Errorf("destination not created: %v", err)
	}
	if rec.Len() != 1 {
		t.Errorf("recorded %d results, want 1", rec.Len())
	}
	if svc.Busy() {
		t.Error("service still busy after completion")
	}

	plan := retriever.plans[0]
	if !plan.ExtractAudio || plan.AudioFormat != "mp3" {
		t.Errorf("plan = %+v, want mp3 extraction", plan)
	}
}

func TestService_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "private video",
			err:  &RunError{Err: errors.New("exit status 1"), Stderr: "ERROR: [youtube] abc: Private video"},
			want: KindNetworkFailure,
		},
		{
			name: "conversion",
			err:  &RunError{Err: errors.New("exit status 1"), Stderr: "ERROR: Postprocessing: Conversion failed!"},
			want: KindConversionFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			svc := NewService(&fakeRetriever{
				reports: []RawProgress{{Status: RawStatusDownloading, Percent: 40}},
				err:     tt.err,
			}, rec, withConverter)

			events, err := svc.Start(newTestRequest(t, model.FormatMP4))
			if err != nil {
				t.Fatalf("Start error = %v", err)
			}

			got := collect(t, events, rec)
			final := got[len(got)-1]
			if final.Result == nil {
				t.Fatal("last event has no result")
			}
			if final.Result.Outcome != model.OutcomeFailure {
				t.Errorf("Outcome = %s, want failure", final.Result.Outcome)
			}
			if final.Result.ErrorKind != tt.want.String() {
				t.Errorf("ErrorKind = %s, want %s", final.Result.ErrorKind, tt.want)
			}
			if final.Result.Message == "" {
				t.Error("failure message is empty")
			}
			if final.Progress.Stage != model.StageFailed {
				t.Errorf("Stage = %s, want failed", final.Progress.Stage)
			}
			if svc.Busy() {
				t.Error("service still busy after failure")
			}
		})
	}
}

func TestService_StorageFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	retriever := &fakeRetriever{path: "/never"}
	rec := &fakeRecorder{}
	svc := NewService(retriever, rec, withConverter)

	req := newTestRequest(t, model.FormatM4A)
	req.Destination = filepath.Join(blocker, "sub")

	events, err := svc.Start(req)
	if err != nil {
		t.Fatalf("Start error = %v", err)
	}
	got := collect(t, events, rec)
	final := got[len(got)-1]
	if final.Result.ErrorKind != KindStorageFailure.String() {
		t.Errorf("ErrorKind = %s, want %s", final.Result.ErrorKind, KindStorageFailure)
	}
	if len(retriever.plans) != 0 {
		t.Error("retriever ran despite storage failure")
	}
}

func TestService_Busy(t *testing.T) {
	release := make(chan struct{})
	rec := &fakeRecorder{}
	svc := NewService(&fakeRetriever{path: "/dl/a.webm", release: release}, rec, withoutConverter)

	events, err := svc.Start(newTestRequest(t, model.FormatWEBM))
	if err != nil {
		t.Fatalf("Start error = %v", err)
	}
	if !svc.Busy() {
		t.Error("Busy() = false during download")
	}

	if _, err := svc.Start(newTestRequest(t, model.FormatWEBM)); !errors.Is(err, ErrBusy) {
		t.Errorf("second Start error = %v, want ErrBusy", err)
	}

	close(release)
	collect(t, events, rec)

	if rec.Len() != 1 {
		t.Errorf("recorded %d results, want 1", rec.Len())
	}

	// Ready again after the terminal event.
	events, err = svc.Start(newTestRequest(t, model.FormatWEBM))
	if err != nil {
		t.Fatalf("Start after completion error = %v", err)
	}
	collect(t, events, rec)
}

func TestService_DefaultDestination(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "YouTube")
	svc := NewService(&fakeRetriever{path: "/dl/a.m4a"}, nil, withoutConverter)
	svc.defaultDir = func() (string, error) { return dir, nil }

	req := newTestRequest(t, model.FormatM4A)
	req.Destination = ""

	events, err := svc.Start(req)
	if err != nil {
		t.Fatalf("Start error = %v", err)
	}
	got := collect(t, events, nil)
	if !got[len(got)-1].Result.Succeeded() {
		t.Fatalf("result = %+v", got[len(got)-1].Result)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("default destination not created: %v", err)
	}
	if req.Destination != "" {
		t.Error("Start modified the caller's request")
	}
}

func TestService_NilRequest(t *testing.T) {
	svc := NewService(&fakeRetriever{}, nil, withoutConverter)
	if _, err := svc.Start(nil); err == nil {
		t.Error("Start(nil) error = nil")
	}
	if svc.Busy() {
		t.Error("Busy() after rejected start")
	}
}
