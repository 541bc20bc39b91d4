package model

// Stage is the phase a download is in, as reported to the UI.
type Stage string

const (
	// StageFetching means media streams are being transferred
	StageFetching Stage = "Fetching"

	// StageConverting means the conversion binary is merging or transcoding
	StageConverting Stage = "Converting"

	// StageDone means the download finished successfully
	StageDone Stage = "Done"

	// StageFailed means the download ended with an error
	StageFailed Stage = "Failed"
)

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// IsActive returns true while the worker is still producing the file
func (s Stage) IsActive() bool {
	return s == StageFetching || s == StageConverting
}

// IsTerminal returns true for the stages that end a download
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// ProgressEvent is a normalized progress report for one request.
type ProgressEvent struct {
	Percent float64 // 0 to 100
	Stage   Stage
}

// Event is what the worker sends to the UI. Result is set only on the
// terminal event, which is always the last one on the channel.
type Event struct {
	Progress ProgressEvent
	Result   *DownloadResult
}

// IsTerminal reports whether e ends the event stream.
func (e Event) IsTerminal() bool {
	return e.Result != nil
}
