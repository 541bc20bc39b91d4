package model

import (
	"fmt"
	"strings"
)

// Mode selects between audio extraction and video download.
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// Format is the container/codec the user wants on disk.
type Format string

const (
	FormatM4A  Format = "m4a"
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatMP4  Format = "mp4"
	FormatWEBM Format = "webm"
)

// Quality is a coarse preset mapped to bitrate (audio) or height (video).
type Quality string

const (
	QualityBest   Quality = "best"
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// formatSpec describes one row of the format table.
type formatSpec struct {
	mode              Mode
	requiresConverter bool
	fallback          Format
	label             string
}

// formatTable is the single source of truth for mode/format compatibility
// and for which formats need the conversion binary.
var formatTable = map[Format]formatSpec{
	FormatM4A:  {mode: ModeAudio, label: "M4A"},
	FormatMP3:  {mode: ModeAudio, requiresConverter: true, fallback: FormatM4A, label: "MP3"},
	FormatWAV:  {mode: ModeAudio, requiresConverter: true, fallback: FormatM4A, label: "WAV"},
	FormatMP4:  {mode: ModeVideo, requiresConverter: true, fallback: FormatWEBM, label: "MP4"},
	FormatWEBM: {mode: ModeVideo, label: "WEBM"},
}

// modeFormats keeps display order stable; map iteration would not.
var modeFormats = map[Mode][]Format{
	ModeAudio: {FormatM4A, FormatMP3, FormatWAV},
	ModeVideo: {FormatMP4, FormatWEBM},
}

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModeAudio, ModeVideo}
}

// Qualities returns all quality presets from best to worst.
func Qualities() []Quality {
	return []Quality{QualityBest, QualityHigh, QualityMedium, QualityLow}
}

// FormatsFor returns the formats valid for mode, or nil for an unknown mode.
func FormatsFor(mode Mode) []Format {
	formats := modeFormats[mode]
	if formats == nil {
		return nil
	}
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// DefaultFormat returns the format preselected for mode. It is always one
// that works without the conversion binary.
func DefaultFormat(mode Mode) Format {
	if mode == ModeVideo {
		return FormatWEBM
	}
	return FormatM4A
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeFormats[m]
	return ok
}

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// Label returns the upper-case name used in history lines.
func (m Mode) Label() string {
	return strings.ToUpper(string(m))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// Mode returns the mode f belongs to.
func (f Format) Mode() Mode {
	return formatTable[f].mode
}

// AllowedFor reports whether f may be used with mode.
func (f Format) AllowedFor(mode Mode) bool {
	entry, ok := formatTable[f]
	return ok && entry.mode == mode
}

// RequiresConverter reports whether producing f needs the conversion binary.
func (f Format) RequiresConverter() bool {
	return formatTable[f].requiresConverter
}

// Fallback returns the converter-free format offered instead of f. It is
// empty for formats that need no converter.
func (f Format) Fallback() Format {
	return formatTable[f].fallback
}

// Label returns the display name, e.g. "MP3".
func (f Format) Label() string {
	if entry, ok := formatTable[f]; ok {
		return entry.label
	}
	return strings.ToUpper(string(f))
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// Valid reports whether q is a known quality preset.
func (q Quality) Valid() bool {
	switch q {
	case QualityBest, QualityHigh, QualityMedium, QualityLow:
		return true
	}
	return false
}

// String returns the string representation of Quality
func (q Quality) String() string {
	return string(q)
}

// AudioQuality maps q to yt-dlp's VBR scale where 0 is best and 9 worst.
func (q Quality) AudioQuality() string {
	switch q {
	case QualityHigh:
		return "2"
	case QualityMedium:
		return "5"
	case QualityLow:
		return "9"
	default:
		return "0"
	}
}

// MaxHeight returns the vertical resolution cap for video, 0 meaning none.
func (q Quality) MaxHeight() int {
	switch q {
	case QualityHigh:
		return 1080
	case QualityMedium:
		return 720
	case QualityLow:
		return 480
	default:
		return 0
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode: %q", s)
	}
	return m, nil
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown format: %q", s)
	}
	return f, nil
}

// ParseQuality parses a quality name case-insensitively.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if !q.Valid() {
		return "", fmt.Errorf("unknown quality: %q", s)
	}
	return q, nil
}
