// Package converter detects the external conversion binary (ffmpeg) that
// the retrieval library needs for audio transcoding and stream merging.
// The probe runs once at startup and its Capability is passed by value to
// everything that gates formats on it.
package converter
