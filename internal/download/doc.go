// Package download turns UI selections into validated requests and runs
// them through yt-dlp (via github.com/lrstanley/go-ytdlp) one at a time,
// off the UI goroutine. Progress and the final result travel back to the
// caller as typed events on a channel.
package download
