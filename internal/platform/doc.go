// Package platform holds OS integration: the default download folder,
// directory creation, locating the file yt-dlp produced and showing it in
// the system file manager or default player.
package platform
