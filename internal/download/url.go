package download

import (
	"net/url"
	"strings"
)

// Video hosts accepted by the builder.
var videoHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
	"www.youtu.be",
}

// Path prefixes on youtube.com that carry the video ID in the next segment.
var videoPathPrefixes = []string{"/shorts/", "/live/", "/embed/", "/v/"}

const shortLinkHost = "youtu.be"

// ValidateVideoURL checks that raw looks like a single-video URL. It does no
// network I/O.
func ValidateVideoURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalidURL(raw, "URL is empty")
	}

	u, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return invalidURL(raw, "not a URL")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidURL(raw, "URL must start with http:// or https://")
	}

	host := strings.ToLower(u.Hostname())
	if !isVideoHost(host) {
		return invalidURL(raw, "unsupported host "+host)
	}

	if !hasVideoReference(host, u) {
		return invalidURL(raw, "URL does not point to a video")
	}

	return nil
}

func isVideoHost(host string) bool {
	for _, h := range videoHosts {
		if host == h {
			return true
		}
	}
	return false
}

func hasVideoReference(host string, u *url.URL) bool {
	if strings.TrimPrefix(host, "www.") == shortLinkHost {
		return strings.Trim(u.Path, "/") != ""
	}

	if u.Path == "/watch" || u.Path == "/watch/" {
		return u.Query().Get("v") != ""
	}

	for _, prefix := range videoPathPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			return strings.Trim(strings.TrimPrefix(u.Path, prefix), "/") != ""
		}
	}

	return false
}
