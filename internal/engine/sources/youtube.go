// Package sources fetches YouTube transcripts via the Innertube API.
//
// Split by responsibility:
//
//	youtube.go            — video ID extraction, caption availability errors
//	youtube_innertube.go  — Innertube API types, constants, low-level HTTP primitives
//	youtube_transcript.go — timestamped transcript fetching (watch page scrape
//	                        + ANDROID player fallback)
package sources

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNoCaptions marks videos without usable caption tracks (disabled,
// missing, or video unavailable). Callers answer a client error for these
// rather than a transport failure.
var ErrNoCaptions = errors.New("no captions available")

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#/]+)`),
}

var bareVideoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Bare video IDs pass through unchanged.
func ExtractVideoID(rawURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], nil
		}
	}
	if bareVideoIDRe.MatchString(rawURL) {
		return rawURL, nil
	}
	return "", fmt.Errorf("invalid YouTube URL: %q", rawURL)
}
