package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_tutor/internal/engine"
)

// Transcript fetching with per-fragment timestamps.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track XML
// Fallback: ANDROID Innertube /player → captionTracks

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences. Skips tracks that require PoToken.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches a timedtext XML caption URL and converts each line
// into a timestamped fragment. HTML entities inside lines are stripped.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.TranscriptFragment, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentChrome)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	fragments := make([]engine.TranscriptFragment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanHTML(line.Text)
		if text == "" {
			continue
		}
		fragments = append(fragments, engine.TranscriptFragment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: empty caption track", ErrNoCaptions)
	}
	return fragments, nil
}

// trackFromPlayerResp picks a caption track out of a player response,
// mapping missing-caption cases onto ErrNoCaptions.
func trackFromPlayerResp(playerResp innertubePlayerResp, langs []string) (captionTrack, error) {
	if playerResp.Captions == nil {
		reason := ""
		if playerResp.PlayabilityStatus != nil {
			reason = playerResp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return captionTrack{}, fmt.Errorf("%w: %s", ErrNoCaptions, reason)
		}
		return captionTrack{}, fmt.Errorf("%w: no captions in player response", ErrNoCaptions)
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return captionTrack{}, fmt.Errorf("%w: no caption tracks", ErrNoCaptions)
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return captionTrack{}, fmt.Errorf("%w: all caption tracks require PoToken", ErrNoCaptions)
	}
	return track, nil
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchViaPlayer(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptFragment, error) {
	visitorData := generateVisitorData()
	data, err := postInnerTube(ctx, ytInnertubeURL, innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				VisitorData:       visitorData,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}, map[string]string{
		"User-Agent":               ytAndroidUA,
		"X-Youtube-Client-Name":    "3",
		"X-Youtube-Client-Version": ytAndroidVersion,
		"X-Goog-Visitor-Id":        visitorData,
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(data, &playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	track, err := trackFromPlayerResp(playerResp, langs)
	if err != nil {
		return nil, err
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON
// in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// fetchViaPageScrape scrapes the YouTube watch page HTML and extracts the
// caption track URL from ytInitialPlayerResponse. Works from any IP.
func fetchViaPageScrape(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptFragment, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	track, err := trackFromPlayerResp(playerResp, langs)
	if err != nil {
		return nil, err
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// FetchTranscript fetches the timestamped transcript for a YouTube video,
// consulting the engine transcript cache first.
// Primary:  watch page scrape (works from any IP)
// Fallback: ANDROID Innertube /player
func FetchTranscript(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptFragment, error) {
	engine.IncrTranscriptRequests()

	if engine.Cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
		defer cancel()
	}

	cacheKey := engine.CacheKey("transcript", videoID, strings.Join(langs, ","))
	if fragments, ok := engine.CacheGetTranscript(ctx, cacheKey); ok {
		return fragments, nil
	}

	fragments, scrapeErr := fetchViaPageScrape(ctx, videoID, langs)
	if scrapeErr == nil {
		engine.CacheSetTranscript(ctx, cacheKey, fragments)
		return fragments, nil
	}
	// A definitive no-captions answer is not worth a second network path.
	if errors.Is(scrapeErr, ErrNoCaptions) {
		engine.IncrTranscriptErrors()
		return nil, scrapeErr
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", scrapeErr))

	fragments, err := fetchViaPlayer(ctx, videoID, langs)
	if err != nil {
		engine.IncrTranscriptErrors()
		return nil, err
	}
	engine.CacheSetTranscript(ctx, cacheKey, fragments)
	return fragments, nil
}
