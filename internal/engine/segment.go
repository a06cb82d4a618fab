package engine

import (
	"log/slog"
	"strings"
)

// sectionMinWords is the floor on accumulated words before a section may
// close. Keeps fast speech from producing tiny sections.
const sectionMinWords = 80

// endsSentence reports whether the fragment text ends at a sentence boundary.
func endsSentence(text string) bool {
	t := strings.TrimRight(text, " \t\n\r")
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// SegmentFragments groups a flat timestamped transcript into sections of
// roughly targetSeconds each, breaking only at sentence boundaries once both
// the time and word thresholds are met. The returned sections partition the
// input: no fragment is dropped, duplicated, or reordered.
//
// A long run-on without terminal punctuation only closes at the final
// fragment. That is accepted; no lookahead correction is applied.
func SegmentFragments(fragments []TranscriptFragment, targetSeconds float64) []Section {
	if len(fragments) == 0 {
		return nil
	}
	if targetSeconds <= 0 {
		targetSeconds = 60
	}

	last := fragments[len(fragments)-1]
	totalDuration := last.Start + last.Duration
	estimated := int(totalDuration / targetSeconds)
	if estimated < 3 {
		estimated = 3
	}
	slog.Debug("segmenting transcript",
		slog.Float64("duration_s", totalDuration),
		slog.Int("fragments", len(fragments)),
		slog.Int("estimated_sections", estimated),
	)

	var sections []Section
	var current []TranscriptFragment
	sectionStart := fragments[0].Start
	words := 0

	for i, f := range fragments {
		current = append(current, f)
		words += countWords(f.Text)

		elapsed := f.Start - sectionStart
		lastFragment := i == len(fragments)-1

		if elapsed >= targetSeconds && words >= sectionMinWords && (endsSentence(f.Text) || lastFragment) {
			sections = append(sections, Section{
				Start:     current[0].Start,
				Fragments: current,
			})
			current = nil
			words = 0
			if !lastFragment {
				sectionStart = fragments[i+1].Start
			}
		}
	}

	if len(current) > 0 {
		sections = append(sections, Section{
			Start:     current[0].Start,
			Fragments: current,
		})
	}

	slog.Debug("segmented transcript", slog.Int("sections", len(sections)))
	return sections
}
