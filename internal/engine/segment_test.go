package engine

import (
	"fmt"
	"testing"
)

// fragSeq builds n fragments spaced step seconds apart, each carrying
// wordsPer words and ending with the given terminator.
func fragSeq(n int, step float64, wordsPer int, terminator string) []TranscriptFragment {
	out := make([]TranscriptFragment, 0, n)
	for i := 0; i < n; i++ {
		text := ""
		for w := 0; w < wordsPer; w++ {
			if w > 0 {
				text += " "
			}
			text += fmt.Sprintf("word%d", w)
		}
		out = append(out, TranscriptFragment{
			Text:     text + terminator,
			Start:    float64(i) * step,
			Duration: step,
		})
	}
	return out
}

func TestSegmentFragmentsEmpty(t *testing.T) {
	if got := SegmentFragments(nil, 60); got != nil {
		t.Errorf("expected nil for empty input, got %d sections", len(got))
	}
}

func TestSegmentFragmentsSingleUnterminated(t *testing.T) {
	fragments := []TranscriptFragment{{Text: "just a few words no period", Start: 0, Duration: 4}}
	sections := SegmentFragments(fragments, 60)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if len(sections[0].Fragments) != 1 {
		t.Errorf("expected 1 fragment in section, got %d", len(sections[0].Fragments))
	}
}

func TestSegmentFragmentsPartition(t *testing.T) {
	// 40 fragments, 6s apart, 15 words each, all sentence-terminated.
	// Every fragment is a legal break point once time and word floors pass.
	fragments := fragSeq(40, 6, 15, ".")
	sections := SegmentFragments(fragments, 60)

	if len(sections) < 2 {
		t.Fatalf("expected multiple sections for a 240s transcript, got %d", len(sections))
	}

	// No fragment dropped, duplicated, or reordered.
	idx := 0
	for si, sec := range sections {
		if len(sec.Fragments) == 0 {
			t.Fatalf("section %d is empty", si)
		}
		if sec.Start != sec.Fragments[0].Start {
			t.Errorf("section %d: Start = %v, want first fragment start %v", si, sec.Start, sec.Fragments[0].Start)
		}
		for _, f := range sec.Fragments {
			if idx >= len(fragments) {
				t.Fatal("more fragments in sections than in input")
			}
			if f != fragments[idx] {
				t.Fatalf("fragment %d out of order or modified", idx)
			}
			idx++
		}
	}
	if idx != len(fragments) {
		t.Errorf("sections cover %d fragments, input had %d", idx, len(fragments))
	}
}

func TestSegmentFragmentsWaitsForSentenceEnd(t *testing.T) {
	// Time and word floors pass early, but nothing ends a sentence until the
	// very last fragment, so everything lands in one section.
	fragments := fragSeq(30, 6, 15, "")
	fragments[len(fragments)-1].Text += "."

	sections := SegmentFragments(fragments, 60)
	if len(sections) != 1 {
		t.Errorf("expected 1 section when no mid-stream sentence boundary exists, got %d", len(sections))
	}
}

func TestSegmentFragmentsWordFloor(t *testing.T) {
	// Plenty of elapsed time and punctuation, but only 2 words per fragment:
	// 30 fragments x 2 = 60 words, under the floor. One trailing section.
	fragments := fragSeq(30, 10, 2, ".")
	sections := SegmentFragments(fragments, 60)
	if len(sections) != 1 {
		t.Errorf("expected 1 section below the word floor, got %d", len(sections))
	}
}

func TestSegmentFragmentsTimeFloor(t *testing.T) {
	// Dense speech: word floor passes almost immediately, but fragments are
	// 2s apart so a break needs 31 fragments of elapsed time.
	fragments := fragSeq(62, 2, 20, ".")
	sections := SegmentFragments(fragments, 60)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	// First break at the first fragment with start-sectionStart >= 60.
	if got := len(sections[0].Fragments); got != 31 {
		t.Errorf("first section has %d fragments, want 31", got)
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"This is a sentence.", true},
		{"Really?", true},
		{"Wow!", true},
		{"trailing space. ", true},
		{"no terminator", false},
		{"comma,", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := endsSentence(tt.text); got != tt.want {
				t.Errorf("endsSentence(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
