package engine

import (
	"encoding/json"
	"html"
	"strings"
	"testing"
)

func testRecord() SectionRecord {
	return SectionRecord{
		Index:     0,
		Start:     135,
		Title:     "Lock Contention",
		Summary:   "Locks are the bottleneck & must be sharded.",
		Questions: []string{"Why do locks stall?", "How does sharding help?", "What is contention?"},
		Quiz: []QuizQuestion{{
			Question:    "What stalls the pipeline?",
			Options:     map[string]string{"A": "Disks", "B": "Locks", "C": "GC", "D": "DNS"},
			Correct:     "B",
			Explanation: "Locks stall it.",
		}},
	}
}

func TestRenderSectionsHTML(t *testing.T) {
	got := RenderSectionsHTML("dQw4w9WgXcQ", []SectionRecord{testRecord()})

	// Heading links into the video at the section start.
	if !strings.Contains(got, `href="https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=135s"`) {
		t.Error("missing timestamped video link")
	}
	if !strings.Contains(got, "2:15 - Lock Contention") {
		t.Error("missing formatted heading")
	}

	// Summary is escaped.
	if !strings.Contains(got, "bottleneck &amp; must") {
		t.Error("summary not HTML-escaped")
	}

	// Starter questions rendered as buttons.
	if !strings.Contains(got, "Why do locks stall?") {
		t.Error("missing starter question")
	}

	// Quiz payload round-trips through the escaped data attribute.
	marker := `data-quiz="`
	idx := strings.Index(got, marker)
	if idx < 0 {
		t.Fatal("missing data-quiz attribute")
	}
	rest := got[idx+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		t.Fatal("unterminated data-quiz attribute")
	}
	var q QuizQuestion
	if err := json.Unmarshal([]byte(html.UnescapeString(rest[:end])), &q); err != nil {
		t.Fatalf("data-quiz payload not valid JSON: %v", err)
	}
	if q.Correct != "B" || q.Options["B"] != "Locks" {
		t.Errorf("payload mangled: %+v", q)
	}
}

func TestRenderSectionsHTMLEmpty(t *testing.T) {
	if got := RenderSectionsHTML("vid", nil); got != "" {
		t.Errorf("expected empty output for no sections, got %q", got)
	}
}

func TestJoinTranscript(t *testing.T) {
	fragments := []TranscriptFragment{
		{Text: "hello there", Start: 0},
		{Text: "general remark", Start: 2},
	}
	if got := JoinTranscript(fragments); got != "hello there general remark" {
		t.Errorf("got %q", got)
	}
	if got := JoinTranscript(nil); got != "" {
		t.Errorf("got %q for nil input", got)
	}
}
