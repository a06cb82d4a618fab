package engine

import (
	"regexp"
	"strings"
)

// Model-output parsing. The upstream model's format is not contractually
// guaranteed, so every extractor here is total: malformed input degrades to
// documented fallback values, never to an error.

// titleMarkerRe matches the TITLE: marker case-insensitively. Matching on
// the raw text keeps byte offsets valid for non-ASCII input, where an
// uppercased copy can change length.
var titleMarkerRe = regexp.MustCompile(`(?i)TITLE:`)

// fillerQuestions pad a short question list, in this fixed order.
var fillerQuestions = []string{
	"Why does this work the way it does?",
	"How does this concept connect to the bigger picture?",
	"What's the key difference between the approaches mentioned?",
}

// fallbackQuestions replace the whole list when the model call itself fails.
var fallbackQuestions = []string{
	"Can you explain the reasoning behind this?",
	"What's the fundamental difference here?",
	"Why is this approach used instead of alternatives?",
}

// fallbackFollowUps replace follow-up suggestions when the model call fails.
var fallbackFollowUps = []string{
	"Can you elaborate on that?",
	"How does this apply in practice?",
	"What should I remember about this for an exam?",
}

const fallbackExplanation = "This is correct based on the section content."

// enumPrefixRe strips leading "1." / "2)" style enumeration.
var enumPrefixRe = regexp.MustCompile(`^\d+[\.)]\s*`)

// cleanTitle strips surrounding quotes, terminal punctuation, and truncates
// to the first 3 words.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimRight(s, ".!?:;,")
	s = strings.Trim(s, `"'`)
	return firstWords(strings.TrimSpace(s), 3)
}

// ExtractTitleSummary splits one raw model response into a title and a
// summary body around a TITLE: marker (case-insensitive). Without a marker
// the whole response is the summary and the title is fabricated from its
// first 3 words.
func ExtractTitleSummary(raw string) (title, summary string) {
	raw = strings.TrimSpace(raw)

	loc := titleMarkerRe.FindStringIndex(raw)
	if loc == nil {
		return cleanTitle(firstWords(raw, 3)), raw
	}

	summary = strings.TrimSpace(raw[:loc[0]])

	rest := raw[loc[1]:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	title = cleanTitle(rest)

	if summary == "" {
		// Nothing before the marker: fall back to the full response, minus a
		// trailing "TITLE: ..." suffix when one runs to the end of the text.
		summary = raw
		if locs := titleMarkerRe.FindAllStringIndex(summary, -1); len(locs) > 0 {
			last := locs[len(locs)-1]
			if !strings.Contains(summary[last[0]:], "\n") {
				summary = strings.TrimSpace(summary[:last[0]])
			}
		}
		if summary == "" {
			summary = raw
		}
	}
	if title == "" {
		title = cleanTitle(firstWords(summary, 3))
	}
	return title, summary
}

// ParseQuestionList extracts exactly 3 questions from a line-oriented model
// response. Lines keep their order; enumeration prefixes and quotes are
// stripped; lines of 10 chars or fewer are dropped. Short lists are padded
// with fillerQuestions, long lists truncated.
func ParseQuestionList(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = enumPrefixRe.ReplaceAllString(line, "")
		line = strings.Trim(line, `"'`)
		if len(line) > 10 {
			questions = append(questions, line)
		}
	}
	for i := 0; len(questions) < 3; i++ {
		questions = append(questions, fillerQuestions[len(questions)%len(fillerQuestions)])
	}
	return questions[:3]
}

// Quiz block markers, per the strict format the quiz prompt requests.
var (
	quizQuestionRe = regexp.MustCompile(`(?s)Q:\s*(.+?)\s*\nA\)`)
	quizCorrectRe  = regexp.MustCompile(`(?i)CORRECT:\s*([A-D])`)
	quizExplainRe  = regexp.MustCompile(`(?is)EXPLANATION:\s*(.+)$`)
	quizOptionRes  = map[string]*regexp.Regexp{
		"A": regexp.MustCompile(`(?s)\nA\)\s*(.+?)(?:\n[B-D]\)|\nCORRECT:|$)`),
		"B": regexp.MustCompile(`(?s)\nB\)\s*(.+?)(?:\n[ACD]\)|\nCORRECT:|$)`),
		"C": regexp.MustCompile(`(?s)\nC\)\s*(.+?)(?:\n[ABD]\)|\nCORRECT:|$)`),
		"D": regexp.MustCompile(`(?s)\nD\)\s*(.+?)(?:\n[A-C]\)|\nCORRECT:|$)`),
	}
)

// parseQuizBlock extracts one QuizQuestion from a "---"-delimited block.
// A block is valid only when the question and all four options are present.
func parseQuizBlock(block string) (QuizQuestion, bool) {
	block = "\n" + strings.TrimSpace(block)

	qm := quizQuestionRe.FindStringSubmatch(block)
	if qm == nil {
		return QuizQuestion{}, false
	}
	question := strings.TrimSpace(qm[1])
	if question == "" {
		return QuizQuestion{}, false
	}

	options := make(map[string]string, 4)
	for _, letter := range []string{"A", "B", "C", "D"} {
		m := quizOptionRes[letter].FindStringSubmatch(block)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if text != "" {
			options[letter] = text
		}
	}
	if len(options) != 4 {
		return QuizQuestion{}, false
	}

	correct := "A"
	if m := quizCorrectRe.FindStringSubmatch(block); m != nil {
		correct = strings.ToUpper(m[1])
	}

	explanation := fallbackExplanation
	if m := quizExplainRe.FindStringSubmatch(block); m != nil {
		explanation = strings.TrimSpace(m[1])
	}

	return QuizQuestion{
		Question:    question,
		Options:     options,
		Correct:     correct,
		Explanation: explanation,
	}, true
}

// ParseQuizBlocks extracts QuizQuestions from a raw model response of
// "---"-separated blocks, in source order. Invalid blocks are dropped.
func ParseQuizBlocks(raw string) []QuizQuestion {
	var out []QuizQuestion
	for _, block := range strings.Split(raw, "---") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if q, ok := parseQuizBlock(block); ok {
			out = append(out, q)
		}
	}
	return out
}

// fallbackQuiz builds the single synthetic quiz question used when fewer
// than 3 valid blocks were parsed.
func fallbackQuiz(sectionTitle string) []QuizQuestion {
	return []QuizQuestion{{
		Question: "What is the main focus of \"" + sectionTitle + "\"?",
		Options: map[string]string{
			"A": "An unrelated topic",
			"B": sectionTitle,
			"C": "A different concept",
			"D": "None of the above",
		},
		Correct:     "B",
		Explanation: "This section focuses on " + sectionTitle + ".",
	}}
}

// SplitSectionContext recovers title and body from the combined context
// string "Section: {title}\n\nContent: {body}".
func SplitSectionContext(sectionContext string) (title, body string) {
	parts := strings.SplitN(sectionContext, "\n\n", 2)
	title = strings.TrimPrefix(parts[0], "Section: ")
	if len(parts) > 1 {
		body = strings.TrimPrefix(parts[1], "Content: ")
	} else {
		body = sectionContext
	}
	return title, body
}

// SectionContext builds the combined context string for chat/quiz calls.
func SectionContext(title, body string) string {
	return "Section: " + title + "\n\nContent: " + body
}
