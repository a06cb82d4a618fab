package engine

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// HTML rendering of the enriched sections for the web client. Each section
// carries its quiz data as an escaped JSON data attribute so the client-side
// quiz UI needs no extra round trip.

// renderQuizButtons serializes each quiz question into a data-quiz attribute.
func renderQuizButtons(sb *strings.Builder, sectionID int, quiz []QuizQuestion) {
	fmt.Fprintf(sb, `<div class="quiz-starters" id="quiz-starters-%d">`, sectionID)
	for qIdx, q := range quiz {
		payload, err := json.Marshal(q)
		if err != nil {
			continue
		}
		fmt.Fprintf(sb,
			`<button class="quiz-question-btn" onclick="startQuiz(%d, %d, this)" data-quiz="%s">%s</button>`,
			sectionID, qIdx, html.EscapeString(string(payload)), html.EscapeString(q.Question))
	}
	sb.WriteString(`</div>`)
}

// renderChatPanel emits the per-section chat widget: starter questions, quiz
// buttons, quiz area, and free-form input.
func renderChatPanel(sb *strings.Builder, rec SectionRecord) {
	i := rec.Index
	fmt.Fprintf(sb, `<div class="chat-container" data-section-id="%d">`, i)
	fmt.Fprintf(sb, `<button class="chat-toggle-btn" onclick="toggleChat(%d)"><span class="chat-icon">&#128172;</span></button>`, i)
	fmt.Fprintf(sb, `<div class="chat-window" id="chat-%d" style="display: none;">`, i)
	fmt.Fprintf(sb, `<div class="chat-header"><span>Ask a question</span><button class="chat-close-btn" onclick="toggleChat(%d)">&times;</button></div>`, i)
	fmt.Fprintf(sb, `<div class="chat-messages" id="chat-messages-%d"><div class="chat-starter-message">Choose a question to start the conversation:</div></div>`, i)

	sb.WriteString(`<div class="chat-starters-wrapper"><div class="starters-label">Ask the AI:</div>`)
	fmt.Fprintf(sb, `<div class="chat-starters" id="chat-starters-%d">`, i)
	for qIdx, q := range rec.Questions {
		fmt.Fprintf(sb, `<button class="starter-question-btn" onclick="askQuestion(%d, %d, this)">%s</button>`,
			i, qIdx, html.EscapeString(q))
	}
	sb.WriteString(`</div><div class="starters-label">Test yourself:</div>`)
	renderQuizButtons(sb, i, rec.Quiz)
	sb.WriteString(`</div>`)

	fmt.Fprintf(sb, `<div class="quiz-area" id="quiz-area-%d" style="display: none;">`, i)
	fmt.Fprintf(sb, `<div class="quiz-question-text" id="quiz-question-%d"></div>`, i)
	fmt.Fprintf(sb, `<div class="quiz-options" id="quiz-options-%d"></div>`, i)
	fmt.Fprintf(sb, `<div class="quiz-custom-answer" id="quiz-custom-%d">`, i)
	fmt.Fprintf(sb, `<input type="text" class="quiz-input" id="quiz-input-%d" placeholder="Or type your answer...">`, i)
	fmt.Fprintf(sb, `<button class="quiz-submit-btn" onclick="submitCustomAnswer(%d)">Submit</button>`, i)
	sb.WriteString(`</div>`)
	fmt.Fprintf(sb, `<div class="quiz-feedback" id="quiz-feedback-%d" style="display: none;"></div>`, i)
	sb.WriteString(`</div>`)

	sb.WriteString(`<div class="chat-input-area">`)
	fmt.Fprintf(sb, `<input type="text" class="chat-input" id="chat-input-%d" placeholder="Type your question..." onkeypress="handleChatEnter(event, %d)">`, i, i)
	fmt.Fprintf(sb, `<button class="chat-send-btn" onclick="sendMessage(%d)">Send</button>`, i)
	sb.WriteString(`</div></div></div>`)
}

// RenderSectionsHTML renders the enriched sections as the HTML block the
// client embeds: per section a timestamped heading linking into the video,
// the summary paragraph, and the interactive chat/quiz panel.
func RenderSectionsHTML(videoID string, records []SectionRecord) string {
	var sb strings.Builder
	for _, rec := range records {
		seconds := int(rec.Start)
		heading := fmt.Sprintf("%s - %s", FormatTimestamp(rec.Start), rec.Title)

		fmt.Fprintf(&sb, `<div class="video-section" data-section-id="%d">`, rec.Index)
		fmt.Fprintf(&sb, `<h2><a href="https://www.youtube.com/watch?v=%s&t=%ds">%s</a></h2>`,
			videoID, seconds, html.EscapeString(heading))
		fmt.Fprintf(&sb, `<p>%s</p>`, html.EscapeString(rec.Summary))
		renderChatPanel(&sb, rec)
		sb.WriteString(`</div>`)
	}
	return sb.String()
}

// JoinTranscript flattens fragments into the plain transcript string
// returned alongside the rendered summary.
func JoinTranscript(fragments []TranscriptFragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
