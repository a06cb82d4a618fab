package engine

// --- Transcript types ---

// TranscriptFragment is one timestamped snippet of caption text as emitted
// by the transcript source. Ordered by start time, immutable once fetched.
type TranscriptFragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Section is a contiguous, time-ordered run of fragments grouped as one
// topical unit. Sections partition the full fragment sequence.
type Section struct {
	Start     float64              `json:"start"`
	Fragments []TranscriptFragment `json:"fragments"`
}

// Text joins the section's fragment texts with single spaces.
func (s Section) Text() string {
	var b []byte
	for i, f := range s.Fragments {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, f.Text...)
	}
	return string(b)
}

// WordCount counts whitespace-separated words across all fragments.
func (s Section) WordCount() int {
	n := 0
	for _, f := range s.Fragments {
		n += countWords(f.Text)
	}
	return n
}

// SectionSummary is the model-generated title and body for one section.
type SectionSummary struct {
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Section Section `json:"-"`
}

// QuizQuestion is a 4-option multiple-choice question for one section.
type QuizQuestion struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"` // labels "A".."D"
	Correct     string            `json:"correct"` // one of "A".."D"
	Explanation string            `json:"explanation"`
}

// ChatMessage is one turn of a per-section conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SectionRecord is the fully enriched per-section result handed to clients.
type SectionRecord struct {
	Index     int            `json:"index"`
	Start     float64        `json:"start"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Questions []string       `json:"questions"`
	Quiz      []QuizQuestion `json:"quiz"`
}

// --- MCP tool types ---

type VideoSummaryInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL or bare 11-char video ID"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code (default: en)"`
}

type VideoSummaryOutput struct {
	VideoID    string          `json:"video_id"`
	Sections   []SectionRecord `json:"sections"`
	Transcript string          `json:"transcript"`
}

type SectionChatInput struct {
	SectionContext string        `json:"section_context" jsonschema:"Section context string: 'Section: {title}\\n\\nContent: {body}'"`
	Question       string        `json:"question" jsonschema:"The student's question about the section"`
	History        []ChatMessage `json:"conversation_history,omitempty" jsonschema:"Prior user/assistant turns for this section"`
}

type SectionChatOutput struct {
	Answer    string   `json:"answer"`
	FollowUps []string `json:"follow_up_questions"`
}

type QuizCheckInput struct {
	SectionContext string `json:"section_context" jsonschema:"Section context string: 'Section: {title}\\n\\nContent: {body}'"`
	Question       string `json:"question" jsonschema:"The quiz question text"`
	UserAnswer     string `json:"user_answer" jsonschema:"Option letter or free-text answer"`
	CorrectAnswer  string `json:"correct_answer" jsonschema:"Correct option letter (A-D)"`
	Explanation    string `json:"explanation" jsonschema:"Why the correct option is correct"`
}

type QuizCheckOutput struct {
	IsCorrect        bool           `json:"is_correct"`
	Feedback         string         `json:"feedback"`
	NewUserQuestions []string       `json:"new_user_questions"`
	NewQuizQuestions []QuizQuestion `json:"new_quiz_questions"`
}
