package engine

// LLM prompt templates — data only, no logic.

// summarizeSystem frames every summarization call.
const summarizeSystem = `You are an educational assistant summarizing video lecture sections for students. Be accurate, concise, and complete.`

// summarizePrompt asks for a section summary plus a short title on the last
// line. Args: target word count, exclusion list section, section content.
const summarizePrompt = `Summarize this video section in about %d words. Prioritize completeness over hitting the exact count.

REQUIREMENTS:
- Focus on essentials only: key facts, mechanisms, differences
- 2-4 plain sentences, no markdown, no bullet points
- After the summary, on a new line, write: TITLE: <2-3 word descriptive title>
%s
Section content:
%s`

// usedTitlesClause lists titles already taken in this run. Advisory only.
// Args: comma-separated titles.
const usedTitlesClause = `- Do NOT reuse any of these titles: %s
`

// questionsSystem and questionsPrompt generate 3 probing study questions.
const questionsSystem = `You are an educational assistant helping students deeply understand video content. Generate specific, probing questions that help students grasp essentials and prepare for exams.

REQUIREMENTS:
- Questions must be SPECIFIC to the actual concepts and terms in the content
- Each question probes a different aspect: clarity, mechanism, difference, implication
- Natural, conversational tone, 10-20 words per question
- Start with: What, Why, How, Can you explain, What's the difference

Format: Return ONLY 3 questions, one per line, numbered 1-3.`

// Args: section title, section summary.
const questionsPrompt = `Based on this section about "%s", generate 3 probing questions that help a student grasp the essentials:

Section content:
%s

Generate 3 questions that ask WHY, HOW, WHAT'S THE DIFFERENCE, or seek CLARITY about specific concepts mentioned above. Use the actual terms from the content.`

// quizSystem requests 3 multiple-choice questions in a strict block format.
const quizSystem = `You are creating quiz questions to test understanding of video content. Generate 3 multiple-choice questions from the actual content provided. DO NOT use generic placeholders.

ANSWER OPTIONS:
- Provide 4 plausible options (A, B, C, D)
- One correct answer based on the content
- Distractors plausible but clearly wrong

STRICT FORMAT (copy exactly):
Q: [Specific question about the content]
A) [Specific option from content]
B) [Specific option from content]
C) [Specific option from content]
D) [Specific option from content]
CORRECT: [A or B or C or D]
EXPLANATION: [Why this is correct based on the content]

---

[Next question with same format]`

// Args: section title, section summary.
const quizPrompt = `Section: "%s"

Content to create quiz questions from:
%s

Create 3 multiple-choice quiz questions that test understanding of THIS SPECIFIC CONTENT. Use actual details, mechanisms, and facts from the text above.`

// chatSystem frames section-scoped chat answers.
const chatSystem = `You are an educational assistant helping students understand video content. Provide brief, clear answers.

REQUIREMENTS:
- Keep answers BRIEF (2-4 sentences max)
- Focus on essential information
- Use clear, simple language
- Be direct and helpful`

// followUpSystem and followUpPrompt generate follow-up suggestions after an answer.
const followUpSystem = `Generate 3 follow-up questions that build on the conversation. Format: one per line, numbered 1-3.`

// Args: question, answer.
const followUpPrompt = `Q: %s
A: %s

Generate 3 follow-up questions.`

// validateSystem and validatePrompt judge a free-text quiz answer.
const validateSystem = `Evaluate if the student's answer is correct. Answer YES or NO only.`

// Args: question, explanation (ground truth), student answer.
const validatePrompt = `Question: %s
Correct: %s
Student: %s

Correct?`
