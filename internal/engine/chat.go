package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	chatTemp      = 0.7
	chatMaxTokens = 150

	followUpTemp      = 0.7
	followUpMaxTokens = 200
)

// maxChatContextRunes caps the section context carried into chat prompts.
const maxChatContextRunes = 4000

// buildChatPrompt flattens the section context, prior turns, and the new
// question into a single prompt for the completion call.
func buildChatPrompt(sectionContext, question string, history []ChatMessage) string {
	var sb strings.Builder
	sb.WriteString("Section content:\n")
	sb.WriteString(TruncateRunes(sectionContext, maxChatContextRunes, ""))
	sb.WriteString("\n")
	for _, m := range history {
		switch m.Role {
		case "user":
			sb.WriteString("\nStudent: ")
		case "assistant":
			sb.WriteString("\nAssistant: ")
		default:
			continue
		}
		sb.WriteString(m.Content)
	}
	sb.WriteString("\nStudent: ")
	sb.WriteString(question)
	sb.WriteString("\nAssistant:")
	return sb.String()
}

// AnswerSectionQuestion answers a student question scoped to one section,
// with the accumulated conversation as context. Failure is surfaced as
// *AnswerGenerationError — a fabricated answer would be worse than an error.
func AnswerSectionQuestion(ctx context.Context, sectionContext, question string, history []ChatMessage) (string, error) {
	IncrChatRequests()

	prompt := buildChatPrompt(sectionContext, question, history)
	raw, err := CallLLM(ctx, chatSystem, prompt, chatTemp, chatMaxTokens)
	if err != nil {
		return "", &AnswerGenerationError{Err: err}
	}
	return strings.TrimSpace(raw), nil
}

// GenerateFollowUps suggests 3 follow-up questions building on a completed
// exchange. Never fails: on error it returns 3 fixed generic follow-ups.
func GenerateFollowUps(ctx context.Context, question, answer string) []string {
	prompt := fmt.Sprintf(followUpPrompt, question, answer)
	raw, err := CallLLM(ctx, followUpSystem, prompt, followUpTemp, followUpMaxTokens)
	if err != nil {
		slog.Warn("follow-up generation failed, using fallbacks", slog.Any("error", err))
		return append([]string(nil), fallbackFollowUps...)
	}
	return ParseQuestionList(raw)
}
