package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	validateTemp      = 0.3
	validateMaxTokens = 10
)

// ValidateQuizAnswer judges a quiz answer. A single-character answer is
// compared to the correct option letter directly, case-insensitively, with
// no model call. Free-text answers are judged by the model against the
// explanation text; any response containing "YES" counts as correct, and a
// failed call counts as incorrect (conservative).
func ValidateQuizAnswer(ctx context.Context, question, userAnswer, correctLabel, explanation string) bool {
	IncrQuizChecks()

	answer := strings.TrimSpace(userAnswer)
	if len(answer) == 1 {
		return strings.EqualFold(answer, strings.TrimSpace(correctLabel))
	}

	prompt := fmt.Sprintf(validatePrompt, question, explanation, userAnswer)
	raw, err := CallLLM(ctx, validateSystem, prompt, validateTemp, validateMaxTokens)
	if err != nil {
		slog.Warn("answer validation failed, treating as incorrect", slog.Any("error", err))
		return false
	}
	return strings.Contains(strings.ToUpper(raw), "YES")
}

// QuizFeedback builds the feedback string shown after an answer is judged.
func QuizFeedback(isCorrect bool, correctLabel, explanation string) string {
	if isCorrect {
		return fmt.Sprintf("Correct! %s", explanation)
	}
	return fmt.Sprintf("Not quite. The correct answer is %s. %s", correctLabel, explanation)
}
