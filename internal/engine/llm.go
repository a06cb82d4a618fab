package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrNoLLMClient is returned when the engine runs without a configured model.
var ErrNoLLMClient = errors.New("llm client not configured")

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt with per-call temperature and token budget.
// There is no retry here: callers substitute operation-specific fallbacks
// on failure instead of retrying a fundamentally best-effort call.
func CallLLM(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrNoLLMClient
	}
	if llmLimiter != nil {
		if err := llmLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	IncrLLMCalls()
	resp, err := cfg.LLMClient.Complete(ctx, system, prompt,
		llm.WithChatTemperature(temperature),
		llm.WithChatMaxTokens(maxTokens),
	)
	if err != nil {
		IncrLLMErrors()
		return "", err
	}
	return stripFences(resp), nil
}
