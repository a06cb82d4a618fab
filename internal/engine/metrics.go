package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	SummarizeRequests  atomic.Int64
	SectionsBuilt      atomic.Int64
	ChatRequests       atomic.Int64
	QuizChecks         atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"summarize_requests":  metrics.SummarizeRequests.Load(),
		"sections_built":      metrics.SectionsBuilt.Load(),
		"chat_requests":       metrics.ChatRequests.Load(),
		"quiz_checks":         metrics.QuizChecks.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoints.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "transcript_errors",
		"llm_calls", "llm_errors",
		"summarize_requests", "sections_built",
		"chat_requests", "quiz_checks",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrLLMCalls()          { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()         { metrics.LLMErrors.Add(1) }
func IncrSummarizeRequests() { metrics.SummarizeRequests.Add(1) }
func IncrSectionsBuilt()     { metrics.SectionsBuilt.Add(1) }
func IncrChatRequests()      { metrics.ChatRequests.Add(1) }
func IncrQuizChecks()        { metrics.QuizChecks.Add(1) }

// Incrementors for the sources/ sub-package.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
