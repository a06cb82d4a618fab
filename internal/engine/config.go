package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// CompleteClient is the LLM surface the engine needs.
// *llm.Client from go-kit satisfies it; tests inject fakes.
type CompleteClient interface {
	Complete(ctx context.Context, system, prompt string, opts ...llm.ChatOption) (string, error)
}

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMClient          CompleteClient
	LLMRateLimit       rate.Limit // LLM calls per second (0 = unlimited)

	SectionTargetSeconds float64       // target section length for the segmenter
	TranscriptLangs      []string      // preferred caption languages, in order
	FetchTimeout         time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// llmLimiter gates LLM calls; see CallLLM.
var llmLimiter *rate.Limiter

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.SectionTargetSeconds <= 0 {
		c.SectionTargetSeconds = 60
	}
	if len(c.TranscriptLangs) == 0 {
		c.TranscriptLangs = []string{"en"}
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg

	llmLimiter = nil
	if c.LLMRateLimit > 0 {
		llmLimiter = rate.NewLimiter(c.LLMRateLimit, 1)
	}
}
