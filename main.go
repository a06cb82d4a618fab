// go_tutor — YouTube study assistant.
//
// Fetches a video transcript, segments it into topical sections, and uses an
// LLM to generate per-section summaries, study questions, and quizzes.
// Serves the web client over a plain HTTP API and exposes the same engine as
// MCP tools: video_summary, section_chat, quiz_check.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_tutor/internal/apiserver"
	"github.com/anatolykoptev/go_tutor/internal/engine"
	"github.com/anatolykoptev/go_tutor/internal/tutorserver"
)

var (
	version = "dev"
	apiPort = env.Str("API_PORT", "8080")
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_tutor",
		slog.String("api_port", apiPort),
		slog.String("mcp_port", mcpPort),
	)

	go func() {
		if err := apiserver.NewServer(apiPort).Start(); err != nil {
			slog.Error("api server failed", slog.Any("error", err))
		}
	}()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tutor",
		Version: version,
	}, nil)

	tutorserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tutor",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:             env.Str("LLM_MODEL", "gpt-4o-mini"),
		LLMRateLimit:         rate.Limit(env.Float("LLM_RATE_LIMIT", 2)),
		SectionTargetSeconds: env.Float("SECTION_TARGET_SECONDS", 60),
		TranscriptLangs:      env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 24*time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
