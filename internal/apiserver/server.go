// Package apiserver exposes the study-assistant HTTP API consumed by the
// web client: transcript summarization, section chat, and quiz validation.
package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anatolykoptev/go_tutor/internal/engine"
	"github.com/anatolykoptev/go_tutor/internal/engine/sources"
)

type Server struct {
	router chi.Router
	port   string
}

func NewServer(port string) *Server {
	srv := &Server{port: port}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/transcript", srv.handleTranscript)
		r.Post("/chat", srv.handleChat)
		r.Post("/quiz/validate", srv.handleQuizValidate)
	})
	r.Get("/health", srv.handleHealth)
	r.Get("/metrics", srv.handleMetrics)

	srv.router = r
	return srv
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start() error {
	addr := ":" + s.port
	slog.Info("starting HTTP API", slog.String("addr", addr))
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "go_tutor",
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, engine.FormatMetrics())
}

// --- POST /api/transcript ---

type transcriptRequest struct {
	URL string `json:"url"`
}

type transcriptResponse struct {
	Summary    string `json:"summary"`
	Transcript string `json:"transcript"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	videoID, err := sources.ExtractVideoID(req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fragments, err := sources.FetchTranscript(r.Context(), videoID, engine.Cfg.TranscriptLangs)
	if err != nil {
		slog.Error("transcript fetch failed", slog.String("video", videoID), slog.Any("error", err))
		if errors.Is(err, sources.ErrNoCaptions) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "failed to fetch transcript")
		return
	}

	records, err := engine.SummarizeVideo(r.Context(), videoID, fragments)
	if err != nil {
		slog.Error("summarization failed", slog.String("video", videoID), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		Summary:    engine.RenderSectionsHTML(videoID, records),
		Transcript: engine.JoinTranscript(fragments),
	})
}

// --- POST /api/chat ---

type chatRequest struct {
	SectionContext string               `json:"section_context"`
	Question       string               `json:"question"`
	History        []engine.ChatMessage `json:"conversation_history"`
}

type chatResponse struct {
	Answer    string   `json:"answer"`
	FollowUps []string `json:"follow_up_questions"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SectionContext == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, "section_context and question are required")
		return
	}

	answer, err := engine.AnswerSectionQuestion(r.Context(), req.SectionContext, req.Question, req.History)
	if err != nil {
		slog.Error("chat answer failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Answer:    answer,
		FollowUps: engine.GenerateFollowUps(r.Context(), req.Question, answer),
	})
}

// --- POST /api/quiz/validate ---

type quizValidateRequest struct {
	SectionContext string `json:"section_context"`
	Question       string `json:"question"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation"`
}

func (s *Server) handleQuizValidate(w http.ResponseWriter, r *http.Request) {
	var req quizValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SectionContext == "" || req.Question == "" || req.UserAnswer == "" ||
		req.CorrectAnswer == "" || req.Explanation == "" {
		writeError(w, http.StatusBadRequest, "section_context, question, user_answer, correct_answer and explanation are required")
		return
	}

	isCorrect := engine.ValidateQuizAnswer(r.Context(), req.Question, req.UserAnswer, req.CorrectAnswer, req.Explanation)

	// Fresh questions keep the section panel interactive after each attempt.
	title, body := engine.SplitSectionContext(req.SectionContext)
	out := engine.QuizCheckOutput{
		IsCorrect:        isCorrect,
		Feedback:         engine.QuizFeedback(isCorrect, req.CorrectAnswer, req.Explanation),
		NewUserQuestions: engine.GenerateSectionQuestions(r.Context(), body, title),
		NewQuizQuestions: engine.GenerateQuizQuestions(r.Context(), body, title),
	}
	writeJSON(w, http.StatusOK, out)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response failed", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
