// Package tutorserver registers the study-assistant MCP tools:
// video_summary, section_chat, quiz_check.
package tutorserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tutor/internal/engine"
	"github.com/anatolykoptev/go_tutor/internal/engine/sources"
)

// RegisterTools registers all tutor tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerVideoSummary(server)
	registerSectionChat(server)
	registerQuizCheck(server)
}

func registerVideoSummary(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_summary",
		Description: "Fetch a YouTube video transcript, segment it into topical sections, and return per-section summaries with study questions and multiple-choice quizzes. Accepts a watch/youtu.be/embed URL or a bare 11-char video ID.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoSummaryInput) (*mcp.CallToolResult, engine.VideoSummaryOutput, error) {
		if input.URL == "" {
			return nil, engine.VideoSummaryOutput{}, errors.New("url is required")
		}

		videoID, err := sources.ExtractVideoID(input.URL)
		if err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}

		langs := engine.Cfg.TranscriptLangs
		if input.Language != "" {
			langs = append([]string{input.Language}, langs...)
		}

		fragments, err := sources.FetchTranscript(ctx, videoID, langs)
		if err != nil {
			return nil, engine.VideoSummaryOutput{}, fmt.Errorf("fetch transcript: %w", err)
		}

		records, err := engine.SummarizeVideo(ctx, videoID, fragments)
		if err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}

		return nil, engine.VideoSummaryOutput{
			VideoID:    videoID,
			Sections:   records,
			Transcript: engine.JoinTranscript(fragments),
		}, nil
	})
}

func registerSectionChat(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "section_chat",
		Description: "Answer a question about one video section, using the section context and prior conversation turns. Returns a brief answer plus 3 suggested follow-up questions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SectionChatInput) (*mcp.CallToolResult, engine.SectionChatOutput, error) {
		if input.SectionContext == "" || input.Question == "" {
			return nil, engine.SectionChatOutput{}, errors.New("section_context and question are required")
		}

		answer, err := engine.AnswerSectionQuestion(ctx, input.SectionContext, input.Question, input.History)
		if err != nil {
			return nil, engine.SectionChatOutput{}, err
		}

		return nil, engine.SectionChatOutput{
			Answer:    answer,
			FollowUps: engine.GenerateFollowUps(ctx, input.Question, answer),
		}, nil
	})
}

func registerQuizCheck(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "quiz_check",
		Description: "Judge a quiz answer for one video section. Option letters are compared directly; free-text answers are judged by the model against the explanation. Returns feedback plus fresh study and quiz questions for the section.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.QuizCheckInput) (*mcp.CallToolResult, engine.QuizCheckOutput, error) {
		if input.SectionContext == "" || input.Question == "" || input.UserAnswer == "" ||
			input.CorrectAnswer == "" || input.Explanation == "" {
			return nil, engine.QuizCheckOutput{}, errors.New("section_context, question, user_answer, correct_answer and explanation are required")
		}

		isCorrect := engine.ValidateQuizAnswer(ctx, input.Question, input.UserAnswer, input.CorrectAnswer, input.Explanation)

		title, body := engine.SplitSectionContext(input.SectionContext)
		return nil, engine.QuizCheckOutput{
			IsCorrect:        isCorrect,
			Feedback:         engine.QuizFeedback(isCorrect, input.CorrectAnswer, input.Explanation),
			NewUserQuestions: engine.GenerateSectionQuestions(ctx, body, title),
			NewQuizQuestions: engine.GenerateQuizQuestions(ctx, body, title),
		}, nil
	})
}
