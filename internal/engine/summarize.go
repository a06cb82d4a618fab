package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Per-operation model parameters. Token budgets bound latency and cost;
// temperatures trade determinism against variety per operation.
const (
	summarizeTemp      = 0.5
	summarizeMaxTokens = 250

	questionsTemp      = 0.7
	questionsMaxTokens = 200

	quizTemp      = 0.7
	quizMaxTokens = 1000
)

// maxUsedTitles caps the exclusion list injected into summarization prompts.
const maxUsedTitles = 5

// maxSectionPromptRunes caps the section text interpolated into a prompt, so
// an unusually dense section cannot blow the model's context window.
const maxSectionPromptRunes = 6000

// SummarizeSection asks the model for a summary and title of one section.
// usedTitles (up to 5, most recent first) are injected as an advisory
// exclusion list to reduce duplicate titles across a run. Failure is
// surfaced as *SummarizationError — there is no safe default summary.
func SummarizeSection(ctx context.Context, sec Section, usedTitles []string) (SectionSummary, error) {
	target := summaryTargetWords(sec.WordCount())

	exclusion := ""
	if len(usedTitles) > 0 {
		titles := usedTitles
		if len(titles) > maxUsedTitles {
			titles = titles[len(titles)-maxUsedTitles:]
		}
		exclusion = fmt.Sprintf(usedTitlesClause, strings.Join(titles, ", "))
	}

	content := TruncateRunes(sec.Text(), maxSectionPromptRunes, "")
	prompt := fmt.Sprintf(summarizePrompt, target, exclusion, content)
	raw, err := CallLLM(ctx, summarizeSystem, prompt, summarizeTemp, summarizeMaxTokens)
	if err != nil {
		return SectionSummary{}, &SummarizationError{Start: sec.Start, Err: err}
	}

	title, body := ExtractTitleSummary(raw)
	return SectionSummary{Title: title, Body: body, Section: sec}, nil
}

// GenerateSectionQuestions asks the model for 3 study questions about a
// section. Never fails: on any error it returns 3 fixed generic questions.
func GenerateSectionQuestions(ctx context.Context, summary, title string) []string {
	prompt := fmt.Sprintf(questionsPrompt, title, summary)
	raw, err := CallLLM(ctx, questionsSystem, prompt, questionsTemp, questionsMaxTokens)
	if err != nil {
		slog.Warn("question generation failed, using fallbacks", slog.Any("error", err))
		return append([]string(nil), fallbackQuestions...)
	}
	return ParseQuestionList(raw)
}

// GenerateQuizQuestions asks the model for 3 multiple-choice questions.
// Never fails: a call error or fewer than 3 parseable blocks yields one
// synthetic question built from the section title.
func GenerateQuizQuestions(ctx context.Context, summary, title string) []QuizQuestion {
	prompt := fmt.Sprintf(quizPrompt, title, summary)
	raw, err := CallLLM(ctx, quizSystem, prompt, quizTemp, quizMaxTokens)
	if err != nil {
		slog.Warn("quiz generation failed, using fallback", slog.Any("error", err))
		return fallbackQuiz(title)
	}

	parsed := ParseQuizBlocks(raw)
	if len(parsed) < 3 {
		slog.Warn("quiz response yielded too few valid blocks",
			slog.Int("valid", len(parsed)), slog.String("section", title))
		return fallbackQuiz(title)
	}
	return parsed[:3]
}

// SummarizeVideo runs the full per-section enrichment pipeline: segment the
// transcript, then sequentially summarize each section and attach its study
// questions and quiz. A section whose summarization fails is logged and
// omitted; the pipeline errors only when no section survives.
func SummarizeVideo(ctx context.Context, videoID string, fragments []TranscriptFragment) ([]SectionRecord, error) {
	IncrSummarizeRequests()

	sections := SegmentFragments(fragments, cfg.SectionTargetSeconds)
	if len(sections) == 0 {
		return nil, errors.New("transcript produced no sections")
	}

	records := make([]SectionRecord, 0, len(sections))
	var usedTitles []string

	for i, sec := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sum, err := SummarizeSection(ctx, sec, usedTitles)
		if err != nil {
			slog.Warn("section skipped",
				slog.String("video", videoID),
				slog.Int("index", i),
				slog.Any("error", err))
			continue
		}
		usedTitles = append(usedTitles, sum.Title)

		records = append(records, SectionRecord{
			Index:     i,
			Start:     sec.Start,
			Title:     sum.Title,
			Summary:   sum.Body,
			Questions: GenerateSectionQuestions(ctx, sum.Body, sum.Title),
			Quiz:      GenerateQuizQuestions(ctx, sum.Body, sum.Title),
		})
		IncrSectionsBuilt()
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("video %s: all %d sections failed summarization", videoID, len(sections))
	}

	slog.Info("video summarized",
		slog.String("video", videoID),
		slog.Int("sections", len(records)),
		slog.Int("skipped", len(sections)-len(records)))
	return records, nil
}
