package engine

import "fmt"

// SummarizationError reports a failed section summarization. There is no
// safe default text for a summary, so this is surfaced rather than absorbed.
type SummarizationError struct {
	Start float64
	Err   error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarize section at %.0fs: %v", e.Start, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// AnswerGenerationError reports a failed chat answer.
type AnswerGenerationError struct {
	Err error
}

func (e *AnswerGenerationError) Error() string {
	return fmt.Sprintf("generate answer: %v", e.Err)
}

func (e *AnswerGenerationError) Unwrap() error { return e.Err }
