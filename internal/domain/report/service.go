package report

import "context"

// Generator is the text-generation backend behind the assistant.
type Generator interface {
	Generate(ctx context.Context, systemInstruction string, prompt string) (string, error)
}

// ReportService answers free-text questions over the studio data
type ReportService interface {
	Ask(ctx context.Context, req AssistantRequest) (AssistantResponse, error)
}
