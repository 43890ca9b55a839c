package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic interface for the LLM operations we need.
type Client interface {
	// AnswerQuestion sends question as the user turn under the given system
	// prompt and returns the model's text response.
	AnswerQuestion(ctx context.Context, question string, opts Options) (string, error)
}
