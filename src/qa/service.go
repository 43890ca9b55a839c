package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/beer-league/faqbot/src/ai/core"
	"github.com/beer-league/faqbot/src/rulebook"
)

const answerMaxTokens = 1024

// Service answers rulebook questions: current document -> system prompt ->
// model call. Failures are returned as a single wrapped error; a partial or
// garbled answer is never returned.
type Service struct {
	cache *rulebook.Cache
	ai    core.Client
	model string
}

// NewService wires the document cache to a model client. model may be empty to
// use the provider default.
func NewService(cache *rulebook.Cache, ai core.Client, model string) *Service {
	return &Service{cache: cache, ai: ai, model: model}
}

// Ask answers one question against the active rulebook. The question must be
// non-empty; adapters validate that before calling.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	doc, err := s.cache.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("qa: load rulebook: %w", err)
	}

	answer, err := s.ai.AnswerQuestion(ctx, question, core.Options{
		Model:               s.model,
		SystemPrompt:        rulebook.SystemPrompt(doc.Text),
		MaxCompletionTokens: answerMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("qa: model call: %w", err)
	}

	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("qa: model returned empty answer")
	}
	return answer, nil
}
