package qa

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beer-league/faqbot/src/ai/core"
	"github.com/beer-league/faqbot/src/rulebook"
)

type fakeAI struct {
	lastQuestion string
	lastOpts     core.Options
	answer       string
	err          error
}

func (f *fakeAI) AnswerQuestion(ctx context.Context, question string, opts core.Options) (string, error) {
	f.lastQuestion = question
	f.lastOpts = opts
	return f.answer, f.err
}

func newTestCache(t *testing.T, doc string) *rulebook.Cache {
	t.Helper()
	fetch := func(ctx context.Context) (string, error) { return doc, nil }
	fallback := filepath.Join(t.TempDir(), "rulebook.txt")
	require.NoError(t, os.WriteFile(fallback, []byte(doc), 0o644))
	return rulebook.NewCache(fetch, fallback)
}

func TestService_AskPassesDocumentAndQuestionUnaltered(t *testing.T) {
	doc := "Section 1: Teams must have 5 players.\n\nSection 2: TBD"
	question := "How many players per team?"
	ai := &fakeAI{answer: "Five players, per Section 1."}
	svc := NewService(newTestCache(t, doc), ai, "")

	answer, err := svc.Ask(context.Background(), question)

	require.NoError(t, err)
	assert.Equal(t, "Five players, per Section 1.", answer)
	assert.Equal(t, question, ai.lastQuestion)
	assert.Contains(t, ai.lastOpts.SystemPrompt, doc)
	assert.Equal(t, 1024, ai.lastOpts.MaxCompletionTokens)
}

func TestService_AskReturnsAnswerUnmodified(t *testing.T) {
	ai := &fakeAI{answer: "  answer with surrounding space  "}
	svc := NewService(newTestCache(t, "doc"), ai, "")

	answer, err := svc.Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "  answer with surrounding space  ", answer)
}

func TestService_AskPropagatesModelFailure(t *testing.T) {
	ai := &fakeAI{err: fmt.Errorf("status 500")}
	svc := NewService(newTestCache(t, "doc"), ai, "")

	_, err := svc.Ask(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model call")
}

func TestService_AskRejectsEmptyModelResponse(t *testing.T) {
	ai := &fakeAI{answer: "   "}
	svc := NewService(newTestCache(t, "doc"), ai, "")

	_, err := svc.Ask(context.Background(), "q")

	require.Error(t, err)
}

func TestService_AskUsesConfiguredModel(t *testing.T) {
	ai := &fakeAI{answer: "ok"}
	svc := NewService(newTestCache(t, "doc"), ai, "claude-3-5-haiku-20241022")

	_, err := svc.Ask(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-20241022", ai.lastOpts.Model)
}
