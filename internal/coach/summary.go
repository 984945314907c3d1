package coach

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/felixgeelhaar/remind/internal/store"
)

// SummaryStrategy derives a short reflective summary from free text. The
// keyword table is the default; a model-backed strategy can be swapped in
// without touching the engine contract.
type SummaryStrategy interface {
	Summarize(ctx context.Context, text string) string
}

// SummarizeSession condenses a session transcript with the given strategy.
func SummarizeSession(ctx context.Context, s SummaryStrategy, entries []store.SessionEntry) string {
	if len(entries) == 0 {
		return "No session entries."
	}
	answers := make([]string, 0, len(entries))
	for _, e := range entries {
		answers = append(answers, e.Answer)
	}
	return "Session summary: " + s.Summarize(ctx, strings.Join(answers, " "))
}

// KeywordSummary is the heuristic summarizer: a fixed theme table with a
// template fallback.
type KeywordSummary struct{}

var summaryThemes = []struct {
	keywords []string
	summary  string
}{
	{[]string{"beach", "sunset"}, "A warm, peaceful moment by the beach — sounds like a relaxing trip."},
	{[]string{"dog", "puppy"}, "A joyful memory with a beloved pet — lots of smiles and play."},
	{[]string{"mountain", "hike"}, "An adventurous outdoor memory — you explored nature and felt accomplished."},
	{[]string{"coffee", "cafe"}, "A cozy, social moment over coffee — likely a calm catch-up with friends."},
	{[]string{"nostalgia", "childhood"}, "A nostalgic memory that reminds you of earlier times."},
}

func (KeywordSummary) Summarize(ctx context.Context, text string) string {
	if text == "" {
		return "No details provided."
	}
	t := strings.ToLower(text)
	for _, theme := range summaryThemes {
		for _, k := range theme.keywords {
			if strings.Contains(t, k) {
				return theme.summary
			}
		}
	}
	if len(text) < 80 {
		return fmt.Sprintf("A memorable moment: %q.", text)
	}
	runes := []rune(text)
	if len(runes) > 200 {
		return string(runes[:200]) + "…"
	}
	return text
}

// OpenAISummary asks a chat model for the summary and falls back to the
// keyword strategy when the call fails. Same contract, richer output.
type OpenAISummary struct {
	client   *openai.Client
	model    string
	fallback KeywordSummary
}

// NewOpenAISummary builds the model-backed strategy.
func NewOpenAISummary(apiKey, baseURL, model string) *OpenAISummary {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummary{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAISummary) Summarize(ctx context.Context, text string) string {
	if text == "" {
		return "No details provided."
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You help someone reflect on a personal memory. Reply with one warm, concrete sentence summarizing the memory described. No preamble.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens: 80,
	})
	if err != nil || len(resp.Choices) == 0 {
		return o.fallback.Summarize(ctx, text)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return o.fallback.Summarize(ctx, text)
	}
	return out
}
