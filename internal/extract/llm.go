package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/vocab"
	"github.com/quillhq/quill/pkg/models"
)

// Guess is the untrusted per-field output of the language model. It must
// pass through Normalize before it reaches conversation state.
type Guess struct {
	// Value is the model's raw text for the field.
	Value string

	// Present is false when the model reported no value.
	Present bool

	// Confidence is the model's self-reported confidence. Not clamped.
	Confidence float64
}

// LLMExtractor asks a chat model for a best-effort guess at every field of
// the record in a single call. Any failure, from transport errors to
// unparsable output, degrades to an all-absent result: the conversation
// then collects every field through follow-up questions instead.
type LLMExtractor struct {
	client openai.Client
	model  string
}

// NewLLMExtractor creates an extractor from OpenAI configuration.
func NewLLMExtractor(cfg config.OpenAIConfig) *LLMExtractor {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &LLMExtractor{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// ExtractAll returns a guess for every field of the record. The result
// always contains an entry per field; fields the model could not fill are
// absent with confidence 0.
func (e *LLMExtractor) ExtractAll(ctx context.Context, utterance string) map[models.Field]Guess {
	start := time.Now()

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionPrompt()),
			openai.UserMessage(utterance),
		},
		MaxCompletionTokens: openai.Int(512),
		Temperature:         openai.Float(0.1),
	})
	if err != nil {
		logging.Warn("language model extraction failed, falling back to follow-up questions",
			"error", err)
		return AllAbsent()
	}
	if len(resp.Choices) == 0 {
		logging.Warn("language model returned no choices, falling back to follow-up questions")
		return AllAbsent()
	}

	guesses, err := parseExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		logging.Warn("language model response unparsable, falling back to follow-up questions",
			"error", err)
		return AllAbsent()
	}

	logging.Debug("language model extraction completed",
		"model", e.model,
		"duration_ms", time.Since(start).Milliseconds())

	return guesses
}

// AllAbsent returns a guess map with no value for any field. It is both the
// failure result of ExtractAll and the seed used when no extractor is
// configured at all.
func AllAbsent() map[models.Field]Guess {
	guesses := make(map[models.Field]Guess, len(models.AllFields))
	for _, field := range models.AllFields {
		guesses[field] = Guess{}
	}
	return guesses
}

// extractionPrompt builds the system prompt, enumerating the legal values
// for every closed-vocabulary field.
func extractionPrompt() string {
	var b strings.Builder
	b.WriteString("Extract issue fields from the user's message. ")
	b.WriteString("Respond with only a JSON object of the form ")
	b.WriteString(`{"title": {"value": ..., "confidence": ...}, "type": {...}, "project": {...}, "priority": {...}, "description": {...}}. `)
	b.WriteString(`Use null for "value" when the message does not state the field. `)
	b.WriteString(`"confidence" is a number between 0 and 1.` + "\n")
	fmt.Fprintf(&b, "Legal values for type: %s.\n", strings.Join(vocab.Values(models.FieldType), ", "))
	fmt.Fprintf(&b, "Legal values for project: %s.\n", strings.Join(vocab.Values(models.FieldProject), ", "))
	fmt.Fprintf(&b, "Legal values for priority: %s.\n", strings.Join(vocab.Values(models.FieldPriority), ", "))
	b.WriteString("Title and description are free text taken from the message.")
	return b.String()
}

// fieldGuess mirrors one field entry of the model's JSON response.
type fieldGuess struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
}

// parseExtraction decodes the model's response into guesses. The model
// sometimes wraps JSON in a code fence or surrounding prose, so decoding
// starts at the first brace and ends at the last.
func parseExtraction(raw string) (map[models.Field]Guess, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var payload map[string]fieldGuess
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}

	guesses := AllAbsent()
	for _, field := range models.AllFields {
		entry, ok := payload[string(field)]
		if !ok || entry.Value == nil || strings.TrimSpace(*entry.Value) == "" {
			continue
		}
		guesses[field] = Guess{
			Value:      strings.TrimSpace(*entry.Value),
			Present:    true,
			Confidence: entry.Confidence,
		}
	}
	return guesses, nil
}
