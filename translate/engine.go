// Package translate sends marked text to a translation engine with bounded
// retries, validation and caching. Ordinary failures never reach the caller:
// original text is used instead and the failure is recorded.
package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"reflow/config"
)

// Engine translates a single chunk of text.
type Engine interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Passthrough returns text unchanged, used when translation is off so the
// rest of the pipeline still runs.
type Passthrough struct{}

func (Passthrough) Name() string {
	return config.TranslatorEngineNone.String()
}

func (Passthrough) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

const promptTemplate = `You translate chess books from English into %[1]s.
Rules:
- Translate prose only, keep chess notation (move numbers, SAN moves, results, evaluation symbols) exactly as it is.
- Keep every [[B]] and [[/B]] marker and keep them around the same words they surround.
- Keep every placeholder of the form <<<CHESS_n>>> unchanged and in place.
- Keep line breaks.
- Output the translation only, without comments.`

// OpenAI is a chat model engine.
type OpenAI struct {
	chat   model.BaseChatModel
	system string
}

// NewOpenAI creates chat model engine translating into target language.
func NewOpenAI(ctx context.Context, cfg *config.TranslatorConfig, target language.Tag, timeout time.Duration) (*OpenAI, error) {
	temperature := cfg.Temperature
	mc := &openai.ChatModelConfig{
		Model:       cfg.Model,
		APIKey:      cfg.APIKey.Reveal(),
		Temperature: &temperature,
		Timeout:     timeout,
	}
	if cfg.BaseURL != "" {
		mc.BaseURL = cfg.BaseURL
	}
	chat, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("unable to create chat model: %w", err)
	}
	return &OpenAI{
		chat:   chat,
		system: fmt.Sprintf(promptTemplate, display.English.Tags().Name(target)),
	}, nil
}

func (o *OpenAI) Name() string {
	return config.TranslatorEngineOpenai.String()
}

func (o *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	msg, err := o.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(o.system),
		schema.UserMessage(text),
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}
