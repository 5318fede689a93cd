package notes

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAI generates notes via the OpenAI API (official SDK). The same schema
// validation as the Gemini provider is applied to the returned text.
type openAI struct {
	client openai.Client
	model  openai.ChatModel
}

func newOpenAI(cfg Config) (*openAI, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
	}
	if cfg.OpenAIURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIURL))
	}

	model := openai.ChatModel(cfg.OpenAIModel)
	if cfg.OpenAIModel == "" {
		model = openai.ChatModelGPT4oMini
	}

	return &openAI{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (o *openAI) Generate(ctx context.Context, transcript string) ([]Section, error) {
	prompt := notesPrompt + truncateTranscript(transcript) + "\n---\n"

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("notes API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return parseSections(resp.Choices[0].Message.Content)
}
