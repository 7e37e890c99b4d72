package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator translates with an OpenAI chat model
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates an OpenAI provider
func NewOpenAITranslator(config *Config) (*OpenAITranslator, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Name returns the provider name
func (o *OpenAITranslator) Name() string {
	return "openai"
}

// Translate asks the chat model for a translation and nothing else
func (o *OpenAITranslator) Translate(ctx context.Context, text, targetCode string) (string, error) {
	text, err := checkText(text)
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(text, targetCode),
			},
		},
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("no translation returned")
	}

	log.Debug("OpenAI translation done", "model", o.model, "target", targetCode,
		"tokens", resp.Usage.TotalTokens)
	return translated, nil
}
