package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiTranslator translates with a Gemini model
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a Gemini provider
func NewGeminiTranslator(config *Config) (*GeminiTranslator, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	clientConfig := &genai.ClientConfig{APIKey: config.GeminiKey, Backend: genai.BackendGeminiAPI}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.GeminiBaseURL
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Name returns the provider name
func (g *GeminiTranslator) Name() string {
	return "gemini"
}

// Translate asks the model for a translation and nothing else
func (g *GeminiTranslator) Translate(ctx context.Context, text, targetCode string) (string, error) {
	text, err := checkText(text)
	if err != nil {
		return "", err
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt(text, targetCode)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini translation: %w", err)
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return "", fmt.Errorf("gemini: empty response text")
	}

	log.Debug("Gemini translation done", "model", g.model, "target", targetCode)
	return translated, nil
}
