package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText is returned when there is nothing to translate
var ErrEmptyText = errors.New("no text to translate")

// Translator translates text into the language identified by targetCode
type Translator interface {
	Translate(ctx context.Context, text, targetCode string) (string, error)
	Name() string
}

// Config selects and configures a translation provider
type Config struct {
	Provider string // "google", "openai" or "gemini"
	Model    string // Model for the LLM providers; empty selects the default

	OpenAIKey string
	GeminiKey string

	// Google endpoint requests allowed per minute
	RequestsPerMinute int

	// Endpoint overrides, used by tests
	GoogleBaseURL string
	OpenAIBaseURL string
	GeminiBaseURL string
}

// DefaultConfig returns the default translation configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:          "google",
		RequestsPerMinute: 30,
	}
}

// NewTranslator creates the configured provider wrapped in a circuit breaker
func NewTranslator(config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		provider Translator
		err      error
	)
	switch config.Provider {
	case "", "google":
		provider = NewGoogleTranslator(config)
	case "openai":
		provider, err = NewOpenAITranslator(config)
	case "gemini":
		provider, err = NewGeminiTranslator(config)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewBreaker(provider), nil
}

// prompt builds the instruction sent to the LLM providers
func prompt(text, targetCode string) string {
	return fmt.Sprintf("Translate the following text to %s (language code %q). "+
		"Respond with only the translation, nothing else.\n\n%s",
		LanguageName(targetCode), targetCode, text)
}

// checkText validates the input and returns it trimmed
func checkText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
