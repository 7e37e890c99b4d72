package audio

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Provider defines the interface for text-to-speech file providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "gtts", "openai" or "espeak"
	Fallback string // Optional fallback provider name
	Language string // Language the file is synthesized in

	// gTTS-specific settings
	GTTSRequestsPerMinute int

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed float64 // 0.25 to 4.0

	// espeak-specific settings
	ESpeak *ESpeakConfig
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:              "gtts",
		Language:              "en",
		GTTSRequestsPerMinute: 60,
		OpenAIModel:           "tts-1",
		OpenAIVoice:           "alloy",
		OpenAISpeed:           1.0,
	}
}

// NewProvider creates the appropriate audio provider based on configuration,
// wrapped with the configured fallback if any
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	primary, err := newNamedProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newNamedProvider(config.Fallback, config)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}
	return NewProviderWithFallback(primary, fallback), nil
}

func newNamedProvider(name string, config *Config) (Provider, error) {
	switch name {
	case "gtts":
		return NewGTTSProvider(config), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "espeak":
		espeakConfig := DefaultConfig()
		if config.ESpeak != nil {
			c := *config.ESpeak
			espeakConfig = &c
		}
		if config.Language != "" {
			espeakConfig.Voice = config.Language
		}
		return NewESpeakProvider(espeakConfig), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err != nil {
		log.Warn("Primary audio provider failed, falling back",
			"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)

		return p.fallback.GenerateAudio(ctx, text, outputFile)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
