package audio

import (
	"context"
	"path/filepath"
	"strings"
)

// ESpeakProvider implements Provider interface for espeak-ng
type ESpeakProvider struct {
	espeak *ESpeak
}

// NewESpeakProvider creates a new espeak-ng provider speaking the given language
func NewESpeakProvider(config *ESpeakConfig) Provider {
	return &ESpeakProvider{espeak: New(config)}
}

// GenerateAudio generates audio using espeak-ng
func (p *ESpeakProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	// Determine format from output file extension
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		return p.espeak.GenerateAudio(ctx, text, outputFile)
	default:
		return p.espeak.GenerateMP3(ctx, text, outputFile)
	}
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return p.espeak.IsAvailable()
}
