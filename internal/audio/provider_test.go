package audio

import (
	"context"
	"errors"
	"testing"
)

// mockProvider implements Provider interface for testing
type mockProvider struct {
	name          string
	generateErr   error
	availableErr  error
	generateCalls int
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.generateCalls++
	return m.generateErr
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "gtts" {
		t.Errorf("Expected provider 'gtts', got '%s'", config.Provider)
	}

	if config.Language != "en" {
		t.Errorf("Expected language 'en', got '%s'", config.Language)
	}

	if config.OpenAIModel != "tts-1" {
		t.Errorf("Expected OpenAI model 'tts-1', got '%s'", config.OpenAIModel)
	}

	if config.OpenAIVoice != "alloy" {
		t.Errorf("Expected OpenAI voice 'alloy', got '%s'", config.OpenAIVoice)
	}

	if config.OpenAISpeed != 1.0 {
		t.Errorf("Expected OpenAI speed 1.0, got %f", config.OpenAISpeed)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		errMsg   string
		wantName string
	}{
		{
			name:     "nil config uses defaults",
			config:   nil,
			wantName: "gtts",
		},
		{
			name:    "openai provider without key",
			config:  &Config{Provider: "openai"},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:     "openai provider with key",
			config:   &Config{Provider: "openai", OpenAIKey: "test-key"},
			wantName: "openai",
		},
		{
			name:     "espeak provider",
			config:   &Config{Provider: "espeak", Language: "fr"},
			wantName: "espeak-ng",
		},
		{
			name:     "gtts with espeak fallback",
			config:   &Config{Provider: "gtts", Fallback: "espeak"},
			wantName: "gtts (fallback: espeak-ng)",
		},
		{
			name:     "fallback equal to provider is ignored",
			config:   &Config{Provider: "gtts", Fallback: "gtts"},
			wantName: "gtts",
		},
		{
			name:    "unknown fallback",
			config:  &Config{Provider: "gtts", Fallback: "nope"},
			wantErr: true,
			errMsg:  "fallback provider: unknown audio provider: nope",
		},
		{
			name:    "unknown provider",
			config:  &Config{Provider: "unknown"},
			wantErr: true,
			errMsg:  "unknown audio provider: unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("NewProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}
			if !tt.wantErr && provider.Name() != tt.wantName {
				t.Errorf("Name() = %v, want %v", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProvider_ESpeakUsesLanguageAsVoice(t *testing.T) {
	provider, err := NewProvider(&Config{Provider: "espeak", Language: "de"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if voice := provider.(*ESpeakProvider).espeak.Config().Voice; voice != "de" {
		t.Errorf("voice = %s, want de", voice)
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Test successful primary
	ctx := context.Background()
	err := provider.GenerateAudio(ctx, "test", "output.mp3")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 0 {
		t.Errorf("Expected 0 fallback calls, got %d", fallback.generateCalls)
	}

	// Test primary failure, fallback success
	primary.generateErr = errors.New("primary failed")
	primary.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.mp3")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 1 {
		t.Errorf("Expected 1 fallback call, got %d", fallback.generateCalls)
	}

	// Test both fail
	fallback.generateErr = errors.New("fallback failed")
	primary.generateCalls = 0
	fallback.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.mp3")
	if err == nil {
		t.Error("GenerateAudio() expected error when both providers fail")
	}
}

func TestProviderWithFallbackName(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	expected := "primary (fallback: fallback)"
	if provider.Name() != expected {
		t.Errorf("Name() = %v, want %v", provider.Name(), expected)
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Both available
	err := provider.IsAvailable()
	if err != nil {
		t.Errorf("IsAvailable() unexpected error: %v", err)
	}

	// Primary unavailable, fallback available
	primary.availableErr = errors.New("primary unavailable")
	err = provider.IsAvailable()
	if err != nil {
		t.Errorf("IsAvailable() unexpected error when fallback available: %v", err)
	}

	// Primary available, fallback unavailable
	primary.availableErr = nil
	fallback.availableErr = errors.New("fallback unavailable")
	err = provider.IsAvailable()
	if err != nil {
		t.Errorf("IsAvailable() unexpected error when primary available: %v", err)
	}

	// Both unavailable
	primary.availableErr = errors.New("primary unavailable")
	err = provider.IsAvailable()
	if err == nil {
		t.Error("IsAvailable() expected error when both providers unavailable")
	}
}
