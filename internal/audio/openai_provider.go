package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

// openAIMaxInput is the longest input accepted by one speech request
const openAIMaxInput = 4096

// OpenAIProvider exports audio through the OpenAI speech endpoint
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return newOpenAIProviderWithClient(openai.NewClient(config.OpenAIKey), config), nil
}

func newOpenAIProviderWithClient(client *openai.Client, config *Config) *OpenAIProvider {
	return &OpenAIProvider{client: client, config: config}
}

// responseFormat maps the output extension to a speech response format
func responseFormat(outputFile string) openai.SpeechResponseFormat {
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		return openai.SpeechResponseFormatWav
	case ".opus":
		return openai.SpeechResponseFormatOpus
	case ".aac":
		return openai.SpeechResponseFormatAac
	case ".flac":
		return openai.SpeechResponseFormatFlac
	default:
		return openai.SpeechResponseFormatMp3
	}
}

// GenerateAudio synthesizes text into outputFile. Text longer than one request
// is split into chunks; only MP3 output can be joined, so other formats must
// fit in a single request.
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	format := responseFormat(outputFile)
	chunks := SplitChunks(text, openAIMaxInput)
	if len(chunks) > 1 && format != openai.SpeechResponseFormatMp3 {
		return fmt.Errorf("text too long for OpenAI %s output: %d characters (max %d)",
			format, len([]rune(strings.TrimSpace(text))), openAIMaxInput)
	}

	log.Debug("OpenAI TTS request", "model", p.config.OpenAIModel, "voice", p.config.OpenAIVoice,
		"speed", p.config.OpenAISpeed, "chunks", len(chunks))

	if len(chunks) == 1 {
		return p.writeSpeech(ctx, chunks[0], format, outputFile)
	}

	workDir, err := os.MkdirTemp("", "speakeasy-openai-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		part := filepath.Join(workDir, fmt.Sprintf("part-%04d.mp3", i))
		if err := p.writeSpeech(ctx, chunk, format, part); err != nil {
			return fmt.Errorf("OpenAI TTS chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, part)
	}

	return concatFiles(parts, outputFile)
}

// writeSpeech performs one speech request and streams the audio to path
func (p *OpenAIProvider) writeSpeech(ctx context.Context, input string, format openai.SpeechResponseFormat, path string) error {
	response, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          input,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: format,
	})
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that a key is configured. A test request would cost credits.
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
