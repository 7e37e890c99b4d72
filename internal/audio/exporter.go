package audio

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Exporter saves text as an audio file. It always synthesizes in its own
// configured language, whatever language the text was translated to.
type Exporter struct {
	provider Provider
	language string
}

// NewExporter creates an exporter around a provider
func NewExporter(provider Provider, language string) *Exporter {
	if language == "" {
		language = "en"
	}
	return &Exporter{provider: provider, language: language}
}

// Language returns the language files are synthesized in
func (e *Exporter) Language() string {
	return e.language
}

// ProviderName returns the name of the underlying provider
func (e *Exporter) ProviderName() string {
	return e.provider.Name()
}

// Export synthesizes text into path. Empty text returns ErrEmptyText without
// touching the filesystem.
func (e *Exporter) Export(ctx context.Context, text, path string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	text = strings.TrimSpace(text)

	log.Info("Exporting audio", "provider", e.provider.Name(), "language", e.language,
		"path", path, "chars", len(text))

	if err := e.provider.GenerateAudio(ctx, text, path); err != nil {
		return fmt.Errorf("audio export failed: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("audio export produced no file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio export produced an empty file: %s", path)
	}

	return nil
}
