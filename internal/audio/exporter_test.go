package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fileProvider writes a fixed payload to the output file
type fileProvider struct {
	payload []byte
	err     error
	texts   []string
}

func (f *fileProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputFile, f.payload, 0644)
}

func (f *fileProvider) Name() string { return "file" }
func (f *fileProvider) IsAvailable() error { return nil }

func TestExporter_Export(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		provider *fileProvider
		wantErr  error
		wantFile bool
		anyErr   bool
	}{
		{
			name:     "writes file",
			text:     "  Hello world.  ",
			provider: &fileProvider{payload: []byte("ID3fake")},
			wantFile: true,
		},
		{
			name:     "empty text",
			text:     "   ",
			provider: &fileProvider{payload: []byte("x")},
			wantErr:  ErrEmptyText,
		},
		{
			name:     "provider failure",
			text:     "Hello",
			provider: &fileProvider{err: errors.New("network down")},
			anyErr:   true,
		},
		{
			name:     "empty output",
			text:     "Hello",
			provider: &fileProvider{payload: nil},
			anyErr:   true,
			wantFile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.mp3")
			exporter := NewExporter(tt.provider, "")

			err := exporter.Export(context.Background(), tt.text, path)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Export() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("Export() expected error")
				}
			default:
				if err != nil {
					t.Fatalf("Export() unexpected error: %v", err)
				}
			}

			_, statErr := os.Stat(path)
			if exists := statErr == nil; exists != tt.wantFile {
				t.Errorf("file exists = %v, want %v", exists, tt.wantFile)
			}
		})
	}
}

func TestExporter_TrimsTextAndDefaultsLanguage(t *testing.T) {
	provider := &fileProvider{payload: []byte("data")}
	exporter := NewExporter(provider, "")

	if exporter.Language() != "en" {
		t.Errorf("Language() = %s, want en", exporter.Language())
	}
	if exporter.ProviderName() != "file" {
		t.Errorf("ProviderName() = %s, want file", exporter.ProviderName())
	}

	path := filepath.Join(t.TempDir(), "out.mp3")
	if err := exporter.Export(context.Background(), "\n Bonjour \n", path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(provider.texts) != 1 || provider.texts[0] != "Bonjour" {
		t.Errorf("provider got %q, want [Bonjour]", provider.texts)
	}
}
