package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	htgotts "github.com/hegedustibor/htgo-tts"
	"golang.org/x/time/rate"
)

// gttsMaxChunk is the longest text Google Translate TTS accepts per request
const gttsMaxChunk = 100

// speechFileFunc writes the MP3 for one chunk into folder and returns its path
type speechFileFunc func(folder, language, text, name string) (string, error)

// GTTSProvider implements Provider using the Google Translate TTS endpoint
type GTTSProvider struct {
	language    string
	rateLimiter *rate.Limiter
	synthesize  speechFileFunc
}

// NewGTTSProvider creates a new Google Translate TTS provider
func NewGTTSProvider(config *Config) Provider {
	language := config.Language
	if language == "" {
		language = "en"
	}

	perMinute := config.GTTSRequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}

	return &GTTSProvider{
		language:    language,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 5),
		synthesize:  htgoSpeechFile,
	}
}

func htgoSpeechFile(folder, language, text, name string) (string, error) {
	speech := htgotts.Speech{Folder: folder, Language: language}
	return speech.CreateSpeechFile(text, name)
}

// GenerateAudio synthesizes text chunk by chunk and concatenates the MP3 frames
func (p *GTTSProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	chunks := SplitChunks(text, gttsMaxChunk)

	workDir, err := os.MkdirTemp("", "speakeasy-gtts-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait cancelled: %w", err)
		}

		part, err := p.synthesize(workDir, p.language, chunk, fmt.Sprintf("part-%04d", i))
		if err != nil {
			return fmt.Errorf("gTTS request %d/%d failed: %w", i+1, len(chunks), err)
		}
		parts = append(parts, part)
	}

	log.Debug("gTTS synthesis done", "chunks", len(chunks), "language", p.language)

	return concatFiles(parts, outputFile)
}

// Name returns the provider name
func (p *GTTSProvider) Name() string {
	return "gtts"
}

// IsAvailable reports nil; the endpoint needs no key and is checked on use
func (p *GTTSProvider) IsAvailable() error {
	return nil
}

// SplitChunks splits text into pieces of at most max runes, preferring to break
// after sentence punctuation, then at whitespace
func SplitChunks(text string, max int) []string {
	var chunks []string
	rest := []rune(strings.Join(strings.Fields(text), " "))

	for len(rest) > 0 {
		if len(rest) <= max {
			chunks = append(chunks, string(rest))
			break
		}

		cut := -1
		for i := max; i > 0; i-- {
			if strings.ContainsRune(".!?;:,", rest[i-1]) {
				cut = i
				break
			}
		}
		if cut < 0 {
			for i := max; i > 0; i-- {
				if unicode.IsSpace(rest[i]) {
					cut = i
					break
				}
			}
		}
		if cut <= 0 {
			cut = max
		}

		if chunk := strings.TrimSpace(string(rest[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		rest = []rune(strings.TrimLeftFunc(string(rest[cut:]), unicode.IsSpace))
	}

	return chunks
}

// concatFiles writes the given files back to back into outputFile
func concatFiles(parts []string, outputFile string) error {
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	for _, part := range parts {
		in, err := os.Open(part)
		if err != nil {
			return fmt.Errorf("failed to open audio chunk: %w", err)
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}
	}

	return nil
}
