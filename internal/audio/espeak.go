package audio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

const espeakBinary = "espeak-ng"

// ESpeakConfig holds configuration for espeak-ng speech
type ESpeakConfig struct {
	Voice     string // Voice identifier as accepted by -v (e.g., "en", "en-gb", "fr")
	Speed     int    // Speech speed in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultConfig returns the default configuration for English speech
func DefaultConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "en",
		Speed:     150,
		Pitch:     50,
		Amplitude: 100,
		WordGap:   0,
	}
}

// Voice is one entry of the espeak-ng voice list
type Voice struct {
	ID       string // Passed to -v
	Name     string // Human readable name
	Language string
	Gender   string
}

// DefaultVoices is used when espeak-ng cannot enumerate its voices
func DefaultVoices() []Voice {
	return []Voice{{ID: "en", Name: "English", Language: "en", Gender: "M"}}
}

// ESpeak is the local speech engine. All setters are safe to call while
// another goroutine is speaking; the new values apply to the next utterance.
type ESpeak struct {
	mu     sync.RWMutex
	config ESpeakConfig

	voicesOnce sync.Once
	voices     []Voice
}

// New creates a new ESpeak instance with the given configuration
func New(config *ESpeakConfig) *ESpeak {
	if config == nil {
		config = DefaultConfig()
	}
	return &ESpeak{config: *config}
}

// IsAvailable checks if espeak-ng is installed
func (e *ESpeak) IsAvailable() error {
	return checkESpeakInstalled()
}

// Config returns a copy of the current configuration
func (e *ESpeak) Config() ESpeakConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// Voices enumerates the installed voices once and caches the result
func (e *ESpeak) Voices() []Voice {
	e.voicesOnce.Do(func() {
		out, err := exec.Command(espeakBinary, "--voices").Output()
		if err != nil {
			log.Warn("Could not list espeak-ng voices, using default", "error", err)
			e.voices = DefaultVoices()
			return
		}
		e.voices = ParseVoices(string(out))
		if len(e.voices) == 0 {
			e.voices = DefaultVoices()
		}
	})
	return append([]Voice(nil), e.voices...)
}

// Speak synthesizes text through the sound card and blocks until it is done.
// Cancelling ctx kills the espeak-ng process.
func (e *ESpeak) Speak(ctx context.Context, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := checkESpeakInstalled(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, espeakBinary, e.speakArgs()...)
	cmd.Stdin = strings.NewReader(text)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// speakArgs builds the espeak-ng arguments for the current configuration
func (e *ESpeak) speakArgs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}
	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}
	return append(args, "--stdin")
}

// GenerateAudio writes a WAV file for the given text
func (e *ESpeak) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	// Ensure output directory exists
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	args := append(e.speakArgs(), "-w", outputFile)
	cmd := exec.CommandContext(ctx, espeakBinary, args...)
	cmd.Stdin = strings.NewReader(text)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// GenerateMP3 generates an MP3 file for the given text
func (e *ESpeak) GenerateMP3(ctx context.Context, text string, outputFile string) error {
	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"

	if err := e.GenerateAudio(ctx, text, tempWAV); err != nil {
		return err
	}

	if err := ConvertWAVToMP3(ctx, tempWAV, outputFile); err != nil {
		os.Remove(tempWAV)
		return err
	}

	return os.Remove(tempWAV)
}

// SetVoice updates the voice
func (e *ESpeak) SetVoice(voice string) {
	if voice == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Voice = voice
}

// SetRate updates the speech speed in words per minute
func (e *ESpeak) SetRate(speed int) {
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Speed = speed
}

// SetVolume maps a 0.0-1.0 volume onto espeak's amplitude, 1.0 being 100
func (e *ESpeak) SetVolume(volume float64) {
	amplitude := int(volume*100 + 0.5)
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Amplitude = amplitude
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeak) SetPitch(pitch int) {
	if pitch < 0 {
		pitch = 0
	} else if pitch > 99 {
		pitch = 99
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Pitch = pitch
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath(espeakBinary); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ParseVoices parses the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en   (en 2)
func ParseVoices(output string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}

		gender := fields[2]
		if i := strings.Index(gender, "/"); i >= 0 {
			gender = gender[i+1:]
		}

		voices = append(voices, Voice{
			ID:       fields[1],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
			Gender:   gender,
		})
	}
	return voices
}

// ConvertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func ConvertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", wavFile, "-acodec", "mp3", "-y", mp3File)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
