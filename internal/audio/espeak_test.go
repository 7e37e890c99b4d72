package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const voicesFixture = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-gb           --/M      English_(Great_Britain) gmw/en       (en 2)
 2  en-us           --/F      English_(America)  gmw/en-US            (en 3)
 5  fr-fr           --/M      French_(France)    roa/fr               (fr 5)
`

func TestParseVoices(t *testing.T) {
	voices := ParseVoices(voicesFixture)

	want := []Voice{
		{ID: "af", Name: "Afrikaans", Language: "af", Gender: "M"},
		{ID: "en-gb", Name: "English (Great Britain)", Language: "en-gb", Gender: "M"},
		{ID: "en-us", Name: "English (America)", Language: "en-us", Gender: "F"},
		{ID: "fr-fr", Name: "French (France)", Language: "fr-fr", Gender: "M"},
	}

	if !reflect.DeepEqual(voices, want) {
		t.Errorf("ParseVoices() = %+v, want %+v", voices, want)
	}
}

func TestParseVoices_Empty(t *testing.T) {
	if voices := ParseVoices(""); len(voices) != 0 {
		t.Errorf("ParseVoices(\"\") = %v, want empty", voices)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Voice != "en" {
		t.Errorf("Expected default voice 'en', got '%s'", config.Voice)
	}

	if config.Speed != 150 {
		t.Errorf("Expected default speed 150, got %d", config.Speed)
	}

	if config.Amplitude != 100 {
		t.Errorf("Expected default amplitude 100, got %d", config.Amplitude)
	}
}

func TestSetRate(t *testing.T) {
	espeak := New(nil)

	tests := []struct {
		input    int
		expected int
	}{
		{150, 150}, // Normal speed
		{50, 80},   // Below minimum
		{500, 450}, // Above maximum
		{300, 300}, // Top of the slider
	}

	for _, tt := range tests {
		espeak.SetRate(tt.input)
		if got := espeak.Config().Speed; got != tt.expected {
			t.Errorf("SetRate(%d) resulted in speed %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestSetVolume(t *testing.T) {
	espeak := New(nil)

	tests := []struct {
		input    float64
		expected int
	}{
		{1.0, 100},
		{0.5, 50},
		{0, 0},
		{-1, 0},
		{5, 200},
	}

	for _, tt := range tests {
		espeak.SetVolume(tt.input)
		if got := espeak.Config().Amplitude; got != tt.expected {
			t.Errorf("SetVolume(%v) resulted in amplitude %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestSetPitch(t *testing.T) {
	espeak := New(nil)

	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},
		{0, 0},
		{-5, 0},
		{120, 99},
	}

	for _, tt := range tests {
		espeak.SetPitch(tt.input)
		if got := espeak.Config().Pitch; got != tt.expected {
			t.Errorf("SetPitch(%d) resulted in pitch %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestSetVoice(t *testing.T) {
	espeak := New(nil)

	espeak.SetVoice("fr-fr")
	if got := espeak.Config().Voice; got != "fr-fr" {
		t.Errorf("SetVoice() voice = %s, want fr-fr", got)
	}

	// Empty voice keeps the previous one
	espeak.SetVoice("")
	if got := espeak.Config().Voice; got != "fr-fr" {
		t.Errorf("SetVoice(\"\") voice = %s, want fr-fr", got)
	}
}

func TestSpeakArgs(t *testing.T) {
	espeak := New(&ESpeakConfig{Voice: "en-gb", Speed: 175, Pitch: 40, Amplitude: 90, WordGap: 2})

	want := []string{"-v", "en-gb", "-s", "175", "-p", "40", "-a", "90", "-g", "2", "--stdin"}
	if got := espeak.speakArgs(); !reflect.DeepEqual(got, want) {
		t.Errorf("speakArgs() = %v, want %v", got, want)
	}
}

func TestSpeak_EmptyText(t *testing.T) {
	espeak := New(nil)
	if err := espeak.Speak(context.Background(), "  "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Speak() error = %v, want ErrEmptyText", err)
	}
}

func TestVoices_AlwaysNonEmpty(t *testing.T) {
	// Falls back to DefaultVoices without espeak-ng
	if voices := New(nil).Voices(); len(voices) == 0 {
		t.Error("Voices() returned an empty list")
	}
}

func TestGenerateAudio_Integration(t *testing.T) {
	if checkESpeakInstalled() != nil {
		t.Skip("espeak-ng not installed, skipping integration test")
	}

	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "test.wav")

	espeak := New(nil)
	if err := espeak.GenerateAudio(context.Background(), "Hello world", outputFile); err != nil {
		t.Fatalf("GenerateAudio() failed: %v", err)
	}

	info, err := os.Stat(outputFile)
	if err != nil {
		t.Fatalf("Output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Output file is empty")
	}
}
