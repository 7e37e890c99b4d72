package processor

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/speakeasy/internal/cli"
	"codeberg.org/snonux/speakeasy/internal/testutil"
)

func defaultSettings() cli.Settings {
	return cli.Settings{
		Rate:                     150,
		Volume:                   1.0,
		Pitch:                    50,
		Translator:               "google",
		TranslationRatePerMinute: 30,
		ExportProvider:           "gtts",
		ExportLanguage:           "en",
		GTTSRequestsPerMinute:    60,
		FetchTimeout:             30 * time.Second,
		UserAgent:                "Mozilla/5.0",
		Theme:                    "Light",
		LogLevel:                 "info",
	}
}

func TestNewProcessor_AppliesSpeechSettings(t *testing.T) {
	settings := defaultSettings()
	settings.Rate = 210
	settings.Volume = 0.5
	settings.Voice = "de"
	settings.Pitch = 70

	p := newProcessor(nil, settings)

	config := p.engine.Config()
	if config.Speed != 210 || config.Amplitude != 50 || config.Voice != "de" || config.Pitch != 70 {
		t.Errorf("engine config = %+v, want speed 210, amplitude 50, voice de, pitch 70", config)
	}
	if p.flags == nil {
		t.Error("Expected default flags")
	}
}

func TestBuildServices(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*cli.Settings)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*cli.Settings) {},
		},
		{
			name: "espeak export with fallback",
			modify: func(s *cli.Settings) {
				s.ExportProvider = "espeak"
				s.ExportFallback = "gtts"
			},
		},
		{
			name: "gemini translator with key",
			modify: func(s *cli.Settings) {
				s.Translator = "gemini"
				s.GeminiKey = "test-key"
			},
		},
		{
			name:    "unknown translator",
			modify:  func(s *cli.Settings) { s.Translator = "babel" },
			wantErr: "translator: unknown translation provider: babel",
		},
		{
			name:    "openai translator without key",
			modify:  func(s *cli.Settings) { s.Translator = "openai" },
			wantErr: "OpenAI API key not found",
		},
		{
			name:    "openai export without key",
			modify:  func(s *cli.Settings) { s.ExportProvider = "openai" },
			wantErr: "audio export: OpenAI API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := defaultSettings()
			tt.modify(&settings)
			p := newProcessor(cli.NewFlags(), settings)

			services, err := p.BuildServices()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("BuildServices() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildServices() error = %v", err)
			}
			defer services.Controller.Close()

			if services.Engine == nil || services.Fetcher == nil || services.Translator == nil || services.Exporter == nil {
				t.Errorf("missing service in %+v", services)
			}
			if got := services.Exporter.Language(); got != settings.ExportLanguage {
				t.Errorf("export language = %q, want %q", got, settings.ExportLanguage)
			}
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	tests := []struct {
		name  string
		debug bool
		level string
		want  log.Level
	}{
		{"debug flag wins", true, "error", log.DebugLevel},
		{"config level", false, "warn", log.WarnLevel},
		{"unknown level keeps current", false, "chatty", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetLevel(log.InfoLevel)
			flags := cli.NewFlags()
			flags.Debug = tt.debug
			settings := defaultSettings()
			settings.LogLevel = tt.level

			newProcessor(flags, settings).ConfigureLogging()

			if got := log.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListVoices(t *testing.T) {
	p := newProcessor(nil, defaultSettings())

	var buf bytes.Buffer
	if err := p.ListVoices(&buf); err != nil {
		t.Fatalf("ListVoices() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a header and at least one voice, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestListLanguages(t *testing.T) {
	out := testutil.CaptureStdout(t, func() {
		if err := ListLanguages(os.Stdout); err != nil {
			t.Errorf("ListLanguages() error = %v", err)
		}
	})

	for _, want := range []string{"CODE", "en", "English", "fr", "French"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
