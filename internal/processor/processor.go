package processor

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/speakeasy/internal/audio"
	"codeberg.org/snonux/speakeasy/internal/blog"
	"codeberg.org/snonux/speakeasy/internal/cli"
	"codeberg.org/snonux/speakeasy/internal/gui"
	"codeberg.org/snonux/speakeasy/internal/playback"
	"codeberg.org/snonux/speakeasy/internal/translation"
)

// Processor builds the services from the command line and config file
type Processor struct {
	flags    *cli.Flags
	settings cli.Settings
	engine   *audio.ESpeak
}

// NewProcessor creates a processor from parsed flags and the viper state
func NewProcessor(flags *cli.Flags) *Processor {
	return newProcessor(flags, cli.LoadSettings())
}

func newProcessor(flags *cli.Flags, settings cli.Settings) *Processor {
	if flags == nil {
		flags = cli.NewFlags()
	}

	p := &Processor{
		flags:    flags,
		settings: settings,
		engine:   audio.New(audio.DefaultConfig()),
	}
	p.engine.SetRate(settings.Rate)
	p.engine.SetVolume(settings.Volume)
	p.engine.SetVoice(settings.Voice)
	p.engine.SetPitch(settings.Pitch)

	return p
}

// ConfigureLogging applies --debug or the log.level setting
func (p *Processor) ConfigureLogging() {
	if p.flags.Debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	if p.settings.LogLevel == "" {
		return
	}
	level, err := log.ParseLevel(p.settings.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, keeping default", "level", p.settings.LogLevel)
		return
	}
	log.SetLevel(level)
}

// BuildServices creates every service the GUI needs. The caller owns the
// returned controller and must Close it.
func (p *Processor) BuildServices() (gui.Services, error) {
	s := p.settings

	translator, err := translation.NewTranslator(&translation.Config{
		Provider:          s.Translator,
		Model:             s.TranslationModel,
		OpenAIKey:         s.OpenAIKey,
		GeminiKey:         s.GeminiKey,
		RequestsPerMinute: s.TranslationRatePerMinute,
	})
	if err != nil {
		return gui.Services{}, fmt.Errorf("translator: %w", err)
	}

	espeakConfig := p.engine.Config()
	providerConfig := audio.DefaultProviderConfig()
	providerConfig.Provider = s.ExportProvider
	providerConfig.Fallback = s.ExportFallback
	providerConfig.Language = s.ExportLanguage
	providerConfig.OpenAIKey = s.OpenAIKey
	providerConfig.ESpeak = &espeakConfig
	if s.GTTSRequestsPerMinute > 0 {
		providerConfig.GTTSRequestsPerMinute = s.GTTSRequestsPerMinute
	}

	provider, err := audio.NewProvider(providerConfig)
	if err != nil {
		return gui.Services{}, fmt.Errorf("audio export: %w", err)
	}
	if err := provider.IsAvailable(); err != nil {
		log.Warn("Audio export provider not available", "provider", provider.Name(), "error", err)
	}

	fetchConfig := blog.DefaultConfig()
	if s.FetchTimeout > 0 {
		fetchConfig.Timeout = s.FetchTimeout
	}
	if s.UserAgent != "" {
		fetchConfig.UserAgent = s.UserAgent
	}

	if err := p.engine.IsAvailable(); err != nil {
		log.Warn("Speech engine not available", "error", err)
	}

	log.Debug("Services configured",
		"translator", translator.Name(),
		"exporter", provider.Name(),
		"language", providerConfig.Language,
		"timeout", fetchConfig.Timeout)

	return gui.Services{
		Engine:     p.engine,
		Controller: playback.NewController(p.engine),
		Fetcher:    blog.NewFetcher(fetchConfig),
		Translator: translator,
		Exporter:   audio.NewExporter(provider, providerConfig.Language),
	}, nil
}

// RunGUIMode launches the GUI application and blocks until it closes
func (p *Processor) RunGUIMode() error {
	services, err := p.BuildServices()
	if err != nil {
		return err
	}

	guiConfig := &gui.Config{
		Rate:  p.settings.Rate,
		Voice: p.settings.Voice,
		Theme: p.settings.Theme,
	}

	app := gui.New(guiConfig, services)
	log.SetOutput(app.LogViewer().Tee(os.Stderr))
	defer log.SetOutput(os.Stderr)

	app.Run()
	return nil
}

// ListVoices prints the installed espeak-ng voices
func (p *Processor) ListVoices(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLANGUAGE\tGENDER")
	for _, v := range p.engine.Voices() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Language, v.Gender)
	}
	return tw.Flush()
}

// ListLanguages prints the translation target languages
func ListLanguages(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tLANGUAGE")
	for _, lang := range translation.Languages() {
		fmt.Fprintf(tw, "%s\t%s\n", lang.Code, lang.Name)
	}
	return tw.Flush()
}
