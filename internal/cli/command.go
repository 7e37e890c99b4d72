package cli

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/speakeasy/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "speakeasy",
		Short: "Text-to-speech and blog-to-audio desktop app",
		Long: `speakeasy reads text aloud, fetches blog posts, translates them and
saves them as MP3 files.

Speech uses the local espeak-ng engine. Translation uses Google Translate
by default (or OpenAI / Gemini), and audio export uses Google TTS by default.

Examples:
  speakeasy                          # Launch the GUI
  speakeasy --theme Dark --rate 180  # Dark theme, faster speech
  speakeasy --translator gemini      # Translate with Gemini (needs GEMINI_API_KEY)
  speakeasy --list-voices            # Print the installed espeak-ng voices`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)
	setDefaults()

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.speakeasy.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	// Local flags
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List the installed espeak-ng voices and exit")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List the translation target languages and exit")
	cmd.Flags().StringVar(&flags.Theme, "theme", flags.Theme, "UI theme: Light or Dark")

	// Speech flags
	cmd.Flags().IntVar(&flags.Rate, "rate", flags.Rate, "Speech rate in words per minute (50 to 300 in the UI)")
	cmd.Flags().Float64Var(&flags.Volume, "volume", flags.Volume, "Speech volume (0.0 to 1.0)")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "espeak-ng voice ID (default: first installed voice)")
	cmd.Flags().IntVar(&flags.Pitch, "pitch", flags.Pitch, "espeak-ng pitch (0 to 99)")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation provider: google, openai or gemini")
	cmd.Flags().StringVar(&flags.TranslationModel, "translation-model", "", "Model for the openai or gemini translator")

	// Export flags
	cmd.Flags().StringVar(&flags.ExportProvider, "export-provider", flags.ExportProvider, "Audio export provider: gtts, openai or espeak")
	cmd.Flags().StringVar(&flags.ExportLanguage, "export-language", flags.ExportLanguage, "Language saved audio is synthesized in")
	cmd.Flags().StringVar(&flags.ExportFallback, "export-fallback", "", "Export provider to use when the primary one fails")

	// Fetch flags
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Blog fetch timeout")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("speech.rate", cmd.Flags().Lookup("rate"))
	viper.BindPFlag("speech.volume", cmd.Flags().Lookup("volume"))
	viper.BindPFlag("speech.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("speech.pitch", cmd.Flags().Lookup("pitch"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("translation-model"))
	viper.BindPFlag("export.provider", cmd.Flags().Lookup("export-provider"))
	viper.BindPFlag("export.language", cmd.Flags().Lookup("export-language"))
	viper.BindPFlag("export.fallback", cmd.Flags().Lookup("export-fallback"))
	viper.BindPFlag("fetch.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
}

// setDefaults registers defaults for keys that have no flag
func setDefaults() {
	viper.SetDefault("fetch.user_agent", "Mozilla/5.0")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("export.gtts_requests_per_minute", 60)
	viper.SetDefault("translation.requests_per_minute", 30)
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("Error getting home directory", "error", err)
			return
		}

		// Search config in home directory with name ".speakeasy" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".speakeasy")
	}

	// Environment variables
	// SPEAKEASY_SPEECH_RATE maps to speech.rate
	viper.SetEnvPrefix("SPEAKEASY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		log.Info("Using config file", "path", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}

// Settings is the effective configuration after flags, env and config file
type Settings struct {
	Rate   int
	Volume float64
	Voice  string
	Pitch  int

	Translator               string
	TranslationModel         string
	TranslationRatePerMinute int

	ExportProvider        string
	ExportLanguage        string
	ExportFallback        string
	GTTSRequestsPerMinute int

	FetchTimeout time.Duration
	UserAgent    string

	Theme    string
	LogLevel string

	OpenAIKey string
	GeminiKey string
}

// LoadSettings reads the effective configuration from viper
func LoadSettings() Settings {
	return Settings{
		Rate:   viper.GetInt("speech.rate"),
		Volume: viper.GetFloat64("speech.volume"),
		Voice:  viper.GetString("speech.voice"),
		Pitch:  viper.GetInt("speech.pitch"),

		Translator:               viper.GetString("translation.provider"),
		TranslationModel:         viper.GetString("translation.model"),
		TranslationRatePerMinute: viper.GetInt("translation.requests_per_minute"),

		ExportProvider:        viper.GetString("export.provider"),
		ExportLanguage:        viper.GetString("export.language"),
		ExportFallback:        viper.GetString("export.fallback"),
		GTTSRequestsPerMinute: viper.GetInt("export.gtts_requests_per_minute"),

		FetchTimeout: viper.GetDuration("fetch.timeout"),
		UserAgent:    viper.GetString("fetch.user_agent"),

		Theme:    viper.GetString("ui.theme"),
		LogLevel: viper.GetString("log.level"),

		OpenAIKey: GetOpenAIKey(),
		GeminiKey: GetGeminiKey(),
	}
}
