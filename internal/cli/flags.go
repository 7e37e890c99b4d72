package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	Debug         bool
	ListVoices    bool
	ListLanguages bool
	Theme         string

	// Speech flags
	Rate   int
	Volume float64
	Voice  string
	Pitch  int

	// Translation flags
	Translator       string
	TranslationModel string

	// Export flags
	ExportProvider string
	ExportLanguage string
	ExportFallback string

	// Fetch flags
	Timeout time.Duration
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Theme:          "Light",
		Rate:           150,
		Volume:         1.0,
		Pitch:          50,
		Translator:     "google",
		ExportProvider: "gtts",
		ExportLanguage: "en",
		Timeout:        30 * time.Second,
	}
}
