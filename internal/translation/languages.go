package translation

// Language is one entry of the target language table
type Language struct {
	Name string // Display name shown in the UI
	Code string // Code sent to the translation service
}

// DefaultLanguage is the language selected on start and after reset
const DefaultLanguage = "English"

var languages = []Language{
	{Name: "English", Code: "en"},
	{Name: "French", Code: "fr"},
	{Name: "Spanish", Code: "es"},
	{Name: "German", Code: "de"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Japanese (Romanized)", Code: "ja"},
	{Name: "Italian", Code: "it"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "Russian (Romanized)", Code: "ru"},
}

// Languages returns the supported target languages in display order
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// LanguageNames returns the display names in table order
func LanguageNames() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = l.Name
	}
	return names
}

// LanguageCode resolves a display name to its code. Unknown names map to "en".
func LanguageCode(name string) string {
	for _, l := range languages {
		if l.Name == name {
			return l.Code
		}
	}
	return "en"
}

// LanguageName resolves a code to its display name, or returns the code itself
func LanguageName(code string) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
