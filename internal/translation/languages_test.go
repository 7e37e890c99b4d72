package translation

import "testing"

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"English", "en"},
		{"French", "fr"},
		{"Japanese (Romanized)", "ja"},
		{"Russian (Romanized)", "ru"},
		{"Klingon", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LanguageCode(tt.name); got != tt.want {
				t.Errorf("LanguageCode(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("de"); got != "German" {
		t.Errorf("LanguageName(de) = %q, want German", got)
	}
	if got := LanguageName("xx"); got != "xx" {
		t.Errorf("LanguageName(xx) = %q, want xx", got)
	}
}

func TestLanguages_Order(t *testing.T) {
	want := []string{"English", "French", "Spanish", "German", "Hindi",
		"Japanese (Romanized)", "Italian", "Portuguese", "Russian (Romanized)"}

	names := LanguageNames()
	if len(names) != len(want) {
		t.Fatalf("got %d languages, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if names[0] != DefaultLanguage {
		t.Errorf("first language %q should be the default %q", names[0], DefaultLanguage)
	}

	// Callers get a copy
	langs := Languages()
	langs[0].Name = "changed"
	if Languages()[0].Name != "English" {
		t.Error("Languages() exposed the internal table")
	}
}
