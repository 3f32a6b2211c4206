package normalize

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty maps to sentinel", "", Unspecified},
		{"whitespace only maps to sentinel", "   ", Unspecified},
		{"upper cases", "caaguazú", "CAAGUAZÚ"},
		{"trims", "  Central  ", "CENTRAL"},
		{"keeps diacritics", "Ñeembucú", "ÑEEMBUCÚ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips acute accent", "CAAGUAZÚ", "CAAGUAZU"},
		{"strips grave accent", "CAACUPÈ", "CAACUPE"},
		{"lower case input", "caaguazu", "CAAGUAZU"},
		{"collapses whitespace", " CNEL   OVIEDO ", "CNEL OVIEDO"},
		{"blank becomes sentinel key", "", "SIN ESPECIFICAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.input); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyAccentInsensitive(t *testing.T) {
	if Key("CAAGUAZÚ") != Key("caaguazu") {
		t.Errorf("accented and plain spellings should share one key")
	}
	// Idempotence: a key is its own key.
	k := Key("ÑEEMBUCÚ")
	if Key(k) != k {
		t.Errorf("Key is not idempotent: Key(%q) = %q", k, Key(k))
	}
}
