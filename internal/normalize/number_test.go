package normalize

import "testing"

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"plain integer", "12", 12},
		{"comma decimal", "3,7", 3},
		{"dot decimal", "5.9", 5},
		{"garbage", "N/A", 0},
		{"spaces around", " 8 ", 8},
		{"negative clamps to zero", "-4", 0},
		{"text with digits", "12 kits", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanNumber(tt.input); got != tt.want {
				t.Errorf("CleanNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanNumberNeverNegative(t *testing.T) {
	for _, input := range []string{"-1", "-0,5", "-999", "0", "7"} {
		if got := CleanNumber(input); got < 0 {
			t.Errorf("CleanNumber(%q) = %d, want >= 0", input, got)
		}
	}
}
