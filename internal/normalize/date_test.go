package normalize

import (
	"testing"
	"time"
)

func TestCleanDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // yyyy-mm-dd, empty for nil
	}{
		{"iso", "2021-03-15", "2021-03-15"},
		{"iso with time", "2021-03-15 00:00:00", "2021-03-15"},
		{"day first slash", "15/03/2021", "2021-03-15"},
		{"day first dash", "15-03-2021", "2021-03-15"},
		{"excel serial", "44270", "2021-03-15"},
		{"blank", "", ""},
		{"garbage", "marzo", ""},
		{"small number is not a serial", "12", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanDate(tt.input)
			if tt.want == "" {
				if got != nil {
					t.Errorf("CleanDate(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("CleanDate(%q) = nil, want %s", tt.input, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("CleanDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestCleanDateSerialEpoch(t *testing.T) {
	// Serial 1 is 1899-12-31 in the 1900 system; our window starts well
	// above that, so check a known in-window value instead.
	got := CleanDate("44197")
	want := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("CleanDate(44197) = %v, want %v", got, want)
	}
}
