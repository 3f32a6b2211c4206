package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("AID_TEST_STR", "warehouse")
	if got := GetEnv("AID_TEST_STR", "fallback"); got != "warehouse" {
		t.Errorf("GetEnv set = %q, want warehouse", got)
	}
	if got := GetEnv("AID_TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("AID_TEST_INT", "40")
	if got := GetEnvInt("AID_TEST_INT", 20); got != 40 {
		t.Errorf("GetEnvInt set = %d, want 40", got)
	}
	t.Setenv("AID_TEST_INT_BAD", "many")
	if got := GetEnvInt("AID_TEST_INT_BAD", 20); got != 20 {
		t.Errorf("GetEnvInt unparseable = %d, want default 20", got)
	}
	if got := GetEnvInt("AID_TEST_INT_MISSING", 20); got != 20 {
		t.Errorf("GetEnvInt missing = %d, want default 20", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", false, false}, // unrecognized falls to the default
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("AID_TEST_BOOL", tt.value)
			if got := GetEnvBool("AID_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
