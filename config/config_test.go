package config

import "testing"

func TestGetHistoryLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 50},
		{"invalid", "abc", 50},
		{"zero", "0", 50},
		{"negative", "-5", 50},
		{"valid_small", "10", 10},
		{"valid_default", "50", 50},
		{"over_cap", "200", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HISTORY_LIMIT", tt.env)
			if got := getHistoryLimit(); got != tt.want {
				t.Errorf("getHistoryLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetGeminiModel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"empty", "", "gemini-2.5-flash"},
		{"custom", "gemini-2.5-pro", "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_MODEL", tt.env)
			if got := getGeminiModel(); got != tt.want {
				t.Errorf("getGeminiModel() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetAccessSecret(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"empty", "", "righteye"},
		{"custom", "studio42", "studio42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ACCESS_SECRET", tt.env)
			if got := getAccessSecret(); got != tt.want {
				t.Errorf("getAccessSecret() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGeminiEnabled(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		enabled string
		want    bool
	}{
		{"no_key", "", "", false},
		{"key_set", "abc123", "", true},
		{"key_set_explicit_true", "abc123", "true", true},
		{"key_set_disabled", "abc123", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.key)
			t.Setenv("GEMINI_ENABLED", tt.enabled)
			NewConfig()
			if got := Config.Gemini.Enabled; got != tt.want {
				t.Errorf("Gemini.Enabled = %v; want %v", got, tt.want)
			}
		})
	}
}
