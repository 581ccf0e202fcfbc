package gemini

import (
	"strings"
	"testing"

	"google.golang.org/genai"

	"promptsmith/models"
)

func TestComposeGenerationPromptEmbedsAllFields(t *testing.T) {
	prompt := ComposeGenerationPrompt("A vacation planner", "Friendly", "Busy parents")

	for _, want := range []string{"A vacation planner", "Friendly", "Busy parents"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("composed prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestContentRole(t *testing.T) {
	tests := []struct {
		name string
		in   models.Role
		want genai.Role
	}{
		{"user", models.RoleUser, genai.RoleUser},
		{"model", models.RoleModel, genai.RoleModel},
		{"unknown_defaults_to_user", models.Role("system"), genai.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentRole(tt.in); got != tt.want {
				t.Errorf("contentRole(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestComposeRefineSeedContainsPrompt(t *testing.T) {
	seed := ComposeRefineSeed("You are a pirate.")
	if !strings.Contains(seed, "You are a pirate.") {
		t.Errorf("refine seed missing prompt text: %q", seed)
	}
}
