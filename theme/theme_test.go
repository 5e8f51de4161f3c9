package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

const testTokens = `{
  "font-size": "16px",
  "line-height": "1.5",
  "heading-scale": "1.25"
}`

func parseTestTheme(t *testing.T, src string) *Definition {
	t.Helper()
	def, err := Parse(strings.NewReader(src), "test.yaml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Unable to parse test theme: %v", err)
	}
	return def
}

func TestParse(t *testing.T) {
	def := parseTestTheme(t, `
id: 0198c3a4-7d26-7a33-b3e5-0d1b2f7c8e91
name: Modern Serif
language: ru
scheme: auto
palette:
  background: "#fffff8"
  text: "#111111"
dark:
  background: "#101014"
features:
  drop_caps: true
`)

	if def.ID != "0198c3a4-7d26-7a33-b3e5-0d1b2f7c8e91" {
		t.Errorf("Expected authored ID to survive, got %s", def.ID)
	}
	if def.Name != "Modern Serif" {
		t.Errorf("Expected name 'Modern Serif', got %s", def.Name)
	}
	if def.Scheme != ColorSchemeAuto {
		t.Errorf("Expected auto scheme, got %s", def.Scheme)
	}
	if def.Lang().String() != "ru" {
		t.Errorf("Expected language 'ru', got %s", def.Lang())
	}
	if def.Palette.Background != "#fffff8" {
		t.Errorf("Unexpected palette background: %s", def.Palette.Background)
	}
	if def.Dark.Background != "#101014" {
		t.Errorf("Unexpected dark background: %s", def.Dark.Background)
	}
	if !def.Features.DropCaps || def.Features.HoverAccent {
		t.Errorf("Unexpected features: %+v", def.Features)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		errSubstr string
	}{
		{
			name:      "unknown field",
			src:       "name: Broken\nshceme: light\n",
			errSubstr: "unable to decode theme definition",
		},
		{
			name:      "missing name",
			src:       "scheme: light\n",
			errSubstr: "unable to validate theme definition",
		},
		{
			name:      "bad scheme",
			src:       "name: Broken\nscheme: purple\n",
			errSubstr: "unable to decode theme definition",
		},
		{
			name:      "bad page box",
			src:       "name: Broken\npage:\n  width: 10\n  height: 10\n",
			errSubstr: "unable to validate theme definition",
		},
		{
			name:      "font without file",
			src:       "name: Broken\nfonts:\n  - family: Serif\n",
			errSubstr: "unable to validate theme definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "test.yaml", zaptest.NewLogger(t))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Expected error containing %q, got: %v", tt.errSubstr, err)
			}
		})
	}
}

func TestParse_RepairsID(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing id", "name: No ID\n"},
		{"invalid id", "id: not-a-uuid\nname: Bad ID\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := parseTestTheme(t, tt.src)
			id, err := uuid.Parse(def.ID)
			if err != nil {
				t.Fatalf("Expected repaired UUID, got %q: %v", def.ID, err)
			}
			if id == uuid.Nil {
				t.Error("Expected non-nil UUID after repair")
			}
		})
	}
}

func TestParse_Language(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty defaults to English", "", "en"},
		{"tag", "de", "de"},
		{"tag with region", "ru-RU", "ru-RU"},
		{"display name", "Deutsch", "de"},
		{"garbage falls back", "!!not-a-language!!", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := parseTestTheme(t, "name: Lang Test\nlanguage: "+yamlQuote(tt.in)+"\n")
			if def.Language != tt.want {
				t.Errorf("Expected language %q, got %q", tt.want, def.Language)
			}
		})
	}
}

// yamlQuote quotes a YAML scalar so test inputs survive special characters.
func yamlQuote(s string) string {
	return `"` + s + `"`
}

func TestResolveTokens_Defaults(t *testing.T) {
	def := parseTestTheme(t, "name: Tokens\n")
	if err := def.ResolveTokens([]byte(testTokens), nil, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}

	if len(def.Tokens()) != 3 {
		t.Errorf("Expected 3 default tokens, got %d", len(def.Tokens()))
	}
	if got := def.Token("font-size", ""); got != "16px" {
		t.Errorf("Expected default font-size token, got %q", got)
	}
	if got := def.Token("no-such-token", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for unknown token, got %q", got)
	}
}

func TestResolveTokens_Overlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tokens.json"), []byte(`{"font-size": "18px", "drop-cap-size": "3em"}`), 0644); err != nil {
		t.Fatal(err)
	}

	def := parseTestTheme(t, "name: Tokens\ntokens: tokens.json\n")
	if err := def.ResolveTokens([]byte(testTokens), dirAssets{root: dir}, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}

	if got := def.Token("font-size", ""); got != "18px" {
		t.Errorf("Expected overlaid font-size, got %q", got)
	}
	if got := def.Token("line-height", ""); got != "1.5" {
		t.Errorf("Expected default line-height to survive overlay, got %q", got)
	}
	if got := def.Token("drop-cap-size", ""); got != "3em" {
		t.Errorf("Expected new token from overlay, got %q", got)
	}
}

func TestResolveTokens_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"font-size": `), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		src       string
		errSubstr string
	}{
		{"missing file", "name: Tokens\ntokens: missing.json\n", "unable to read tokens file"},
		{"malformed file", "name: Tokens\ntokens: broken.json\n", "unable to overlay tokens file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := parseTestTheme(t, tt.src)
			err := def.ResolveTokens([]byte(testTokens), dirAssets{root: dir}, zaptest.NewLogger(t))
			if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
				t.Fatalf("Expected error containing %q, got: %v", tt.errSubstr, err)
			}
		})
	}
}

func TestFloatToken(t *testing.T) {
	def := parseTestTheme(t, "name: Tokens\n")
	if err := def.ResolveTokens([]byte(`{"heading-scale": "1.4", "font-family": "serif"}`), nil, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}

	log := zaptest.NewLogger(t)
	if got := def.FloatToken("heading-scale", 1.25, log); got != 1.4 {
		t.Errorf("Expected 1.4, got %v", got)
	}
	if got := def.FloatToken("font-family", 1.25, log); got != 1.25 {
		t.Errorf("Expected fallback for non-numeric token, got %v", got)
	}
	if got := def.FloatToken("missing", 2, log); got != 2 {
		t.Errorf("Expected fallback for missing token, got %v", got)
	}
}
