package theme

import (
	"context"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"cssg/css"
	"cssg/geom"
)

func buildTestSheet(t *testing.T, src string, fonts []Font) (*Definition, *css.Stylesheet) {
	t.Helper()
	log := zaptest.NewLogger(t)
	def := parseTestTheme(t, src)
	if err := def.ResolveTokens([]byte(testTokens), nil, log); err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}
	sheet, err := Build(context.Background(), def, fonts, geom.NewRect(600, 800), log)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return def, sheet
}

func findDecl(t *testing.T, rule css.Rule, property string) string {
	t.Helper()
	for _, d := range rule.Declarations {
		if d.Property == property {
			return d.Value
		}
	}
	t.Fatalf("Declaration %q not found in rule %q", property, rule.Selector)
	return ""
}

func singleRule(t *testing.T, sheet *css.Stylesheet, selector string) css.Rule {
	t.Helper()
	rules := sheet.RulesBySelector(selector)
	if len(rules) != 1 {
		t.Fatalf("Expected exactly one %q rule, got %d", selector, len(rules))
	}
	return rules[0]
}

func TestBuild_Structure(t *testing.T) {
	def, sheet := buildTestSheet(t, `
name: Structure
scheme: light
language: en
palette:
  background: "#fffff8"
imports:
  - "base.css"
`, nil)

	if !strings.Contains(sheet.Comment, "Structure") || !strings.Contains(sheet.Comment, def.ID) {
		t.Errorf("Expected header comment to name the theme, got %q", sheet.Comment)
	}
	if imports := sheet.Imports(); len(imports) != 1 || imports[0] != "base.css" {
		t.Errorf("Unexpected imports: %v", imports)
	}

	root := singleRule(t, sheet, ":root")
	if got := findDecl(t, root, "color-scheme"); got != "light" {
		t.Errorf("Expected light color-scheme, got %q", got)
	}
	if got := findDecl(t, root, "--background"); got != "#fffff8" {
		t.Errorf("Expected authored background, got %q", got)
	}
	if got := findDecl(t, root, "--text"); got != "#1a1a1a" {
		t.Errorf("Expected default text color, got %q", got)
	}
	if got := findDecl(t, root, "--font-size"); got != "16px" {
		t.Errorf("Expected design token custom property, got %q", got)
	}

	body := singleRule(t, sheet, "body")
	if got := findDecl(t, body, "max-width"); got != "600px" {
		t.Errorf("Expected page width in body rule, got %q", got)
	}
	if got := findDecl(t, body, "font-size"); got != "var(--font-size)" {
		t.Errorf("Expected token reference, got %q", got)
	}

	if got := findDecl(t, singleRule(t, sheet, "h1"), "font-size"); got != "1.9531em" {
		t.Errorf("Expected scaled h1 size, got %q", got)
	}
	if got := findDecl(t, singleRule(t, sheet, "h3"), "font-size"); got != "1.25em" {
		t.Errorf("Expected scaled h3 size, got %q", got)
	}

	pageRule := singleRule(t, sheet, ".page")
	if got := findDecl(t, pageRule, "aspect-ratio"); got != "600 / 800" {
		t.Errorf("Expected page aspect ratio, got %q", got)
	}

	if got := findDecl(t, singleRule(t, sheet, "blockquote > p"), "margin"); got != "0" {
		t.Errorf("Expected zeroed nested paragraph margin, got %q", got)
	}
}

func TestBuild_SchemeDark(t *testing.T) {
	_, sheet := buildTestSheet(t, `
name: Dark
scheme: dark
dark:
  background: "#000000"
`, nil)

	root := singleRule(t, sheet, ":root")
	if got := findDecl(t, root, "color-scheme"); got != "dark" {
		t.Errorf("Expected dark color-scheme, got %q", got)
	}
	if got := findDecl(t, root, "--background"); got != "#000000" {
		t.Errorf("Expected authored dark background, got %q", got)
	}
	if got := findDecl(t, root, "--text"); got != "#e6e6e6" {
		t.Errorf("Expected default dark text color, got %q", got)
	}

	for _, item := range sheet.Items {
		if item.MediaBlock != nil {
			t.Error("Dark-only theme should not emit a media block")
		}
	}
}

func TestBuild_SchemeDarkFromPalette(t *testing.T) {
	// A dark-only theme may author its colors in the palette section.
	_, sheet := buildTestSheet(t, `
name: Dark
scheme: dark
palette:
  background: "#0b0b0b"
`, nil)

	if got := findDecl(t, singleRule(t, sheet, ":root"), "--background"); got != "#0b0b0b" {
		t.Errorf("Expected palette colors to back a dark-only theme, got %q", got)
	}
}

func TestBuild_SchemeAuto(t *testing.T) {
	_, sheet := buildTestSheet(t, `
name: Auto
scheme: auto
palette:
  background: "#fffff8"
dark:
  background: "#101014"
`, nil)

	root := singleRule(t, sheet, ":root")
	if got := findDecl(t, root, "color-scheme"); got != "light dark" {
		t.Errorf("Expected both schemes advertised, got %q", got)
	}
	if got := findDecl(t, root, "--background"); got != "#fffff8" {
		t.Errorf("Expected light background at root, got %q", got)
	}

	var media *css.MediaBlock
	for _, item := range sheet.Items {
		if item.MediaBlock != nil {
			media = item.MediaBlock
		}
	}
	if media == nil {
		t.Fatal("Expected a media block for the dark palette")
	}
	if media.Query != "(prefers-color-scheme: dark)" {
		t.Errorf("Unexpected media query: %q", media.Query)
	}
	if len(media.Rules) != 1 || media.Rules[0].Selector != ":root" {
		t.Fatalf("Expected a single :root override, got %+v", media.Rules)
	}
	if got := findDecl(t, media.Rules[0], "--background"); got != "#101014" {
		t.Errorf("Expected dark background override, got %q", got)
	}
	if got := findDecl(t, media.Rules[0], "--text"); got != "#e6e6e6" {
		t.Errorf("Expected default dark text override, got %q", got)
	}
}

func TestBuild_Features(t *testing.T) {
	featureSelectors := []string{
		"a:hover",
		`a[href^="http"]::after`,
		"a.footnote",
		"section#footnotes",
		"p.opener::first-letter",
	}

	_, plain := buildTestSheet(t, "name: Plain\n", nil)
	for _, s := range featureSelectors {
		if slices.Contains(plain.Selectors(), s) {
			t.Errorf("Selector %q should require its feature toggle", s)
		}
	}

	_, full := buildTestSheet(t, `
name: Full
features:
  drop_caps: true
  hover_accent: true
  external_markers: true
  footnote_markers: true
`, nil)
	for _, s := range featureSelectors {
		if !slices.Contains(full.Selectors(), s) {
			t.Errorf("Selector %q missing with all features enabled", s)
		}
	}

	// baseline rules are not feature-gated
	for _, s := range []string{"body", "a", "a:focus-visible", "blockquote > p", ".page", "q", "hr"} {
		if !slices.Contains(plain.Selectors(), s) {
			t.Errorf("Baseline selector %q missing", s)
		}
	}
}

func TestBuild_Quotes(t *testing.T) {
	_, russian := buildTestSheet(t, "name: Quotes\nlanguage: ru\n", nil)
	rule := singleRule(t, russian, "q:lang(ru)")
	if got := findDecl(t, rule, "quotes"); !strings.Contains(got, "«") {
		t.Errorf("Expected guillemets for Russian, got %q", got)
	}

	_, english := buildTestSheet(t, "name: Quotes\nlanguage: en\n", nil)
	if slices.Contains(english.Selectors(), "q:lang(en)") {
		t.Error("English theme should not emit a language-specific quotes rule")
	}

	_, unmapped := buildTestSheet(t, "name: Quotes\nlanguage: ja\n", nil)
	if slices.Contains(unmapped.Selectors(), "q:lang(ja)") {
		t.Error("Languages without a quote pair should keep the default rule only")
	}
}

func TestBuild_FontFaces(t *testing.T) {
	fonts := []Font{
		{
			Spec:   FontSpec{Family: "Literata", Style: "italic", Weight: "700"},
			Ref:    "fonts/Literata.woff2",
			Format: "woff2",
		},
		{
			Spec: FontSpec{Family: "Plain"},
			Ref:  "fonts/Plain.ttf",
		},
	}

	_, sheet := buildTestSheet(t, "name: Fonts\n", fonts)
	faces := sheet.FontFaces()
	if len(faces) != 2 {
		t.Fatalf("Expected 2 font faces, got %d", len(faces))
	}
	if faces[0].Src != `url("fonts/Literata.woff2") format("woff2")` {
		t.Errorf("Unexpected src: %q", faces[0].Src)
	}
	if faces[0].Family != "Literata" || faces[0].Style != "italic" || faces[0].Weight != "700" {
		t.Errorf("Font properties lost: %+v", faces[0])
	}
	if faces[1].Src != `url("fonts/Plain.ttf")` {
		t.Errorf("Expected src without format hint, got %q", faces[1].Src)
	}
}

func TestBuild_TokenOrdering(t *testing.T) {
	log := zaptest.NewLogger(t)
	def := parseTestTheme(t, "name: Ordering\n")
	err := def.ResolveTokens([]byte(`{"size-10": "j", "size-2": "b", "size-1": "a"}`), nil, log)
	if err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}
	sheet, err := Build(context.Background(), def, nil, geom.NewRect(600, 800), log)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var got []string
	for _, d := range singleRule(t, sheet, ":root").Declarations {
		if strings.HasPrefix(d.Property, "--size-") {
			got = append(got, d.Property)
		}
	}
	want := []string{"--size-1", "--size-2", "--size-10"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected natural token order %v, got %v", want, got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	log := zaptest.NewLogger(t)
	def := parseTestTheme(t, `
name: Stable
scheme: auto
features:
  drop_caps: true
  footnote_markers: true
`)
	if err := def.ResolveTokens([]byte(testTokens), nil, log); err != nil {
		t.Fatalf("ResolveTokens failed: %v", err)
	}

	first, err := Build(context.Background(), def, nil, geom.NewRect(600, 800), log)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for range 5 {
		next, err := Build(context.Background(), def, nil, geom.NewRect(600, 800), log)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if next.String() != first.String() {
			t.Fatal("Expected identical output for identical input")
		}
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	def := parseTestTheme(t, "name: Cancelled\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Build(ctx, def, nil, geom.NewRect(600, 800), zaptest.NewLogger(t)); err != context.Canceled {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
