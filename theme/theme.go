// Package theme turns YAML theme definitions into CSS stylesheets. A
// definition names colors, fonts and feature toggles; the generation
// pipeline resolves it against built-in design tokens and renders a
// deterministic stylesheet, optionally with an XHTML preview page next
// to it.
package theme

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"cssg/archive"
	"cssg/utils/jsonutil"
)

type (
	// PageBox overrides the configured page geometry for a single theme.
	PageBox struct {
		Width  float64 `yaml:"width" validate:"min=320"`
		Height float64 `yaml:"height" validate:"min=480"`
	}

	// FontSpec names a font asset shipped with the theme.
	FontSpec struct {
		Family string `yaml:"family" validate:"required"`
		File   string `yaml:"file" validate:"required"`
		Style  string `yaml:"style,omitempty" validate:"omitempty,oneof=normal italic oblique"`
		Weight string `yaml:"weight,omitempty"`
	}

	// Palette holds the named colors of a theme. Empty entries fall back to
	// built-in defaults during generation.
	Palette struct {
		Background string `yaml:"background,omitempty"`
		Text       string `yaml:"text,omitempty"`
		Accent     string `yaml:"accent,omitempty"`
		Muted      string `yaml:"muted,omitempty"`
		Border     string `yaml:"border,omitempty"`
	}

	// Features toggles optional rule groups in the generated stylesheet.
	Features struct {
		DropCaps        bool `yaml:"drop_caps"`
		HoverAccent     bool `yaml:"hover_accent"`
		ExternalMarkers bool `yaml:"external_markers"`
		FootnoteMarkers bool `yaml:"footnote_markers"`
	}

	// Definition is a single theme as authored in YAML.
	Definition struct {
		ID         string      `yaml:"id,omitempty"`
		Name       string      `yaml:"name" validate:"required"`
		Language   string      `yaml:"language,omitempty"`
		Scheme     ColorScheme `yaml:"scheme" validate:"gte=0"`
		Page       *PageBox    `yaml:"page,omitempty"`
		Palette    Palette     `yaml:"palette"`
		Dark       Palette     `yaml:"dark,omitempty"`
		Fonts      []FontSpec  `yaml:"fonts,omitempty" validate:"dive"`
		TokensFile string      `yaml:"tokens,omitempty"`
		Imports    []string    `yaml:"imports,omitempty"`
		Features   Features    `yaml:"features"`

		lang   language.Tag
		tokens map[string]string
	}
)

// Parse reads a single theme definition from r applying defaults and
// repairs. srcName is used for diagnostics only. Themes without a valid
// UUID get a fresh one, unparseable languages fall back to English.
func Parse(r io.Reader, srcName string, log *zap.Logger) (*Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("unable to decode theme definition (%s): %w", srcName, err)
	}
	if err := gencfg.Validate(&def); err != nil {
		return nil, fmt.Errorf("unable to validate theme definition (%s): %w", srcName, err)
	}

	// Make sure theme ID is not empty and is valid UUID
	var themeID uuid.UUID
	var err error
	if _, err = uuid.Parse(def.ID); err != nil {
		if themeID, err = uuid.NewV7(); err != nil {
			return nil, fmt.Errorf("unable to generate new theme UUID: %w", err)
		}
		log.Warn("Theme has invalid ID, correcting", zap.String("old_id", def.ID), zap.Stringer("new_id", themeID))
	}
	if themeID != uuid.Nil {
		def.ID = themeID.String()
	}

	def.lang = parseThemeLang(def.Language, log)
	def.Language = def.lang.String()
	return &def, nil
}

func parseThemeLang(in string, log *zap.Logger) language.Tag {
	lang := strings.TrimSpace(in)
	if lang == "" {
		return language.English
	}

	tag, err := language.Parse(lang)
	if err == nil {
		return tag
	}

	// last resort - try names directly
	for _, supportedTag := range display.Supported.Tags() {
		if strings.EqualFold(display.Self.Name(supportedTag), lang) {
			return supportedTag
		}
	}
	log.Warn("Unable to parse theme language", zap.String("lang", lang))
	return language.English
}

// Lang returns the parsed theme language.
func (d *Definition) Lang() language.Tag {
	return d.lang
}

// ResolveTokens overlays the tokens file of the theme, when one is named,
// over the built-in defaults. Token files are flat JSON objects; keys
// missing from the file keep their default values, new keys are added.
func (d *Definition) ResolveTokens(defaults []byte, assets Assets, log *zap.Logger) error {
	prototype := map[string]string{}
	if len(defaults) > 0 {
		if err := json.Unmarshal(defaults, &prototype); err != nil {
			return fmt.Errorf("unable to decode default design tokens: %w", err)
		}
	}

	if len(d.TokensFile) == 0 {
		d.tokens = prototype
		return nil
	}

	data, err := assets.ReadFile(d.TokensFile)
	if err != nil {
		return fmt.Errorf("unable to read tokens file (%s): %w", d.TokensFile, err)
	}
	tokens, err := jsonutil.Deserialize(prototype, data)
	if err != nil {
		return fmt.Errorf("unable to overlay tokens file (%s): %w", d.TokensFile, err)
	}

	log.Debug("Design tokens resolved", zap.String("file", d.TokensFile), zap.Int("count", len(tokens)))
	d.tokens = tokens
	return nil
}

// Tokens returns the resolved design tokens of the theme, nil before
// ResolveTokens has run.
func (d *Definition) Tokens() map[string]string {
	return d.tokens
}

// Token returns a single resolved token value, fallback when the token is
// absent or empty.
func (d *Definition) Token(name, fallback string) string {
	if v, ok := d.tokens[name]; ok && len(v) > 0 {
		return v
	}
	return fallback
}

// FloatToken returns a resolved token interpreted as a number, fallback
// when the token is absent or not numeric.
func (d *Definition) FloatToken(name string, fallback float64, log *zap.Logger) float64 {
	v, ok := d.tokens[name]
	if !ok || len(v) == 0 {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn("Design token is not a number, ignoring", zap.String("token", name), zap.String("value", v))
		return fallback
	}
	return f
}

// Assets reads files referenced by a theme definition relative to where
// the definition came from.
type Assets interface {
	ReadFile(name string) ([]byte, error)
}

// dirAssets resolves references against a directory on disk. os.DirFS
// refuses absolute paths and anything escaping the root, preventing path
// traversal through crafted references.
type dirAssets struct {
	root string
}

func (a dirAssets) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(os.DirFS(a.root), filepath.ToSlash(filepath.Clean(name)))
}

// packAssets resolves references against members of a zip theme pack,
// relative to the directory of the definition entry inside the pack.
type packAssets struct {
	archive string
	base    string
}

func (a packAssets) ReadFile(name string) ([]byte, error) {
	return archive.ReadAll(a.archive, path.Join(a.base, filepath.ToSlash(name)))
}
