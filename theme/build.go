package theme

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"cssg/css"
	"cssg/geom"
	"cssg/misc"
	"cssg/selector"
)

// Anything smaller reads poorly on every device class we target.
const minComfortablePageArea = 480 * 640

var (
	// defaultLight fills palette entries the theme leaves out.
	defaultLight = Palette{
		Background: "#ffffff",
		Text:       "#1a1a1a",
		Accent:     "#0066cc",
		Muted:      "#6c757d",
		Border:     "#d0d0d0",
	}

	// defaultDark backs dark-capable themes without an authored dark palette.
	defaultDark = Palette{
		Background: "#121212",
		Text:       "#e6e6e6",
		Accent:     "#4d9fff",
		Muted:      "#9aa0a6",
		Border:     "#333333",
	}
)

// quote pairs for languages we care about, everything else keeps the
// English pair
var quotesByLang = map[string]string{
	"en": `"“" "”" "‘" "’"`,
	"ru": `"«" "»" "„" "“"`,
	"fr": `"« " " »" "‹ " " ›"`,
	"de": `"„" "“" "‚" "‘"`,
}

// sel renders a selector chain. All chains in this file are static, a
// composition failure is a programming error.
func sel(b *selector.Builder) string {
	if err := b.Err(); err != nil {
		// this should never happen
		panic(fmt.Sprintf("invalid selector chain: %v", err))
	}
	return b.String()
}

// Build assembles the stylesheet for a parsed theme definition. Fonts must
// already be resolved, page carries the effective page box. Output is
// deterministic: rule order is fixed and token properties are emitted in
// natural order.
func Build(ctx context.Context, def *Definition, fonts []Font, page geom.Rect, log *zap.Logger) (*css.Stylesheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page.Area() < minComfortablePageArea {
		log.Warn("Page box is small, text may be cramped", zap.Stringer("page", page), zap.Float64("area", page.Area()))
	}
	if ratio := page.AspectRatio(); ratio > 2 || ratio < 0.4 {
		log.Warn("Unusual page proportions", zap.Stringer("page", page), zap.Float64("ratio", ratio))
	}

	sheet := &css.Stylesheet{
		Comment: fmt.Sprintf("%s (%s)\ngenerated by %s %s", def.Name, def.ID, misc.GetAppName(), misc.GetVersion()),
	}

	for _, url := range def.Imports {
		sheet.AddImport(url)
	}

	for _, font := range fonts {
		src := css.URL(font.Ref)
		if len(font.Format) > 0 {
			src = fmt.Sprintf("%s format(%q)", src, font.Format)
		}
		sheet.AddFontFace(css.FontFace{
			Family: font.Spec.Family,
			Src:    src,
			Style:  font.Spec.Style,
			Weight: font.Spec.Weight,
		})
	}

	root := css.NewRule(sel(selector.PseudoClass("root")))
	root.Add("color-scheme", def.Scheme.CSSValue())

	basePalette := resolvePalette(def.Palette, defaultLight)
	if def.Scheme == ColorSchemeDark {
		// A dark-only theme may author its colors in either section.
		authored := def.Dark
		if authored == (Palette{}) {
			authored = def.Palette
		}
		basePalette = resolvePalette(authored, defaultDark)
	}
	paletteProps(root, basePalette)

	names := slices.Collect(maps.Keys(def.Tokens()))
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		root.Add("--"+slug.Make(name), def.Tokens()[name])
	}
	sheet.AddRule(root)

	sheet.AddRule(css.NewRule(sel(selector.Element("body"))).
		Add("background-color", "var(--background)").
		Add("color", "var(--text)").
		Add("font-family", tokenVar("font-family")).
		Add("font-size", tokenVar("font-size")).
		Add("line-height", tokenVar("line-height")).
		Add("margin", "0 auto").
		Add("max-width", css.Px(page.Width)).
		Add("padding", "0 "+tokenVar("content-gap")))

	scale := def.FloatToken("heading-scale", 1.25, log)
	for i, level := range []string{"h1", "h2", "h3"} {
		size := roundTo(math.Pow(scale, float64(3-i)), 4)
		sheet.AddRule(css.NewRule(sel(selector.Element(level))).
			Add("font-size", css.Em(size)).
			Add("line-height", "1.2").
			Add("margin", tokenVar("paragraph-spacing")+" 0"))
	}

	sheet.AddRule(css.NewRule(sel(selector.Element("p"))).
		Add("margin", "0 0 "+tokenVar("paragraph-spacing")))

	sheet.AddRule(css.NewRule(sel(selector.Element("a"))).
		Add("color", "var(--accent)").
		Add("text-decoration", tokenVar("link-decoration")))

	if def.Features.HoverAccent {
		sheet.AddRule(css.NewRule(sel(selector.Element("a").PseudoClass("hover"))).
			Add("text-decoration", "underline").
			Add("text-decoration-thickness", "2px"))
	}

	sheet.AddRule(css.NewRule(sel(selector.Element("a").PseudoClass("focus-visible"))).
		Add("outline", tokenVar("border-width")+" solid var(--accent)").
		Add("outline-offset", "2px"))

	if def.Features.ExternalMarkers {
		sheet.AddRule(css.NewRule(sel(selector.Element("a").Attr(`href^="http"`).PseudoElement("after"))).
			Add("content", `" ↗"`).
			Add("font-size", tokenVar("marker-size")))
	}

	if def.Features.FootnoteMarkers {
		sheet.AddRule(css.NewRule(sel(selector.Element("a").Class("footnote"))).
			Add("vertical-align", "super").
			Add("font-size", tokenVar("marker-size")).
			Add("text-decoration", "none"))
		sheet.AddRule(css.NewRule(sel(selector.Element("section").ID("footnotes"))).
			Add("margin-top", tokenVar("quote-indent")).
			Add("border-top", tokenVar("border-width")+" solid var(--border)").
			Add("color", "var(--muted)").
			Add("font-size", "0.875em"))
	}

	if def.Features.DropCaps {
		sheet.AddRule(css.NewRule(sel(selector.Element("p").Class("opener").PseudoElement("first-letter"))).
			Add("float", "left").
			Add("font-size", "3em").
			Add("line-height", "0.9").
			Add("padding-right", "0.08em").
			Add("font-weight", "bold"))
	}

	sheet.AddRule(css.NewRule(sel(selector.Element("blockquote"))).
		Add("margin", tokenVar("paragraph-spacing")+" "+tokenVar("quote-indent")).
		Add("padding-left", tokenVar("content-gap")).
		Add("border-left", "0.25rem solid var(--border)").
		Add("color", "var(--muted)"))

	sheet.AddRule(css.NewRule(sel(selector.Combine(selector.Element("blockquote"), selector.Child, selector.Element("p")))).
		Add("margin", "0"))

	base, _ := def.Lang().Base()
	sheet.AddRule(css.NewRule(sel(selector.Element("q"))).
		Add("quotes", quotesByLang["en"]))
	if code := base.String(); code != "en" {
		if pairs, ok := quotesByLang[code]; ok {
			sheet.AddRule(css.NewRule(sel(selector.Element("q").PseudoClass("lang("+code+")"))).
				Add("quotes", pairs))
		}
	}

	sheet.AddRule(css.NewRule(sel(selector.Element("code"))).
		Add("font-family", "ui-monospace, monospace").
		Add("border", tokenVar("border-width")+" solid var(--border)").
		Add("border-radius", tokenVar("corner-radius")).
		Add("padding", "0 0.25em"))

	sheet.AddRule(css.NewRule(sel(selector.Element("img"))).
		Add("max-width", "100%").
		Add("height", "auto").
		Add("border-radius", tokenVar("corner-radius")))

	sheet.AddRule(css.NewRule(sel(selector.Element("hr"))).
		Add("border", "0").
		Add("border-top", tokenVar("border-width")+" solid var(--border)").
		Add("margin", tokenVar("quote-indent")+" auto").
		Add("width", "50%"))

	sheet.AddRule(css.NewRule(sel(selector.Class("page"))).
		Add("max-width", css.Px(page.Width)).
		Add("aspect-ratio", css.Ratio(page.Width, page.Height)).
		Add("margin", tokenVar("paragraph-spacing")+" auto").
		Add("border", tokenVar("border-width")+" solid var(--border)").
		Add("border-radius", tokenVar("corner-radius")).
		Add("padding", tokenVar("content-gap")))

	if def.Scheme.WantsDarkBlock() {
		darkRoot := css.NewRule(sel(selector.PseudoClass("root")))
		paletteProps(darkRoot, resolvePalette(def.Dark, defaultDark))
		sheet.AddMedia("(prefers-color-scheme: dark)", *darkRoot)
	}

	log.Debug("Stylesheet assembled", zap.String("theme", def.Name), zap.Int("items", len(sheet.Items)))
	return sheet, nil
}

func resolvePalette(p, defaults Palette) Palette {
	if len(p.Background) == 0 {
		p.Background = defaults.Background
	}
	if len(p.Text) == 0 {
		p.Text = defaults.Text
	}
	if len(p.Accent) == 0 {
		p.Accent = defaults.Accent
	}
	if len(p.Muted) == 0 {
		p.Muted = defaults.Muted
	}
	if len(p.Border) == 0 {
		p.Border = defaults.Border
	}
	return p
}

// paletteProps emits palette colors as custom properties in fixed order.
func paletteProps(rule *css.Rule, p Palette) {
	rule.Add("--background", p.Background)
	rule.Add("--text", p.Text)
	rule.Add("--accent", p.Accent)
	rule.Add("--muted", p.Muted)
	rule.Add("--border", p.Border)
}

// tokenVar renders a var() reference for a design token.
func tokenVar(name string) string {
	return "var(--" + slug.Make(name) + ")"
}

// roundTo trims float noise from computed sizes before rendering.
func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
