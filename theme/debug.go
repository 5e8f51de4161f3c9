package theme

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"cssg/css"
	"cssg/utils/debug"
)

// DumpStylesheet renders the internal structure of a generated stylesheet.
// It exists solely for manual inspection of debug reports.
func DumpStylesheet(def *Definition, sheet *css.Stylesheet) string {
	tw := debug.NewTreeWriter()

	tw.Line(0, "Theme %s", def.ID)
	tw.TextBlock(1, "name", def.Name)
	tw.Line(1, "scheme: %s", def.Scheme)
	tw.Line(1, "language: %s", def.Language)

	names := slices.Collect(maps.Keys(def.Tokens()))
	sort.Sort(natural.StringSlice(names))
	tw.Line(1, "tokens (%d)", len(names))
	for _, name := range names {
		tw.TextBlock(2, name, def.Tokens()[name])
	}

	tw.Line(0, "Stylesheet (%d items)", len(sheet.Items))
	for _, item := range sheet.Items {
		switch {
		case item.Import != nil:
			tw.TextBlock(1, "@import", *item.Import)
		case item.FontFace != nil:
			tw.Line(1, "@font-face %q src %s", item.FontFace.Family, item.FontFace.Src)
		case item.MediaBlock != nil:
			tw.Line(1, "@media %s", item.MediaBlock.Query)
			for i := range item.MediaBlock.Rules {
				dumpRule(tw, 2, &item.MediaBlock.Rules[i])
			}
		case item.Rule != nil:
			dumpRule(tw, 1, item.Rule)
		}
	}
	return tw.String()
}

func dumpRule(tw *debug.TreeWriter, depth int, rule *css.Rule) {
	tw.Line(depth, "%s (%d)", rule.Selector, len(rule.Declarations))
	for _, d := range rule.Declarations {
		tw.TextBlock(depth+1, d.Property, d.Value)
	}
}
