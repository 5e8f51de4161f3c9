package css

import (
	"strconv"
)

// Dimension helpers render numeric CSS values in minimal form: "12px",
// "1.5em", "80%". Trailing zeros are trimmed the way browsers serialize
// computed values.

// Px renders a pixel dimension.
func Px(v float64) string { return formatDimension(v, "px") }

// Em renders an em dimension.
func Em(v float64) string { return formatDimension(v, "em") }

// Rem renders a rem dimension.
func Rem(v float64) string { return formatDimension(v, "rem") }

// Pt renders a point dimension.
func Pt(v float64) string { return formatDimension(v, "pt") }

// Pct renders a percentage.
func Pct(v float64) string { return formatDimension(v, "%") }

func formatDimension(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// Ratio renders an "x / y" value for properties like aspect-ratio.
func Ratio(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + " / " + strconv.FormatFloat(y, 'f', -1, 64)
}

// URL renders a url("...") reference with CSS string escaping.
func URL(ref string) string {
	return `url("` + EscapeDoubleQuoted(ref) + `")`
}
