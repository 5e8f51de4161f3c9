package theme

// Specification of palette handling in generated stylesheets.
// ENUM(light, dark, auto)
type ColorScheme int

// CSSValue returns the value for the "color-scheme" property.
func (s ColorScheme) CSSValue() string {
	switch s {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeAuto:
		return "light dark"
	default:
		// this should never happen
		panic("unsupported color scheme requested")
	}
}

// WantsDarkBlock reports if dark palette overrides should be emitted in a
// "prefers-color-scheme" media block. Dark-only themes carry the dark
// palette in :root directly and need no overrides.
func (s ColorScheme) WantsDarkBlock() bool {
	return s == ColorSchemeAuto
}
