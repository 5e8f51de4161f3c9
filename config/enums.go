package config

// Specification of requested font files handling.
// ENUM(embed, link, skip)
type FontMode int

// CopiesFiles reports if font files should be placed next to the generated
// stylesheet.
func (m FontMode) CopiesFiles() bool {
	return m == FontModeEmbed
}

// EmitsFontFaces reports if @font-face items should be generated at all.
func (m FontMode) EmitsFontFaces() bool {
	return m != FontModeSkip
}
