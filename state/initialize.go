package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// Built-in design tokens, kept in sync with what stylesheet build
		// emits as :root custom properties. Theme token files are overlaid
		// on top of these.
		DefaultTokens: []byte(`{
  "font-family": "Georgia, 'Times New Roman', serif",
  "font-size": "16px",
  "line-height": "1.5",
  "heading-scale": "1.25",
  "paragraph-spacing": "0.75rem",
  "content-gap": "1rem",
  "corner-radius": "4px",
  "border-width": "1px",
  "link-decoration": "underline",
  "quote-indent": "2rem",
  "marker-size": "0.75em"
}`),
	}
}
