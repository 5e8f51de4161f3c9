// Package css provides a stylesheet object model for programmatic
// composition and its text serialization. Stylesheets are assembled from
// rules, @font-face declarations, @media blocks and @import references, and
// rendered with WriteTo/String. The package composes and never parses CSS.
package css

import (
	"fmt"
	"io"
	"strings"
)

// EscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func EscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Declaration is a single "property: value" pair inside a rule. Both parts
// are emitted verbatim.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a rendered selector with an ordered list of declarations.
// Declaration order is preserved on output exactly as composed, repeated
// properties are kept (CSS last-one-wins semantics are left to the consumer).
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// NewRule creates a rule for an already rendered selector string.
func NewRule(selector string, decls ...Declaration) *Rule {
	return &Rule{Selector: selector, Declarations: decls}
}

// Add appends a declaration and returns the rule for chaining.
func (r *Rule) Add(property, value string) *Rule {
	r.Declarations = append(r.Declarations, Declaration{Property: property, Value: value})
	return r
}

// IsEmpty reports whether the rule has no declarations.
func (r *Rule) IsEmpty() bool {
	return len(r.Declarations) == 0
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family string // font-family value
	Src    string // src value (URL or local reference)
	Style  string // font-style: normal, italic
	Weight string // font-weight: normal, bold, 400, 700
}

// MediaBlock represents a @media block with its query and nested rules.
// The query is composed by the caller and emitted verbatim.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// Item is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, FontFace, or Import is set.
type Item struct {
	Rule       *Rule       // A plain rule (selector + declarations)
	MediaBlock *MediaBlock // A @media block containing nested rules
	FontFace   *FontFace   // A @font-face declaration
	Import     *string     // An @import URL
}

// Stylesheet is an ordered collection of top-level items composed by the
// generation pipeline. Comment, when present, is emitted first as a header
// comment block.
type Stylesheet struct {
	Comment string
	Items   []Item
}

// AddImport appends an @import item.
func (s *Stylesheet) AddImport(url string) {
	s.Items = append(s.Items, Item{Import: &url})
}

// AddRule appends a plain rule.
func (s *Stylesheet) AddRule(r *Rule) {
	s.Items = append(s.Items, Item{Rule: r})
}

// AddFontFace appends an @font-face declaration.
func (s *Stylesheet) AddFontFace(ff FontFace) {
	s.Items = append(s.Items, Item{FontFace: &ff})
}

// AddMedia appends a @media block with the given raw query.
func (s *Stylesheet) AddMedia(query string, rules ...Rule) {
	s.Items = append(s.Items, Item{MediaBlock: &MediaBlock{Query: query, Rules: rules}})
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face declarations from the stylesheet in
// source order.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// RulesBySelector returns all top-level rules matching the given selector
// string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// Selectors returns the selector of every rule in the stylesheet, top-level
// and inside media blocks, in source order.
func (s *Stylesheet) Selectors() []string {
	var out []string
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			out = append(out, item.Rule.Selector)
		case item.MediaBlock != nil:
			for _, rule := range item.MediaBlock.Rules {
				out = append(out, rule.Selector)
			}
		}
	}
	return out
}

// WriteTo writes the stylesheet to w in source order, implementing
// io.WriterTo. Output is deterministic for a given stylesheet value.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if len(s.Comment) > 0 {
		n, err := writeComment(w, s.Comment)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if len(s.Items) > 0 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}

	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", EscapeDoubleQuoted(*item.Import))
		case item.FontFace != nil:
			n, err = writeFontFace(w, item.FontFace)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeComment writes the header comment block, one " * " line per comment
// line.
func writeComment(w io.Writer, comment string) (int, error) {
	var total int
	n, err := fmt.Fprint(w, "/*\n")
	total += n
	if err != nil {
		return total, err
	}
	for line := range strings.SplitSeq(comment, "\n") {
		n, err = fmt.Fprintf(w, " * %s\n", line)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, " */\n")
	total += n
	return total, err
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeDeclarations(w, rule.Declarations, "  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeDeclarations writes declarations in composition order with the given
// indent.
func writeDeclarations(w io.Writer, decls []Declaration, indent string) (int, error) {
	var total int
	for _, d := range decls {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeFontFace writes an @font-face block to w.
func writeFontFace(w io.Writer, ff *FontFace) (int, error) {
	var total int
	n, err := fmt.Fprint(w, "@font-face {\n")
	total += n
	if err != nil {
		return total, err
	}

	// Write properties in a stable order
	if len(ff.Family) > 0 {
		n, err = fmt.Fprintf(w, "  font-family: \"%s\";\n", EscapeDoubleQuoted(ff.Family))
		total += n
		if err != nil {
			return total, err
		}
	}
	if len(ff.Src) > 0 {
		n, err = fmt.Fprintf(w, "  src: %s;\n", ff.Src)
		total += n
		if err != nil {
			return total, err
		}
	}
	if len(ff.Style) > 0 {
		n, err = fmt.Fprintf(w, "  font-style: %s;\n", ff.Style)
		total += n
		if err != nil {
			return total, err
		}
	}
	if len(ff.Weight) > 0 {
		n, err = fmt.Fprintf(w, "  font-weight: %s;\n", ff.Weight)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i, rule := range mb.Rules {
		// Indent each rule line within the media block
		n, err = fmt.Fprintf(w, "  %s {\n", rule.Selector)
		total += n
		if err != nil {
			return total, err
		}

		n, err = writeDeclarations(w, rule.Declarations, "    ")
		total += n
		if err != nil {
			return total, err
		}

		n, err = fmt.Fprint(w, "  }\n")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
