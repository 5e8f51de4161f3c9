// Package selector implements a fluent builder for CSS selector strings.
//
// A selector chain is assembled from typed fragments and rendered on demand.
// Fragment kinds follow the fixed CSS selector grammar order:
//
//   - Element name: div, p, h1 (at most one)
//   - ID: #main (at most one)
//   - Classes: .container.editable (any number, order preserved)
//   - Attributes: [href$=".png"] (any number, raw bodies, order preserved)
//   - Pseudo-classes: :hover:focus (any number, order preserved)
//   - Pseudo-element: ::first-letter (at most one)
//
// # Grammar enforcement
//
// The builder validates every call against two invariants:
//
//   - Cardinality: element, id and pseudo-element each accept a single
//     value per chain; a second attempt fails with DuplicateFragmentError.
//   - Order: once a fragment of a later kind is present, no fragment of an
//     earlier kind may be added; violations fail with OrderViolationError.
//
// Fragment values themselves are emitted verbatim, the builder composes and
// never parses or validates CSS syntax.
//
// # Error handling
//
// Setters return the receiver so chains read naturally. The first violation
// is recorded on the chain and every following setter becomes a no-op, in
// the manner of bufio.Writer: build the whole chain, then check Err once.
//
// # Usage
//
//	s := selector.Element("a").Attr(`href$=".png"`).PseudoClass("focus")
//	if err := s.Err(); err != nil {
//	    return err
//	}
//	fmt.Println(s) // a[href$=".png"]:focus
//
// Two chains are related with a combinator:
//
//	s := selector.Combine(selector.Element("blockquote"), selector.Child, selector.Element("p"))
//	fmt.Println(s) // blockquote > p
//
// Builders are not safe for concurrent use. Each chain belongs to the call
// sequence that builds it.
package selector
