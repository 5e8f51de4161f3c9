package selector

// Combinators accepted by Combine. Combine passes any string through
// verbatim, these constants cover the four CSS relational operators.
const (
	Descendant      = " "
	Child           = ">"
	AdjacentSibling = "+"
	GeneralSibling  = "~"
)

// Element starts a new chain with an element name.
func Element(value string) *Builder {
	return New().Element(value)
}

// ID starts a new chain with an id.
func ID(value string) *Builder {
	return New().ID(value)
}

// Class starts a new chain with a class.
func Class(value string) *Builder {
	return New().Class(value)
}

// Attr starts a new chain with a raw attribute selector body.
func Attr(value string) *Builder {
	return New().Attr(value)
}

// PseudoClass starts a new chain with a pseudo-class.
func PseudoClass(value string) *Builder {
	return New().PseudoClass(value)
}

// PseudoElement starts a new chain with a pseudo-element.
func PseudoElement(value string) *Builder {
	return New().PseudoElement(value)
}

// Combine starts a new chain holding the combination of two fully built
// chains, rendered as "<left> <combinator> <right>".
func Combine(left *Builder, combinator string, right *Builder) *Builder {
	return New().Combine(left, combinator, right)
}
