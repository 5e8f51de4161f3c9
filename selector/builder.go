package selector

import (
	"strings"
)

// Builder accumulates selector fragments and renders them into a canonical
// CSS selector string. The zero value is an empty chain ready for use.
//
// Every setter returns the receiver. The first grammar violation is recorded
// on the chain, makes the failing call a no-op and silences all later
// setters; Err surfaces it. A Builder must not be shared between goroutines.
type Builder struct {
	element       string
	id            string
	classes       []string
	attributes    []string
	pseudoClasses []string
	pseudoElement string

	err error
}

// New creates an empty selector chain.
func New() *Builder {
	return &Builder{}
}

// populated reports whether the slot for the given kind holds a value.
func (b *Builder) populated(kind Kind) bool {
	switch kind {
	case KindElement:
		return len(b.element) > 0
	case KindId:
		return len(b.id) > 0
	case KindClass:
		return len(b.classes) > 0
	case KindAttribute:
		return len(b.attributes) > 0
	case KindPseudoClass:
		return len(b.pseudoClasses) > 0
	case KindPseudoElement:
		return len(b.pseudoElement) > 0
	default:
		return false
	}
}

// checkOrder scans all slots strictly after kind and fails when any of them
// is already populated.
func (b *Builder) checkOrder(kind Kind, value string) error {
	for later := kind + 1; later <= KindPseudoElement; later++ {
		if b.populated(later) {
			return &OrderViolationError{Kind: kind, Value: value, Blocking: later}
		}
	}
	return nil
}

// Element sets the element name of the chain.
func (b *Builder) Element(value string) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.element) > 0 {
		b.err = &DuplicateFragmentError{Kind: KindElement, Value: value, Existing: b.element}
		return b
	}
	if err := b.checkOrder(KindElement, value); err != nil {
		b.err = err
		return b
	}
	b.element = value
	return b
}

// ID sets the id of the chain.
func (b *Builder) ID(value string) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.id) > 0 {
		b.err = &DuplicateFragmentError{Kind: KindId, Value: value, Existing: b.id}
		return b
	}
	if err := b.checkOrder(KindId, value); err != nil {
		b.err = err
		return b
	}
	b.id = value
	return b
}

// Class appends a class to the chain. Any number of classes is accepted,
// insertion order is preserved on output.
func (b *Builder) Class(value string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkOrder(KindClass, value); err != nil {
		b.err = err
		return b
	}
	b.classes = append(b.classes, value)
	return b
}

// Attr appends a raw attribute selector body, e.g. `href$=".png"`. Any
// number of attributes is accepted, insertion order is preserved on output.
func (b *Builder) Attr(value string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkOrder(KindAttribute, value); err != nil {
		b.err = err
		return b
	}
	b.attributes = append(b.attributes, value)
	return b
}

// PseudoClass appends a pseudo-class to the chain. Any number is accepted,
// insertion order is preserved on output.
func (b *Builder) PseudoClass(value string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.checkOrder(KindPseudoClass, value); err != nil {
		b.err = err
		return b
	}
	b.pseudoClasses = append(b.pseudoClasses, value)
	return b
}

// PseudoElement sets the pseudo-element of the chain.
func (b *Builder) PseudoElement(value string) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.pseudoElement) > 0 {
		b.err = &DuplicateFragmentError{Kind: KindPseudoElement, Value: value, Existing: b.pseudoElement}
		return b
	}
	b.pseudoElement = value
	return b
}

// Combine renders left and right and stores "<left> <combinator> <right>" as
// the element name of the chain, clearing every other slot. The combinator
// is inserted verbatim with a space on each side and is not validated; the
// descendant combinator, itself a single space, therefore renders with two
// adjacent spaces around it. Neither operand is modified; a sticky error on
// either operand propagates to the chain instead of combining. Fragment
// setters invoked after Combine see the synthesized string as an ordinary
// element name, nothing more is specified for them.
func (b *Builder) Combine(left *Builder, combinator string, right *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if left == nil || right == nil {
		// this should never happen
		panic("selector: combine with nil operand")
	}
	if err := left.Err(); err != nil {
		b.err = err
		return b
	}
	if err := right.Err(); err != nil {
		b.err = err
		return b
	}
	b.element = left.String() + " " + combinator + " " + right.String()
	b.id = ""
	b.classes = nil
	b.attributes = nil
	b.pseudoClasses = nil
	b.pseudoElement = ""
	return b
}

// Err returns the first grammar violation recorded on the chain, nil while
// the chain is valid.
func (b *Builder) Err() error {
	return b.err
}

// String renders the fragments accepted so far in fixed grammar order:
// element, #id, .classes, [attributes], :pseudo-classes, ::pseudo-element.
// An empty chain renders as "". String is idempotent and does not finalize
// the chain, further fragments may still be added after it.
func (b *Builder) String() string {
	var sb strings.Builder
	sb.WriteString(b.element)
	if len(b.id) > 0 {
		sb.WriteByte('#')
		sb.WriteString(b.id)
	}
	for _, c := range b.classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	for _, a := range b.attributes {
		sb.WriteByte('[')
		sb.WriteString(a)
		sb.WriteByte(']')
	}
	for _, p := range b.pseudoClasses {
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	if len(b.pseudoElement) > 0 {
		sb.WriteString("::")
		sb.WriteString(b.pseudoElement)
	}
	return sb.String()
}
