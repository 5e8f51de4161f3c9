package selector

// Kind of a selector fragment. Declaration order follows the CSS selector
// grammar, a chain never accepts a kind after any later kind is present.
// ENUM(element, id, class, attribute, pseudo-class, pseudo-element)
type Kind int
