package selector

import (
	"fmt"
)

// DuplicateFragmentError reports an attempt to set the element, id or
// pseudo-element fragment of a chain for the second time. These kinds hold a
// single value for the lifetime of the chain no matter how much other
// content was added in between.
type DuplicateFragmentError struct {
	Kind     Kind   // kind being added
	Value    string // rejected value
	Existing string // value already occupying the slot
}

func (e *DuplicateFragmentError) Error() string {
	return fmt.Sprintf("duplicate %s fragment %q in selector chain (already set to %q)", e.Kind, e.Value, e.Existing)
}

// OrderViolationError reports an attempt to add a fragment after a fragment
// of a later grammar kind is already present in the chain.
type OrderViolationError struct {
	Kind     Kind   // kind being added
	Value    string // rejected value
	Blocking Kind   // later kind already present
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("unable to add %s fragment %q after %s fragment in selector chain", e.Kind, e.Value, e.Blocking)
}
