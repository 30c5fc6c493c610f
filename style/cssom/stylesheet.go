package cssom

import (
	"errors"

	"github.com/npillmayer/livestyle/style"
)

// Errors reported by stylesheet implementations.
var (
	ErrIndexOutOfRange = errors.New("cssom: rule index out of range")
	ErrInvalidRule     = errors.New("cssom: invalid rule")
	ErrDetached        = errors.New("cssom: rule has been removed from its stylesheet")
)

// Priority of a property. The only priority CSS knows is "important".
const (
	PriorityNormal    = ""
	PriorityImportant = "important"
)

// StyleSheet is an ordered, mutable list of rules.
//
// Indices are 0-based positions in the current list; every insertion and
// deletion shifts the indices of the rules behind it.
type StyleSheet interface {
	// InsertRule parses cssText as a single rule and inserts it at index,
	// 0 ≤ index ≤ Len().
	InsertRule(cssText string, index int) error
	// DeleteRule removes the rule at index.
	DeleteRule(index int) error
	// RuleStyle returns the declaration block of the rule at index.
	// The declaration stays bound to its rule, not to the index.
	RuleStyle(index int) (Declaration, error)
	// Len returns the number of rules.
	Len() int
}

// Declaration is the declaration block of a style rule.
type Declaration interface {
	// SetProperty writes a property. An engine which does not accept a
	// name or value leaves the property unset, without reporting an error,
	// just like a browser does. Errors are reserved for declarations which
	// cannot be written at all.
	SetProperty(name, value, priority string) error
	// PropertyValue returns the value of a property, or "" if unset.
	PropertyValue(name string) string
	// RemoveProperty removes a property, if set.
	RemoveProperty(name string) error
}

// ClassList is a set of class tokens.
type ClassList interface {
	Add(class string)
	Remove(class string)
	Contains(class string) bool
}

// ClassCarrier is an optional capability of a StyleSheet: rules carry a
// class list, which element builders apply to the elements a rule group
// styles.
type ClassCarrier interface {
	RuleClasses(index int) (ClassList, error)
}

// Rule is a read-only view of a style rule.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}
