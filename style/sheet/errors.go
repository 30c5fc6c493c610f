package sheet

import "fmt"

// ErrorKind classifies configuration errors.
type ErrorKind int

// Kinds of configuration errors.
const (
	InvalidSelector ErrorKind = iota
	InvalidProperty
	InvalidClass
	GroupReused
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidSelector:
		return "invalid CSS selector"
	case InvalidProperty:
		return "invalid CSS property"
	case InvalidClass:
		return "invalid CSS class"
	case GroupReused:
		return "style group reused"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ConfigurationError is raised (by panicking) when a style group cannot be
// applied because of a programming mistake: an unparseable selector, a
// property/value pair no engine accepts under any vendor prefix, an invalid
// class token or a group submitted twice.
type ConfigurationError struct {
	Kind  ErrorKind
	Input string // the offending selector, class or "name: value;" pair
	Err   error  // underlying cause, may be nil
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: `%s`: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: `%s`", e.Kind, e.Input)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ResourceError is raised (by panicking) when the stylesheet itself is not
// available or fails a structural operation. No styling is possible
// afterwards.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("stylesheet unavailable: %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
