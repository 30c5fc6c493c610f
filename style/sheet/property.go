package sheet

import (
	"fmt"

	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/cssom"
)

// SetProperty writes name: value to decl. If the engine does not accept
// the pair verbatim, every combination of a vendor prefix on the name with
// a vendor prefix on the value is tried (name prefix in the outer loop,
// the empty prefix first in both loops), until a write sticks.
//
// If no combination is accepted, SetProperty panics with a
// *ConfigurationError. If decl cannot be written at all, the failure is
// traced and the property is skipped.
func SetProperty(decl cssom.Declaration, name, value string, important bool) {
	setProperty(decl, name, value, important, style.VendorPrefixes)
}

func setProperty(decl cssom.Declaration, name, value string, important bool, prefixes []string) {
	if _, _, ok := tryProperty(decl, name, value, important, prefixes); !ok {
		panic(&ConfigurationError{
			Kind:  InvalidProperty,
			Input: fmt.Sprintf("%s: %s;", name, value),
		})
	}
}

// tryProperty returns the name and value which have been accepted.
// A declaration which refuses all writes counts as success.
func tryProperty(decl cssom.Declaration, name, value string, important bool,
	prefixes []string) (string, string, bool) {
	//
	priority := cssom.PriorityNormal
	if important {
		priority = cssom.PriorityImportant
	}
	if err := decl.SetProperty(name, value, priority); err != nil {
		tracer().Errorf("cannot set property %s: %v", name, err)
		return name, value, true
	}
	if decl.PropertyValue(name) != "" {
		return name, value, true
	}
	all := style.WithEmptyPrefix(prefixes)
	for _, np := range all {
		for _, vp := range all {
			pname, pvalue := np+name, vp+value
			if err := decl.SetProperty(pname, pvalue, priority); err != nil {
				tracer().Debugf("property %s: %v", pname, err)
				continue
			}
			if decl.PropertyValue(pname) != "" {
				tracer().Debugf("property %s: %s set as %s: %s", name, value, pname, pvalue)
				return pname, pvalue, true
			}
		}
	}
	tracer().Errorf("no engine accepts property %s: %s", name, value)
	return "", "", false
}
