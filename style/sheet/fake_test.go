package sheet

import (
	"fmt"
	"slices"
	"sync"

	"github.com/npillmayer/livestyle/style/cssom"
)

// fakeSheet is a minimal engine recording every write. Its acceptance
// predicate decides which name/value pairs stick.
type fakeSheet struct {
	mu     sync.Mutex
	rules  []*fakeRule
	accept func(name, value string) bool
}

type fakeRule struct {
	sheet    *fakeSheet
	selector string
	props    map[string]string
	history  []string // "set name value" / "remove name"
	tried    []string // every attempted "name: value"
	classes  []string
	detached bool
}

func newFakeSheet(accept func(name, value string) bool) *fakeSheet {
	if accept == nil {
		accept = func(string, string) bool { return true }
	}
	return &fakeSheet{accept: accept}
}

func (s *fakeSheet) InsertRule(cssText string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.rules) {
		return cssom.ErrIndexOutOfRange
	}
	n := len(cssText)
	if n < 2 || cssText[n-2:] != "{}" {
		return cssom.ErrInvalidRule
	}
	r := &fakeRule{sheet: s, selector: cssText[:n-2], props: make(map[string]string)}
	s.rules = slices.Insert(s.rules, index, r)
	return nil
}

func (s *fakeSheet) DeleteRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rules) {
		return cssom.ErrIndexOutOfRange
	}
	s.rules[index].detached = true
	s.rules = slices.Delete(s.rules, index, index+1)
	return nil
}

func (s *fakeSheet) RuleStyle(index int) (cssom.Declaration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rules) {
		return nil, cssom.ErrIndexOutOfRange
	}
	return s.rules[index], nil
}

func (s *fakeSheet) RuleClasses(index int) (cssom.ClassList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rules) {
		return nil, cssom.ErrIndexOutOfRange
	}
	return s.rules[index], nil
}

func (s *fakeSheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rules)
}

func (s *fakeSheet) selectors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sels := make([]string, len(s.rules))
	for i, r := range s.rules {
		sels[i] = r.selector
	}
	return sels
}

func (s *fakeSheet) rule(index int) *fakeRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules[index]
}

func (r *fakeRule) SetProperty(name, value, priority string) error {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	if r.detached {
		return cssom.ErrDetached
	}
	r.tried = append(r.tried, name+": "+value)
	if !r.sheet.accept(name, value) {
		return nil
	}
	if priority != "" {
		value += " !" + priority
	}
	r.props[name] = value
	r.history = append(r.history, fmt.Sprintf("set %s %s", name, value))
	return nil
}

func (r *fakeRule) PropertyValue(name string) string {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	return r.props[name]
}

func (r *fakeRule) RemoveProperty(name string) error {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	if r.detached {
		return cssom.ErrDetached
	}
	delete(r.props, name)
	r.history = append(r.history, "remove "+name)
	return nil
}

func (r *fakeRule) Add(class string) {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	if !slices.Contains(r.classes, class) {
		r.classes = append(r.classes, class)
	}
}

func (r *fakeRule) Remove(class string) {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	if i := slices.Index(r.classes, class); i >= 0 {
		r.classes = slices.Delete(r.classes, i, i+1)
	}
}

func (r *fakeRule) Contains(class string) bool {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	return slices.Contains(r.classes, class)
}

func (r *fakeRule) snapshot() (map[string]string, []string) {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	props := make(map[string]string, len(r.props))
	for k, v := range r.props {
		props[k] = v
	}
	return props, slices.Clone(r.history)
}

func (r *fakeRule) attempts() []string {
	r.sheet.mu.Lock()
	defer r.sheet.mu.Unlock()
	return slices.Clone(r.tried)
}
