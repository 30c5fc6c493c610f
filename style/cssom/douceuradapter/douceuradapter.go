/*
Package douceuradapter is an in-memory implementation of interface
cssom.StyleSheet, built on the CSS types of github.com/aymerick/douceur.

A Sheet behaves like a browser stylesheet with respect to the parts of the
CSSOM livestyle needs: rules are inserted from CSS text at a position,
deleted by position, and their declaration blocks may be written to
concurrently. Like a browser, a Sheet silently ignores property writes it
does not accept. By default a write is accepted if the property name is
known (see style.IsKnownProperty) and "name: value" parses as exactly one
CSS declaration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	parse "github.com/tdewolff/parse/v2"
	tdcss "github.com/tdewolff/parse/v2/css"
)

// tracer traces with key 'livestyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.cssom")
}

// Sheet is an in-memory live stylesheet. It is safe for concurrent use.
type Sheet struct {
	mu      sync.RWMutex
	entries []*entry
	known   map[string]bool
	accept  func(name, value string) bool
}

type entry struct {
	rule     *css.Rule
	classes  []string // sorted
	detached bool
}

// Option configures a Sheet at creation time.
type Option func(*Sheet)

// AcceptProperty replaces the policy deciding which property writes the
// sheet accepts.
func AcceptProperty(accept func(name, value string) bool) Option {
	return func(s *Sheet) {
		s.accept = accept
	}
}

// KnownProperties adds property names to the set of known properties.
func KnownProperties(names ...string) Option {
	return func(s *Sheet) {
		for _, n := range names {
			s.known[n] = true
		}
	}
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	s := &Sheet{known: make(map[string]bool)}
	for _, option := range opts {
		option(s)
	}
	if s.accept == nil {
		s.accept = s.defaultAccept
	}
	return s
}

// Wrap creates a sheet pre-filled with the qualified rules of a douceur
// stylesheet. Rules of other kinds are dropped.
// The stylesheet is now managed by the wrapper.
func Wrap(stylesheet *css.Stylesheet, opts ...Option) *Sheet {
	s := New(opts...)
	for _, r := range stylesheet.Rules {
		if r.Kind != css.QualifiedRule {
			tracer().Infof("dropping %v rule %q", r.Kind, r.Name)
			continue
		}
		s.entries = append(s.entries, &entry{rule: r})
	}
	return s
}

var _ cssom.StyleSheet = &Sheet{}
var _ cssom.ClassCarrier = &Sheet{}

// --- Structural operations --------------------------------------------

// InsertRule parses cssText as a single style rule and inserts it at index.
//
// Interface cssom.StyleSheet
func (s *Sheet) InsertRule(cssText string, index int) error {
	rule, err := s.parseRule(cssText)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.entries) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(s.entries), cssom.ErrIndexOutOfRange)
	}
	s.entries = slices.Insert(s.entries, index, &entry{rule: rule})
	tracer().Debugf("inserted rule %q at %d", rule.Prelude, index)
	return nil
}

func (s *Sheet) parseRule(cssText string) (*css.Rule, error) {
	parsed, err := parser.Parse(cssText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cssom.ErrInvalidRule, err)
	}
	if len(parsed.Rules) != 1 || parsed.Rules[0].Kind != css.QualifiedRule {
		return nil, fmt.Errorf("%w: expected a single style rule: %q", cssom.ErrInvalidRule, cssText)
	}
	rule := parsed.Rules[0]
	if err := style.CheckSelector(rule.Prelude); err != nil {
		return nil, fmt.Errorf("%w: %v", cssom.ErrInvalidRule, err)
	}
	decls := rule.Declarations[:0]
	for _, d := range rule.Declarations {
		if s.accept(d.Property, d.Value) {
			decls = append(decls, d)
		}
	}
	rule.Declarations = decls
	return rule, nil
}

// DeleteRule removes the rule at index.
//
// Interface cssom.StyleSheet
func (s *Sheet) DeleteRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("delete at %d of %d: %w", index, len(s.entries), cssom.ErrIndexOutOfRange)
	}
	e := s.entries[index]
	e.detached = true
	s.entries = slices.Delete(s.entries, index, index+1)
	tracer().Debugf("deleted rule %q at %d", e.rule.Prelude, index)
	return nil
}

// Len returns the number of rules.
//
// Interface cssom.StyleSheet
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Empty checks if this stylesheet contains any rules.
func (s *Sheet) Empty() bool {
	return s.Len() == 0
}

// RuleStyle returns the declaration block of the rule at index.
//
// Interface cssom.StyleSheet
func (s *Sheet) RuleStyle(index int) (cssom.Declaration, error) {
	e, err := s.entryAt(index)
	if err != nil {
		return nil, err
	}
	return &declaration{sheet: s, e: e}, nil
}

// RuleClasses returns the class list of the rule at index.
//
// Interface cssom.ClassCarrier
func (s *Sheet) RuleClasses(index int) (cssom.ClassList, error) {
	e, err := s.entryAt(index)
	if err != nil {
		return nil, err
	}
	return &classList{sheet: s, e: e}, nil
}

func (s *Sheet) entryAt(index int) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.entries) {
		return nil, fmt.Errorf("rule %d of %d: %w", index, len(s.entries), cssom.ErrIndexOutOfRange)
	}
	return s.entries[index], nil
}

// --- Read access ------------------------------------------------------

// Rules returns a snapshot of all the rules of the sheet.
func (s *Sheet) Rules() []cssom.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rules := make([]cssom.Rule, len(s.entries))
	for i, e := range s.entries {
		rules[i] = snapshot(e.rule)
	}
	return rules
}

// Classes returns the class tokens of the rule at index.
func (s *Sheet) Classes(index int) []string {
	e, err := s.entryAt(index)
	if err != nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(e.classes)
}

// String renders the sheet as CSS text.
func (s *Sheet) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var b strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.rule.String())
	}
	return b.String()
}

// --- Acceptance -------------------------------------------------------

func (s *Sheet) defaultAccept(name, value string) bool {
	if !style.IsKnownProperty(name) && !s.known[name] {
		return false
	}
	return isDeclaration(name, value)
}

// isDeclaration checks that "name: value" is exactly one CSS declaration
// with a non-empty value.
func isDeclaration(name, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	p := tdcss.NewParser(parse.NewInputString(name+": "+value), true)
	gt, _, data := p.Next()
	if gt != tdcss.DeclarationGrammar && gt != tdcss.CustomPropertyGrammar {
		return false
	}
	if !strings.EqualFold(string(data), name) {
		return false
	}
	if gt == tdcss.DeclarationGrammar && len(p.Values()) == 0 {
		return false
	}
	gt, _, _ = p.Next()
	return gt == tdcss.ErrorGrammar && p.Err() == io.EOF
}

// --- Declarations -----------------------------------------------------

type declaration struct {
	sheet *Sheet
	e     *entry
}

var _ cssom.Declaration = &declaration{}

func (d *declaration) SetProperty(name, value, priority string) error {
	s := d.sheet
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.e.detached {
		return fmt.Errorf("set %s: %w", name, cssom.ErrDetached)
	}
	if priority != cssom.PriorityNormal && priority != cssom.PriorityImportant {
		tracer().Debugf("ignoring %s with priority %q", name, priority)
		return nil
	}
	if !s.accept(name, value) {
		tracer().Debugf("engine rejects %s: %s", name, value)
		return nil
	}
	important := priority == cssom.PriorityImportant
	for _, decl := range d.e.rule.Declarations {
		if decl.Property == name {
			decl.Value = value
			decl.Important = important
			return nil
		}
	}
	d.e.rule.Declarations = append(d.e.rule.Declarations, &css.Declaration{
		Property:  name,
		Value:     value,
		Important: important,
	})
	return nil
}

func (d *declaration) PropertyValue(name string) string {
	s := d.sheet
	s.mu.RLock()
	defer s.mu.RUnlock()
	return propertyValue(d.e.rule, name)
}

func (d *declaration) RemoveProperty(name string) error {
	s := d.sheet
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.e.detached {
		return fmt.Errorf("remove %s: %w", name, cssom.ErrDetached)
	}
	d.e.rule.Declarations = slices.DeleteFunc(d.e.rule.Declarations, func(decl *css.Declaration) bool {
		return decl.Property == name
	})
	return nil
}

// propertyValue looks up name in a rule. Longhands of shorthand properties
// are derived from the shorthand, if not set explicitly.
func propertyValue(rule *css.Rule, name string) string {
	var derived string
	for _, decl := range rule.Declarations {
		if decl.Property == name {
			return decl.Value
		}
		if !style.IsCompoundProperty(decl.Property) {
			continue
		}
		kvs, err := style.SplitCompoundProperty(decl.Property, style.Property(decl.Value))
		if err != nil {
			continue
		}
		for _, kv := range kvs {
			if kv.Key == name {
				derived = kv.Value.String()
			}
		}
	}
	return derived
}

// --- Class lists ------------------------------------------------------

type classList struct {
	sheet *Sheet
	e     *entry
}

var _ cssom.ClassList = &classList{}

func (cl *classList) Add(class string) {
	cl.sheet.mu.Lock()
	defer cl.sheet.mu.Unlock()
	if i, found := slices.BinarySearch(cl.e.classes, class); !found {
		cl.e.classes = slices.Insert(cl.e.classes, i, class)
	}
}

func (cl *classList) Remove(class string) {
	cl.sheet.mu.Lock()
	defer cl.sheet.mu.Unlock()
	if i, found := slices.BinarySearch(cl.e.classes, class); found {
		cl.e.classes = slices.Delete(cl.e.classes, i, i+1)
	}
}

func (cl *classList) Contains(class string) bool {
	cl.sheet.mu.RLock()
	defer cl.sheet.mu.RUnlock()
	_, found := slices.BinarySearch(cl.e.classes, class)
	return found
}

// --- Rule -------------------------------------------------------------

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

func snapshot(r *css.Rule) Rule {
	c := Rule{Kind: r.Kind, Prelude: r.Prelude, Selectors: slices.Clone(r.Selectors)}
	c.Declarations = make([]*css.Declaration, len(r.Declarations))
	for i, d := range r.Declarations {
		dd := *d
		c.Declarations[i] = &dd
	}
	return c
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px"
func (r Rule) Value(key string) style.Property {
	rule := css.Rule(r)
	return style.Property(propertyValue(&rule, key))
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

var _ cssom.Rule = Rule{}
