/*
Package theme reads permanent rule groups from YAML documents.

A theme lists rules in stylesheet order:

    rules:
      - selector: .button
        style:
          background: purple
          padding: { px: 10 }
        important:
          color: white
        classes: [ primary ]

Property values are either plain CSS text or a single-entry mapping from a
unit (px, ch, pt, percent) to a number. Unknown keys are rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package theme

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/livestyle/css"
	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/sheet"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyse/core/dimen"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'livestyle.theme'.
func tracer() tracing.Trace {
	return tracing.Select("livestyle.theme")
}

// Theme is the document structure of a theme file.
type Theme struct {
	Rules []Rule `yaml:"rules"`
}

// Rule describes one rule group.
type Rule struct {
	Selector  string           `yaml:"selector"`
	Style     map[string]Value `yaml:"style"`
	Important map[string]Value `yaml:"important"`
	Classes   []string         `yaml:"classes"`
}

// Value is a property value, in CSS text form.
type Value string

// UnmarshalYAML accepts a scalar or a {unit: number} mapping.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return fmt.Errorf("line %d: empty property value", node.Line)
		}
		*v = Value(node.Value)
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: expecting a single unit", node.Line)
		}
		var n float64
		if err := node.Content[1].Decode(&n); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		switch unit := node.Content[0].Value; unit {
		case "px":
			*v = Value(css.Px(n))
		case "ch":
			*v = Value(css.Ch(n))
		case "pt":
			*v = Value(css.Pt(dimen.DU(n * float64(dimen.PT))))
		case "percent":
			*v = Value(css.Percent(n))
		default:
			return fmt.Errorf("line %d: unknown unit %q", node.Line, unit)
		}
		return nil
	}
	return fmt.Errorf("line %d: property value must be text or {unit: number}", node.Line)
}

// Decode reads a theme document. Unknown keys are an error.
func Decode(r io.Reader) (*Theme, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	t := &Theme{}
	if err := dec.Decode(t); err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil // empty document
		}
		return nil, fmt.Errorf("failed to decode theme: %w", err)
	}
	return t, nil
}

// Groups converts the rules of t to style groups, in order.
func (t *Theme) Groups() ([]*style.Group, error) {
	groups := make([]*style.Group, 0, len(t.Rules))
	for i, r := range t.Rules {
		g, err := r.group()
		if err != nil {
			return nil, fmt.Errorf("theme rule #%d: %w", i+1, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r Rule) group() (*style.Group, error) {
	if err := style.CheckSelector(r.Selector); err != nil {
		return nil, &sheet.ConfigurationError{Kind: sheet.InvalidSelector, Input: r.Selector, Err: err}
	}
	for name, value := range r.Style {
		if name == "" || value == "" {
			return nil, fmt.Errorf("%s: empty property %q", r.Selector, name)
		}
	}
	for name, value := range r.Important {
		if name == "" || value == "" {
			return nil, fmt.Errorf("%s: empty property %q", r.Selector, name)
		}
	}
	g := style.NewGroup(r.Selector)
	for name, value := range r.Style {
		g.Style(name, string(value))
	}
	for name, value := range r.Important {
		if _, dup := r.Style[name]; dup {
			tracer().Infof("%s: property %s is both normal and important", r.Selector, name)
		}
		g.StyleImportant(name, string(value))
	}
	for _, class := range r.Classes {
		if err := style.CheckClassName(class); err != nil {
			return nil, &sheet.ConfigurationError{Kind: sheet.InvalidClass, Input: class, Err: err}
		}
		g.Class(class)
	}
	return g, nil
}

// Load reads a theme document and returns its rule groups, in order.
func Load(r io.Reader) ([]*style.Group, error) {
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	groups, err := t.Groups()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("theme with %d rules loaded", len(groups))
	return groups, nil
}

// Apply loads a theme and applies every rule permanently to styles.
func Apply(styles *sheet.Styles, r io.Reader) error {
	groups, err := Load(r)
	if err != nil {
		return err
	}
	for _, g := range groups {
		styles.Apply(g)
	}
	return nil
}
