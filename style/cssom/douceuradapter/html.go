package douceuradapter

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MatchingRules returns the indices of all rules whose selector matches an
// HTML node. Rules with selectors cascadia cannot compile (e.g. selectors
// with dynamic pseudo-classes like :hover) never match.
func (s *Sheet) MatchingRules(node *html.Node) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []int
	for i, e := range s.entries {
		sel, err := cascadia.Compile(e.rule.Prelude)
		if err != nil {
			tracer().Debugf("selector %q not matchable: %v", e.rule.Prelude, err)
			continue
		}
		if sel.Match(node) {
			matches = append(matches, i)
		}
	}
	return matches
}

// ImportStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. Their style rules are appended to
// the sheet. It returns the number of rules imported.
//
// Rules imported this way are not known to a rule registry, so importing
// has to happen before the sheet is handed to a stylesheet owner.
func (s *Sheet) ImportStyleElements(htmldoc *html.Node) (int, error) {
	var sheets []*css.Stylesheet
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		styles, err := extractStyles(findElement(a, htmldoc))
		if err != nil {
			return 0, err
		}
		sheets = append(sheets, styles...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range sheets {
		for _, r := range c.Rules {
			if r.Kind != css.QualifiedRule {
				tracer().Infof("skipping %v rule %q in <style>", r.Kind, r.Name)
				continue
			}
			s.entries = append(s.entries, &entry{rule: r})
			n++
		}
	}
	return n, nil
}

func extractStyles(h *html.Node) ([]*css.Stylesheet, error) {
	if h == nil {
		return nil, nil
	}
	var sheets []*css.Stylesheet
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom != atom.Style || ch.FirstChild == nil {
			continue
		}
		c, err := parser.Parse(ch.FirstChild.Data)
		if err != nil {
			return nil, fmt.Errorf("parsing <style>: %w", err)
		}
		sheets = append(sheets, c)
	}
	return sheets, nil
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
