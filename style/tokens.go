package style

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
)

// VendorPrefixes are tried, in this order and after the empty prefix, when
// an engine refuses a property name or value.
var VendorPrefixes = []string{"-webkit-", "-moz-", "-o-", "-ms-"}

// WithEmptyPrefix returns prefixes, preceded by the empty prefix.
func WithEmptyPrefix(prefixes []string) []string {
	all := make([]string, 0, len(prefixes)+1)
	all = append(all, "")
	for _, pre := range prefixes {
		if pre != "" {
			all = append(all, pre)
		}
	}
	return all
}

// CheckClassName returns an error if name is not a single CSS identifier,
// i.e. it could not be used as a class token.
func CheckClassName(name string) error {
	s := scanner.New(name)
	tok := s.Next()
	if tok.Type != scanner.TokenIdent || tok.Value != name {
		return fmt.Errorf("not a CSS identifier: %q", name)
	}
	if tok = s.Next(); tok.Type != scanner.TokenEOF {
		return fmt.Errorf("not a single CSS identifier: %q", name)
	}
	return nil
}

// CheckSelector does a lexical sanity check on a selector prelude: it must
// contain something besides white space, must not contain block or
// statement delimiters, and its brackets must balance. It does not
// validate selector grammar.
func CheckSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return fmt.Errorf("empty selector")
	}
	s := scanner.New(selector)
	var parens, brackets int
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			if parens != 0 || brackets != 0 {
				return fmt.Errorf("unbalanced brackets in selector %q", selector)
			}
			return nil
		case scanner.TokenError:
			return fmt.Errorf("selector %q: %s", selector, tok.Value)
		case scanner.TokenAtKeyword, scanner.TokenCDO, scanner.TokenCDC:
			return fmt.Errorf("unexpected %q in selector %q", tok.Value, selector)
		case scanner.TokenFunction:
			parens++
		case scanner.TokenChar:
			switch tok.Value {
			case "{", "}", ";":
				return fmt.Errorf("unexpected %q in selector %q", tok.Value, selector)
			case "(":
				parens++
			case ")":
				parens--
			case "[":
				brackets++
			case "]":
				brackets--
			}
			if parens < 0 || brackets < 0 {
				return fmt.Errorf("unbalanced brackets in selector %q", selector)
			}
		}
	}
}
