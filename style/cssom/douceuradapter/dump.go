package douceuradapter

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the live rules as a tree, for debugging.
//
//    stylesheet (2 rules)
//    ├── [0] .button
//    │   ├── background: purple
//    │   └── class toolbar
//    └── [1] :hover
func (s *Sheet) Dump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	printer := tp.New()
	printer.SetValue(fmt.Sprintf("stylesheet (%d rules)", len(s.entries)))
	for i, e := range s.entries {
		label := fmt.Sprintf("[%d] %s", i, e.rule.Prelude)
		if len(e.rule.Declarations) == 0 && len(e.classes) == 0 {
			printer.AddNode(label)
			continue
		}
		branch := printer.AddBranch(label)
		for _, d := range e.rule.Declarations {
			if d.Important {
				branch.AddNode(fmt.Sprintf("%s: %s !important", d.Property, d.Value))
			} else {
				branch.AddNode(fmt.Sprintf("%s: %s", d.Property, d.Value))
			}
		}
		for _, c := range e.classes {
			branch.AddNode("class " + c)
		}
	}
	return printer.String()
}
