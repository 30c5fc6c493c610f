package main

import (
	"errors"
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match THEME ELEMENT",
		Short: "List the rules of a theme which apply to an element of a page",
		Long: `match applies a theme on top of the <style> elements of the page given
with --html, selects the first element of the page matching the CSS selector
ELEMENT and prints every rule whose selector matches it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(cmd)
			if err != nil {
				return err
			}
			if page == nil {
				return errors.New("match needs a page, use --html")
			}
			sel, err := cascadia.Compile(args[1])
			if err != nil {
				return fmt.Errorf("invalid element selector %q: %w", args[1], err)
			}
			node := cascadia.Query(page, sel)
			if node == nil {
				return fmt.Errorf("no element matches %q", args[1])
			}
			engine, err := buildSheet(cmd, page, args[0])
			if err != nil {
				return err
			}
			rules := engine.Rules()
			for _, i := range engine.MatchingRules(node) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, rules[i].Selector())
			}
			return nil
		},
	}
}
