package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/livestyle/style"
	"github.com/npillmayer/livestyle/style/cssom/douceuradapter"
	"github.com/npillmayer/livestyle/style/sheet"
	"github.com/npillmayer/livestyle/theme"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "livestyle",
		Short:         "livestyle applies CSS themes to an in-memory stylesheet",
		Long:          `livestyle loads YAML theme files, applies their rules to a live in-memory stylesheet and prints the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("html", "", "HTML document whose <style> elements seed the stylesheet")
	root.PersistentFlags().StringSlice("prefixes", style.VendorPrefixes, "vendor prefixes tried for rejected properties")
	root.AddCommand(newRenderCmd(), newDumpCmd(), newMatchCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPage parses the HTML document named by --html, if any.
func loadPage(cmd *cobra.Command) (*html.Node, error) {
	page, _ := cmd.Flags().GetString("html")
	if page == "" {
		return nil, nil
	}
	f, err := os.Open(page)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", page, err)
	}
	return root, nil
}

// buildSheet creates a stylesheet, seeds it from the <style> elements of
// page (if not nil) and applies the theme at path.
func buildSheet(cmd *cobra.Command, page *html.Node, path string) (engine *douceuradapter.Sheet, err error) {
	engine = douceuradapter.New()
	if page != nil {
		if _, err := engine.ImportStyleElements(page); err != nil {
			return nil, err
		}
	}
	prefixes, _ := cmd.Flags().GetStringSlice("prefixes")
	styles := sheet.New(engine, sheet.VendorPrefixes(prefixes))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// configuration errors surface as panics from Apply
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			engine, err = nil, e
		}
	}()
	if err = theme.Apply(styles, f); err != nil {
		return nil, err
	}
	return engine, nil
}
