package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render THEME",
		Short: "Print the CSS text of a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(cmd)
			if err != nil {
				return err
			}
			engine, err := buildSheet(cmd, page, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.String())
			return nil
		},
	}
}
