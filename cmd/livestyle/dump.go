package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump THEME",
		Short: "Print the rule tree of a theme",
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
			fmt.Fprint(cmd.OutOrStdout(), engine.Dump())
			return nil
		},
	}
}
