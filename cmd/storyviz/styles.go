package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/storyviz/internal/storybook"
)

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the supported illustration styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, st := range storybook.Styles() {
				suffix := ""
				if st == storybook.DefaultStyle {
					suffix = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", st, suffix)
			}
		},
	}
}
