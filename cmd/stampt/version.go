package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stampt/stampt/pkg/stampt"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of stampt",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stampt version %s\n", stampt.Version)
		},
	}
}
