package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stampt/stampt/internal/ui"
	"github.com/stampt/stampt/pkg/core"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a note without opening the interactive prompt",
		Long: `Add saves the given text as a new note. Several arguments are joined
with single spaces, so quoting is optional.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.SaveNote(cmd.Context(), strings.Join(args, " "))
			if errors.Is(err, core.ErrEmptyNote) {
				return fmt.Errorf("%w: %v", core.ErrUsage, err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, ui.Success("Added: ")+ui.Name(n.ID))
			return nil
		},
	}
}
