package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/stampt/stampt/internal/ui"
	"github.com/stampt/stampt/pkg/core"
)

const searchLimit = 10

func newLastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent note",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.svc.LatestNote(cmd.Context())
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintln(a.out, ui.Warn("No notes yet."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, ui.Name(n.ID))
			fmt.Fprintln(a.out, ui.Rule(50))
			fmt.Fprintln(a.out, strings.TrimRight(n.Content, "\n"))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := a.svc.ListNotes(cmd.Context())
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintln(a.out, ui.Warn("No notes yet."))
				return nil
			}

			shown := notes
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			fmt.Fprintln(a.out, ui.Accent(fmt.Sprintf("%d note(s) (showing latest %d)", len(notes), len(shown))))
			fmt.Fprintln(a.out, ui.Rule(60))
			printPreviews(a, shown, 60)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of notes to show (0 for all)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Search notes for a term (case-insensitive)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("%w: search term cannot be empty", core.ErrUsage)
			}

			matches, err := a.svc.SearchNotes(cmd.Context(), query, 0)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(a.out, ui.Accent(fmt.Sprintf("No notes found matching '%s'", query)))
				return nil
			}

			fmt.Fprintln(a.out, ui.Accent(fmt.Sprintf("Found %d note(s) matching '%s':", len(matches), query)))
			fmt.Fprintln(a.out, ui.Rule(50))
			if len(matches) > searchLimit {
				matches = matches[:searchLimit]
			}
			printPreviews(a, matches, 80)
			return nil
		},
	}
}

func printPreviews(a *app, notes []core.Note, width int) {
	for _, n := range notes {
		fmt.Fprintln(a.out, ui.Name(n.ID))
		fmt.Fprintln(a.out, ui.Hint("   "+preview(n.Content, width)))
		fmt.Fprintln(a.out)
	}
}

// preview returns the first line of content, cut to width runes.
func preview(content string, width int) string {
	line, _, _ := strings.Cut(content, "\n")
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	return string(runes[:width-3]) + "..."
}
