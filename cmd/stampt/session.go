package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/stampt/stampt/internal/ui"
	"github.com/stampt/stampt/pkg/capture"
	"github.com/stampt/stampt/pkg/core"
)

// runSession captures notes until input ends. An entry still being typed
// when input ends is discarded.
func runSession(ctx context.Context, a *app) error {
	if last, err := a.svc.LatestNote(ctx); err == nil {
		fmt.Fprintln(a.out, ui.Hint("Last note: ")+ui.Name(last.ID))
	} else if !errors.Is(err, core.ErrNotFound) {
		return err
	}
	fmt.Fprintln(a.out, capture.Usage())

	loop := capture.New(a.in, a.out, a.svc)
	for {
		res, err := loop.Run(ctx)
		if errors.Is(err, capture.ErrAborted) {
			fmt.Fprintln(a.out, ui.Hint("Bye!"))
			return nil
		}
		if err != nil {
			return err
		}

		if res.Saved {
			fmt.Fprintln(a.out, ui.Success("Saved: ")+ui.Name(res.Note.ID))
		} else {
			fmt.Fprintln(a.out, ui.Hint("Nothing to save."))
		}
	}
}
