// Package capture implements the interactive multi-line note entry.
//
// A note is typed line by line. One blank line is kept as a paragraph break
// if more text follows; a second consecutive blank line ends the entry and
// saves it. To keep several blank lines in a row, enter an escape line
// (Ctrl+X then Enter, or `\.`), which inserts one literal blank line.
//
// The line `\copy` copies the most recently saved note to the clipboard and
// is never part of the note.
//
// End of input or interruption abandons the entry without saving it.
package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/stampt/stampt/internal/ui"
	"github.com/stampt/stampt/pkg/core"
)

const (
	// CopyCommand copies the latest note to the clipboard.
	CopyCommand = `\copy`

	// EscapeCtrlX is the Ctrl+X character as delivered by a cooked terminal.
	EscapeCtrlX = "\x18"
	// EscapeBlank is the typed alternative to Ctrl+X.
	EscapeBlank = `\.`

	maxLineSize = 1024 * 1024
)

// ErrAborted is returned when input ends or the context is cancelled before
// the entry is terminated. Nothing is saved in that case.
var ErrAborted = errors.New("capture aborted")

// Notes is what the loop needs from the note service.
type Notes interface {
	SaveNote(ctx context.Context, content string) (core.Note, error)
	CopyLatest(ctx context.Context) (core.Note, error)
}

// Result describes a finished entry.
type Result struct {
	Note  core.Note
	Saved bool
}

// Loop reads entries from a line-oriented input.
type Loop struct {
	scanner *bufio.Scanner
	out     io.Writer
	notes   Notes
}

// New creates a Loop reading from in and reporting to out.
func New(in io.Reader, out io.Writer, notes Notes) *Loop {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Loop{scanner: sc, out: out, notes: notes}
}

// Usage returns the one-line key help shown before capturing.
func Usage() string {
	return ui.Hint("Blank line twice to save  •  ") + ui.Accent("Ctrl+X") + ui.Hint(" or ") +
		ui.Accent(EscapeBlank) + ui.Hint(" + Enter for a blank line  •  ") + ui.Accent(CopyCommand) +
		ui.Hint(" copies the last note  •  Ctrl+D quits")
}

// Run captures a single entry and saves it.
// An entry with no text saves nothing and returns a Result with Saved false.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	var lines []string
	pending := false

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrAborted, err)
		}
		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				return Result{}, fmt.Errorf("%w: reading input: %v", core.ErrIO, err)
			}
			return Result{}, ErrAborted
		}

		line := strings.TrimSuffix(l.scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == CopyCommand:
			l.copyLatest(ctx)

		case trimmed == EscapeCtrlX || trimmed == EscapeBlank:
			if pending {
				lines = append(lines, "")
				pending = false
			}
			lines = append(lines, "")

		case trimmed == "":
			if pending {
				return l.finish(ctx, lines)
			}
			pending = true

		default:
			// A single blank before the first line of text is not kept.
			if pending && len(lines) > 0 {
				lines = append(lines, "")
			}
			pending = false
			lines = append(lines, line)
		}
	}
}

func (l *Loop) finish(ctx context.Context, lines []string) (Result, error) {
	content := strings.Join(lines, "\n")
	if strings.TrimSpace(content) == "" {
		return Result{}, nil
	}

	n, err := l.notes.SaveNote(ctx, content)
	if err != nil {
		return Result{}, err
	}
	return Result{Note: n, Saved: true}, nil
}

func (l *Loop) copyLatest(ctx context.Context) {
	n, err := l.notes.CopyLatest(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(l.out, ui.Success("Copied ")+ui.Name(n.ID)+ui.Success(" to clipboard."))
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintln(l.out, ui.Warn("No notes yet."))
	case errors.Is(err, core.ErrClipboardUnavailable):
		fmt.Fprintln(l.out, ui.Warn(fmt.Sprintf("Clipboard not available: %v", err)))
	default:
		fmt.Fprintln(l.out, ui.Error(fmt.Sprintf("Error copying to clipboard: %v", err)))
	}
}
