package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stampt/stampt/internal/ui"
	"github.com/stampt/stampt/pkg/core"
	"github.com/stampt/stampt/pkg/stampt"
)

// app carries the process environment into the commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getwd  func() (string, error)
	extra  []stampt.Option
	args   []string // nil means os.Args[1:]

	verbose   bool
	notesDir  string
	noPointer bool

	svc *core.Service
}

func newApp() *app {
	return &app{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		getwd:  os.Getwd,
	}
}

// newRootCmd builds the command tree. Running it without a subcommand starts
// an interactive capture session.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "stampt",
		Short: "A minimal daily notes tool for your terminal",
		Long: `stampt captures short notes from the terminal and stores each one as a
timestamped markdown file in ./stampt/.

Run it without arguments to type notes interactively, or use "stampt add"
for a one-shot note.`,
		Version:       stampt.Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Context(), a)
		},
	}

	defaultDir := os.Getenv("STAMPT_DIR")
	if defaultDir == "" {
		defaultDir = stampt.DefaultDirName
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.notesDir, "dir", defaultDir, "Notes directory, relative to the working directory ($STAMPT_DIR)")
	root.PersistentFlags().BoolVar(&a.noPointer, "no-pointer", false, "Always scan the directory instead of using the latest-note pointer")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", core.ErrUsage, err)
	})
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		newAddCmd(a),
		newLastCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup configures logging and wires the note service.
func (a *app) setup() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dir := a.notesDir
	if !filepath.IsAbs(dir) {
		cwd, err := a.getwd()
		if err != nil {
			return fmt.Errorf("%w: failed to get working directory: %v", core.ErrIO, err)
		}
		dir = filepath.Join(cwd, dir)
	}

	opts := append([]stampt.Option{
		stampt.WithDir(dir),
		stampt.WithPointer(!a.noPointer),
		stampt.WithLogger(logger),
	}, a.extra...)

	svc, err := stampt.New(opts...)
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, a *app) int {
	root := newRootCmd(a)
	if a.args != nil {
		root.SetArgs(a.args)
	}

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintln(a.errOut, ui.Error("Error: ")+err.Error())
	if errors.Is(err, core.ErrUsage) {
		fmt.Fprint(a.errOut, cmd.UsageString())
	}
	return 1
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", core.ErrUsage, err)
		}
		return nil
	}
}
