package stampt

import (
	"log/slog"

	"github.com/stampt/stampt/pkg/adapters/clipboard"
	"github.com/stampt/stampt/pkg/adapters/fs"
	"github.com/stampt/stampt/pkg/core"
)

// New wires a note service from the given options.
// The notes directory is not touched until the first save.
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	logger := o.config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Path:       o.config.Dir,
			Ext:        o.config.Ext,
			UsePointer: o.config.UsePointer,
			Clock:      o.clock,
			Logger:     logger.With("component", "fs"),
		})
	}

	clip := o.clipboard
	if clip == nil {
		clip = clipboard.New()
	}

	logger.Debug("stampt configured", "dir", o.config.Dir, "ext", o.config.Ext, "pointer", o.config.UsePointer)
	return core.NewService(repo, clip, logger), nil
}
