package stampt

import (
	"log/slog"
	"time"

	"github.com/stampt/stampt/pkg/core"
)

// options holds the internal configuration for the stampt service.
type options struct {
	config     Config
	clipboard  core.Clipboard
	clock      func() time.Time
	repository core.Repository
}

// Option defines a functional option for configuring stampt.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: Config{
			Dir:        DefaultDirName,
			Ext:        DefaultExt,
			UsePointer: true,
		},
	}
}

// WithDir sets the notes directory.
func WithDir(dir string) Option {
	return func(o *options) {
		o.config.Dir = dir
	}
}

// WithExt sets the note file extension (e.g. ".md" or "txt").
func WithExt(ext string) Option {
	return func(o *options) {
		o.config.Ext = ext
	}
}

// WithPointer enables or disables the latest-note pointer cache.
func WithPointer(enabled bool) Option {
	return func(o *options) {
		o.config.UsePointer = enabled
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.config.Logger = logger
	}
}

// WithClipboard replaces the system clipboard (e.g. with a fake in tests).
func WithClipboard(c core.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithClock overrides the time source used to name notes.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRepository allows injecting a custom storage adapter.
// If provided, the filesystem adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
