package stampt

import (
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/stampt/stampt/pkg/core"
)

const (
	// DefaultDirName is the notes folder created in the working directory.
	DefaultDirName = "stampt"
	// DefaultExt is the extension of note files.
	DefaultExt = ".md"
)

var extPattern = regexp.MustCompile(`^\.?[A-Za-z0-9]+$`)

// Config holds the resolved configuration of a stampt instance.
type Config struct {
	Dir        string
	Ext        string
	UsePointer bool
	Logger     *slog.Logger
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Ext, validation.Required, validation.Match(extPattern)),
	)
	if err != nil {
		return fmt.Errorf("%w: invalid configuration: %v", core.ErrUsage, err)
	}
	return nil
}
