package core

import "errors"

// Error kinds. Callers match them with errors.Is.
var (
	ErrUsage                = errors.New("usage error")
	ErrIO                   = errors.New("i/o error")
	ErrNotFound             = errors.New("no notes yet")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrEmptyNote            = errors.New("cannot save empty note")
	ErrTooManyVersions      = errors.New("too many versions this second")
)
