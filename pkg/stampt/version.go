package stampt

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release version of stampt.
var Version = strings.TrimSpace(version)
