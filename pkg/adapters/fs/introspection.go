package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string `json:"path"`
	SystemDir string `json:"system_dir"`
	Ext       string `json:"ext"`
	Pointer   bool   `json:"pointer"`
	LastSaved string `json:"last_saved,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		Path:      r.Path,
		SystemDir: r.config.SystemDir,
		Ext:       r.config.Ext,
		Pointer:   r.pointer != nil,
		LastSaved: r.lastSaved,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
