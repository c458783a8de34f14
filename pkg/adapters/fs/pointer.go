package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const pointerVersion = 1

// pointerState is the persisted record of the most recently written note.
type pointerState struct {
	Version int    `yaml:"version"`
	ID      string `yaml:"id"`
	// DirModTime is the notes directory mtime (UnixNano) observed right after
	// the note was recorded. Any entry added or removed since changes it.
	DirModTime int64 `yaml:"dir_mtime"`
}

// pointer caches the latest note's file name so Latest can skip the full
// directory scan. It is never the source of truth: a record is only used
// while the directory is unchanged and the named file still exists.
type pointer struct {
	Path     string // {dir}/{systemDir}/latest.yaml
	notesDir string
}

func newPointer(notesDir, systemDir string) *pointer {
	return &pointer{
		Path:     filepath.Join(notesDir, systemDir, "latest.yaml"),
		notesDir: notesDir,
	}
}

// Lookup returns the cached note ID if the record is still valid.
func (p *pointer) Lookup() (string, bool) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return "", false
	}

	var st pointerState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return "", false
	}
	if st.Version != pointerVersion || st.ID == "" || filepath.Base(st.ID) != st.ID {
		return "", false
	}

	info, err := os.Stat(p.notesDir)
	if err != nil || info.ModTime().UnixNano() != st.DirModTime {
		return "", false
	}

	target, err := os.Lstat(filepath.Join(p.notesDir, st.ID))
	if err != nil || !target.Mode().IsRegular() {
		return "", false
	}
	return st.ID, true
}

// Store records id as the latest note.
func (p *pointer) Store(id string) error {
	// The system dir must exist before the mtime is sampled, since creating
	// it touches the notes directory.
	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return fmt.Errorf("failed to create pointer directory: %w", err)
	}

	info, err := os.Stat(p.notesDir)
	if err != nil {
		return fmt.Errorf("failed to stat notes directory: %w", err)
	}

	data, err := yaml.Marshal(pointerState{
		Version:    pointerVersion,
		ID:         id,
		DirModTime: info.ModTime().UnixNano(),
	})
	if err != nil {
		return err
	}
	return writeFileAtomic(p.Path, data, 0644)
}

// Invalidate removes the record.
func (p *pointer) Invalidate() {
	os.Remove(p.Path)
}
