package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "stampt-tmp-"
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it over the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpName, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

// createFileAtomic is writeFileAtomic without replacement: if filename
// already exists it fails with an error matching os.ErrExist and leaves the
// existing file untouched.
func createFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpName, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	// A hard link fails when the target exists, which makes publishing the
	// file a single no-replace step.
	linkErr := os.Link(tmpName, filename)
	if linkErr == nil {
		return nil
	}
	if errors.Is(linkErr, os.ErrExist) {
		return fmt.Errorf("failed to publish %s: %w", filename, linkErr)
	}

	// Filesystems without hard links: check then rename.
	if _, err := os.Lstat(filename); err == nil {
		return fmt.Errorf("failed to publish %s: %w", filename, os.ErrExist)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

// writeTemp writes data to a fresh temp file in dir and returns its name.
// On failure the temp file is already removed.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmpFile.Name()

	fail := func(format string, err error) (string, error) {
		tmpFile.Close()
		os.Remove(name)
		return "", fmt.Errorf(format, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to chmod temp file: %w", err)
	}
	return name, nil
}
