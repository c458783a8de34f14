package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/stampt/stampt/pkg/core"
)

const (
	// TimeLayout is the timestamp layout embedded in every note file name.
	TimeLayout = "2006-01-02_15-04-05"

	// MaxVersions bounds the "_vN" suffixes tried for a single second.
	MaxVersions = 999

	versionSep = "_v"

	// stampGlob matches the TimeLayout prefix of a note name.
	stampGlob = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]_[0-9][0-9]-[0-9][0-9]-[0-9][0-9]"
)

// NormalizeExt returns ext with exactly one leading dot.
func NormalizeExt(ext string) string {
	return "." + strings.TrimLeft(ext, ".")
}

// FormatName builds the file name of a note created at t.
// Version 0 yields the plain "YYYY-MM-DD_HH-MM-SS.ext" form; higher versions
// append "_vN" before the extension.
func FormatName(t time.Time, version int, ext string) string {
	base := t.Format(TimeLayout)
	if version > 0 {
		base += versionSep + strconv.Itoa(version)
	}
	return base + NormalizeExt(ext)
}

// ParseName extracts the creation time and version from a note file name.
// It reports false for anything FormatName could not have produced.
func ParseName(name, ext string) (time.Time, int, bool) {
	stem, ok := strings.CutSuffix(name, NormalizeExt(ext))
	if !ok || len(stem) < len(TimeLayout) {
		return time.Time{}, 0, false
	}

	created, err := time.ParseInLocation(TimeLayout, stem[:len(TimeLayout)], time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}

	rest := stem[len(TimeLayout):]
	if rest == "" {
		return created, 0, true
	}

	digits, ok := strings.CutPrefix(rest, versionSep)
	if !ok || digits == "" || digits[0] == '0' {
		return time.Time{}, 0, false
	}
	version, err := strconv.Atoi(digits)
	if err != nil || version < 1 {
		return time.Time{}, 0, false
	}
	return created, version, true
}

// globPattern returns the doublestar pattern that pre-filters note names.
func globPattern(ext string) string {
	return stampGlob + "*" + NormalizeExt(ext)
}

// freeName returns the first name for t, starting at version from, that does
// not exist in dir. It never returns the name of an existing file.
func freeName(dir string, t time.Time, ext string, from int) (string, int, error) {
	for v := from; v <= MaxVersions; v++ {
		name := FormatName(t, v, ext)
		_, err := os.Lstat(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return name, v, nil
		}
		if err != nil {
			return "", 0, fmt.Errorf("failed to check %s: %w", name, err)
		}
	}
	return "", 0, fmt.Errorf("%w: %s", core.ErrTooManyVersions, t.Format(TimeLayout))
}
