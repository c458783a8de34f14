package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stampt/stampt/pkg/core"
)

// Repository implements core.Repository on a flat directory of note files.
type Repository struct {
	Path      string
	config    Config
	pointer   *pointer
	lastSaved string
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path       string
	Ext        string // e.g. ".md"
	SystemDir  string // e.g. ".stampt"; holds the latest-note pointer
	UsePointer bool
	Clock      func() time.Time
	Logger     *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Ext == "" {
		config.Ext = ".md"
	}
	config.Ext = NormalizeExt(config.Ext)
	if config.SystemDir == "" {
		config.SystemDir = ".stampt"
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	r := &Repository{
		Path:   config.Path,
		config: config,
	}
	if config.UsePointer {
		r.pointer = newPointer(config.Path, config.SystemDir)
	}
	return r
}

// Initialize creates the notes directory if it does not exist.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("%w: failed to create notes directory: %v", core.ErrIO, err)
	}
	return nil
}

// Save writes content verbatim to a new, uniquely named note file.
//
// Workflow:
//  1. Create the notes directory.
//  2. Pick the first free name for the current second.
//  3. Write a temp file and publish it without replacing anything. If another
//     writer took the name in between, move on to the next version.
//  4. Record the newest note in the latest pointer (best effort). The note just
//     written is not necessarily the newest: the namer fills suffix gaps and
//     the clock can step backwards.
func (r *Repository) Save(ctx context.Context, content string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	if err := r.Initialize(ctx); err != nil {
		return core.Note{}, err
	}

	// Sampled before the write, while the recorded mtime can still match.
	prevID, prevOK := r.lookupPointer()

	created := r.config.Clock().Truncate(time.Second)
	from := 0
	for {
		name, version, err := freeName(r.Path, created, r.config.Ext, from)
		if err != nil {
			return core.Note{}, fmt.Errorf("%w: %w", core.ErrIO, err)
		}

		err = createFileAtomic(filepath.Join(r.Path, name), []byte(content), 0644)
		if errors.Is(err, os.ErrExist) {
			r.config.Logger.Debug("name taken during publish, retrying", "name", name)
			from = version + 1
			continue
		}
		if err != nil {
			return core.Note{}, fmt.Errorf("%w: %w", core.ErrIO, err)
		}

		r.lastSaved = name
		r.config.Logger.Debug("note written", "path", filepath.Join(r.Path, name))
		n := core.Note{
			ID:      name,
			Created: created,
			Version: version,
			Content: content,
		}
		r.rememberSaved(n, prevID, prevOK)
		return n, nil
	}
}

// Get reads a single note by file name.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	if filepath.Base(id) != id {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	created, version, ok := ParseName(id, r.config.Ext)
	if !ok {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r.read(core.Note{ID: id, Created: created, Version: version})
}

// Latest returns the note with the greatest (timestamp, version).
// The pointer is consulted first; on any doubt the directory is scanned.
func (r *Repository) Latest(ctx context.Context) (core.Note, error) {
	if r.pointer != nil {
		if id, ok := r.pointer.Lookup(); ok {
			n, err := r.Get(ctx, id)
			if err == nil {
				r.config.Logger.Debug("latest pointer hit", "id", id)
				return n, nil
			}
			r.config.Logger.Debug("latest pointer unreadable, rescanning", "id", id, "error", err)
			r.pointer.Invalidate()
		}
	}

	refs, err := r.scan()
	if err != nil {
		return core.Note{}, err
	}
	if len(refs) == 0 {
		return core.Note{}, core.ErrNotFound
	}

	n, err := r.read(refs[0])
	if err != nil {
		return core.Note{}, err
	}
	r.remember(n.ID)
	return n, nil
}

// List returns every note with its content, newest first.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	refs, err := r.scan()
	if err != nil {
		return nil, err
	}

	notes := make([]core.Note, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.read(ref)
		if err != nil {
			r.config.Logger.Warn("skipping unreadable note", "id", ref.ID, "error", err)
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// scan lists the note names in the directory, newest first, without reading
// their contents. A missing directory yields no notes.
func (r *Repository) scan() ([]core.Note, error) {
	info, err := os.Stat(r.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read notes directory: %v", core.ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: notes path is not a directory: %s", core.ErrIO, r.Path)
	}

	names, err := doublestar.Glob(os.DirFS(r.Path), globPattern(r.config.Ext),
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list notes: %v", core.ErrIO, err)
	}

	refs := make([]core.Note, 0, len(names))
	for _, name := range names {
		created, version, ok := ParseName(name, r.config.Ext)
		if !ok {
			continue
		}
		refs = append(refs, core.Note{ID: name, Created: created, Version: version})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[j].Before(refs[i])
	})
	return refs, nil
}

func (r *Repository) read(ref core.Note) (core.Note, error) {
	data, err := os.ReadFile(filepath.Join(r.Path, ref.ID))
	if os.IsNotExist(err) {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, ref.ID)
	}
	if err != nil {
		return core.Note{}, fmt.Errorf("%w: failed to read %s: %v", core.ErrIO, ref.ID, err)
	}
	ref.Content = string(data)
	return ref, nil
}

func (r *Repository) lookupPointer() (string, bool) {
	if r.pointer == nil {
		return "", false
	}
	return r.pointer.Lookup()
}

// rememberSaved points the cache at the newest note after saving n.
// With a valid previous pointer the comparison is O(1); otherwise the names
// are scanned once.
func (r *Repository) rememberSaved(n core.Note, prevID string, prevOK bool) {
	if r.pointer == nil {
		return
	}

	if prevOK {
		if created, version, ok := ParseName(prevID, r.config.Ext); ok {
			prev := core.Note{ID: prevID, Created: created, Version: version}
			if n.Before(prev) {
				r.remember(prevID)
			} else {
				r.remember(n.ID)
			}
			return
		}
	}

	refs, err := r.scan()
	if err != nil || len(refs) == 0 {
		r.pointer.Invalidate()
		return
	}
	r.remember(refs[0].ID)
}

func (r *Repository) remember(id string) {
	if r.pointer == nil {
		return
	}
	if err := r.pointer.Store(id); err != nil {
		r.config.Logger.Warn("failed to update latest pointer", "error", err)
	}
}
