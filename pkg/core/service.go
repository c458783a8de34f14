package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service handles the business logic for notes.
type Service struct {
	repo      Repository
	clipboard Clipboard
	logger    *slog.Logger
}

// NewService creates a new Service. A nil clipboard makes CopyLatest report
// ErrClipboardUnavailable.
func NewService(repo Repository, clipboard Clipboard, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, clipboard: clipboard, logger: logger}
}

// SaveNote persists content as a new note.
// Whitespace-only content is rejected with ErrEmptyNote; anything else is
// written verbatim.
func (s *Service) SaveNote(ctx context.Context, content string) (Note, error) {
	if strings.TrimSpace(content) == "" {
		return Note{}, ErrEmptyNote
	}
	n, err := s.repo.Save(ctx, content)
	if err != nil {
		return Note{}, err
	}
	s.logger.Debug("note saved", "id", n.ID, "bytes", len(content))
	return n, nil
}

// GetNote retrieves a note by ID.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, fmt.Errorf("%w: note ID cannot be empty", ErrUsage)
	}
	return s.repo.Get(ctx, id)
}

// LatestNote returns the most recent note.
func (s *Service) LatestNote(ctx context.Context) (Note, error) {
	return s.repo.Latest(ctx)
}

// ListNotes returns all notes, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

// SearchNotes returns notes whose content contains query, ignoring case,
// newest first. A limit <= 0 means no limit.
func (s *Service) SearchNotes(ctx context.Context, query string, limit int) ([]Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Content), needle) {
			matches = append(matches, n)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// CopyLatest copies the most recent note to the clipboard and returns it.
func (s *Service) CopyLatest(ctx context.Context) (Note, error) {
	n, err := s.repo.Latest(ctx)
	if err != nil {
		return Note{}, err
	}
	if s.clipboard == nil {
		return Note{}, ErrClipboardUnavailable
	}
	if err := s.clipboard.WriteAll(n.Content); err != nil {
		s.logger.Warn("clipboard write failed", "id", n.ID, "error", err)
		return Note{}, err
	}
	s.logger.Debug("note copied", "id", n.ID)
	return n, nil
}
