package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampt/stampt/pkg/core"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRepo(t *testing.T, usePointer bool) (*Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "stampt")
	repo := NewRepository(Config{
		Path:       dir,
		UsePointer: usePointer,
		Clock:      fixedClock(stamp.Add(400 * time.Millisecond)),
	})
	return repo, dir
}

func TestRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Directory And Writes Verbatim", func(t *testing.T) {
		repo, dir := newTestRepo(t, false)
		content := "line one\n\n  ünïcødé ✓ 日本語\ttab\n"

		n, err := repo.Save(ctx, content)
		require.NoError(t, err)
		assert.Equal(t, "2026-10-14_09-30-05.md", n.ID)
		assert.True(t, n.Created.Equal(stamp))

		got, err := os.ReadFile(filepath.Join(dir, n.ID))
		require.NoError(t, err)
		assert.Equal(t, []byte(content), got)
	})

	t.Run("Same Second Burst Gets Distinct Names", func(t *testing.T) {
		repo, dir := newTestRepo(t, true)

		seen := map[string]bool{}
		for i := 0; i < 25; i++ {
			n, err := repo.Save(ctx, "note")
			require.NoError(t, err)
			assert.False(t, seen[n.ID], "duplicate name %s", n.ID)
			seen[n.ID] = true
			assert.Equal(t, i, n.Version)
		}

		refs, err := repo.scan()
		require.NoError(t, err)
		assert.Len(t, refs, 25)
		_, err = os.Stat(dir)
		require.NoError(t, err)
	})

	t.Run("Never Alters Existing Files", func(t *testing.T) {
		repo, dir := newTestRepo(t, false)
		require.NoError(t, os.MkdirAll(dir, 0755))
		existing := filepath.Join(dir, "2026-10-14_09-30-05.md")
		require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0644))

		n, err := repo.Save(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "2026-10-14_09-30-05_v1.md", n.ID)

		got, _ := os.ReadFile(existing)
		assert.Equal(t, "keep me", string(got))
	})

	t.Run("Fails When Directory Cannot Be Created", func(t *testing.T) {
		base := t.TempDir()
		blocker := filepath.Join(base, "stampt")
		require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0644))

		repo := NewRepository(Config{Path: blocker})
		_, err := repo.Save(ctx, "x")
		assert.ErrorIs(t, err, core.ErrIO)
	})
}

func TestRepository_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound When Directory Missing", func(t *testing.T) {
		repo, dir := newTestRepo(t, true)
		_, err := repo.Latest(ctx)
		assert.ErrorIs(t, err, core.ErrNotFound)

		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), "Latest must not create the directory")
	})

	t.Run("NotFound When Directory Empty", func(t *testing.T) {
		repo, dir := newTestRepo(t, false)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("ignored"), 0644))

		_, err := repo.Latest(ctx)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Uses Embedded Timestamp And Version", func(t *testing.T) {
		repo, dir := newTestRepo(t, false)
		require.NoError(t, os.MkdirAll(dir, 0755))

		files := map[string]string{
			"2025-01-01_00-00-00.md":     "old",
			"2026-10-14_09-30-05.md":     "same second v0",
			"2026-10-14_09-30-05_v2.md":  "same second v2",
			"2026-10-14_09-30-05_v10.md": "same second v10",
			"2026-10-14_09-30-04_v99.md": "one second earlier",
		}
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
		}
		// mtime must not matter.
		past := time.Now().Add(-48 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "2026-10-14_09-30-05_v10.md"), past, past))

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2026-10-14_09-30-05_v10.md", n.ID)
		assert.Equal(t, "same second v10", n.Content)
	})
}

func TestRepository_LatestPointer(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit After Save", func(t *testing.T) {
		repo, _ := newTestRepo(t, true)
		saved, err := repo.Save(ctx, "first")
		require.NoError(t, err)

		id, ok := repo.pointer.Lookup()
		require.True(t, ok)
		assert.Equal(t, saved.ID, id)

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "first", n.Content)
	})

	t.Run("Manual Addition Invalidates", func(t *testing.T) {
		repo, dir := newTestRepo(t, true)
		_, err := repo.Save(ctx, "first")
		require.NoError(t, err)

		newer := "2030-01-01_00-00-00.md"
		require.NoError(t, os.WriteFile(filepath.Join(dir, newer), []byte("manual"), 0644))
		// Force a distinct directory mtime regardless of timestamp granularity.
		future := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(dir, future, future))

		_, ok := repo.pointer.Lookup()
		assert.False(t, ok)

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, newer, n.ID)

		id, ok := repo.pointer.Lookup()
		require.True(t, ok)
		assert.Equal(t, newer, id)
	})

	t.Run("Deleted Target Falls Back To Scan", func(t *testing.T) {
		repo, dir := newTestRepo(t, true)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "2020-01-01_00-00-00.md"), []byte("older"), 0644))

		saved, err := repo.Save(ctx, "newest")
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(dir, saved.ID)))

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "older", n.Content)
	})

	t.Run("Corrupted Pointer Falls Back To Scan", func(t *testing.T) {
		repo, _ := newTestRepo(t, true)
		_, err := repo.Save(ctx, "content")
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(repo.pointer.Path, []byte("{ not: [valid"), 0644))

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "content", n.Content)
	})

	t.Run("Pointer Never Written When Disabled", func(t *testing.T) {
		repo, dir := newTestRepo(t, false)
		_, err := repo.Save(ctx, "content")
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, ".stampt"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestRepository_LatestPointerAfterOlderSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Suffix Gap Filled", func(t *testing.T) {
		repo, dir := newTestRepo(t, true)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, FormatName(stamp, 0, ".md")), []byte("v0"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, FormatName(stamp, 2, ".md")), []byte("v2"), 0644))

		saved, err := repo.Save(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, 1, saved.Version)

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, FormatName(stamp, 2, ".md"), n.ID)
		assert.Equal(t, "v2", n.Content)
	})

	t.Run("Clock Steps Backwards", func(t *testing.T) {
		now := time.Date(2026, 10, 25, 1, 59, 0, 0, time.Local)
		dir := filepath.Join(t.TempDir(), "stampt")
		repo := NewRepository(Config{
			Path:       dir,
			UsePointer: true,
			Clock:      func() time.Time { return now },
		})

		later, err := repo.Save(ctx, "later")
		require.NoError(t, err)
		_, ok := repo.pointer.Lookup()
		require.True(t, ok)

		now = now.Add(-29 * time.Minute)
		earlier, err := repo.Save(ctx, "earlier stamp")
		require.NoError(t, err)
		require.True(t, earlier.Before(later))

		id, ok := repo.pointer.Lookup()
		require.True(t, ok)
		assert.Equal(t, later.ID, id)

		n, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "later", n.Content)
	})

	t.Run("Matches Full Scan", func(t *testing.T) {
		cached, dir := newTestRepo(t, true)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "2030-01-01_00-00-00.md"), []byte("future"), 0644))

		_, err := cached.Save(ctx, "now")
		require.NoError(t, err)

		scanned := NewRepository(Config{Path: dir})
		want, err := scanned.Latest(ctx)
		require.NoError(t, err)
		got, err := cached.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	})
}

func TestRepository_ListAndGet(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t, true)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	for _, c := range []string{"a", "b", "c"} {
		_, err := repo.Save(ctx, c)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	notes, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "c", notes[0].Content)
	assert.Equal(t, "a", notes[2].Content)

	n, err := repo.Get(ctx, notes[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "b", n.Content)

	_, err = repo.Get(ctx, "notes.txt")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.Get(ctx, "../2026-10-14_09-30-05.md")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.Get(ctx, "2001-01-01_00-00-00.md")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_State(t *testing.T) {
	repo, dir := newTestRepo(t, true)
	_, err := repo.Save(context.Background(), "x")
	require.NoError(t, err)

	st, ok := repo.State().(RepositoryState)
	require.True(t, ok)
	assert.Equal(t, dir, st.Path)
	assert.Equal(t, ".md", st.Ext)
	assert.True(t, st.Pointer)
	assert.Equal(t, "2026-10-14_09-30-05.md", st.LastSaved)
	assert.Equal(t, "repository", repo.ComponentType())
}
