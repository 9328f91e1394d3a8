package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func newTestStore(t *testing.T, name string) *Store {
	t.Helper()
	s, err := NewStore(Config{Path: filepath.Join(t.TempDir(), name)})
	require.NoError(t, err)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func ptr(s string) *string { return &s }

func TestStore_Initialize(t *testing.T) {
	t.Run("Creates Empty Collection", func(t *testing.T) {
		s := newTestStore(t, "notes.json")

		data, err := os.ReadFile(s.Path)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))

		notes, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Keeps Existing Collection", func(t *testing.T) {
		s := newTestStore(t, "notes.json")
		n := core.NewNote("kept", "body")
		require.NoError(t, s.Add(context.Background(), n))

		require.NoError(t, s.Initialize(context.Background()))
		notes, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, n.ID, notes[0].ID)
	})

	t.Run("Defaults Path", func(t *testing.T) {
		s, err := NewStore(Config{})
		require.NoError(t, err)
		assert.Equal(t, DefaultFilename, s.Path)
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		s, err := NewStore(Config{Path: filepath.Join(t.TempDir(), "missing", "notes.json")})
		require.NoError(t, err)

		err = s.Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})

	t.Run("Fails if Path Is Directory", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewStore(Config{Path: dir})
		require.NoError(t, err)

		assert.ErrorIs(t, s.Initialize(context.Background()), core.ErrStorageUnavailable)
		_, err = s.ListAll(context.Background())
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})

	t.Run("Rejects Unknown Format", func(t *testing.T) {
		_, err := NewStore(Config{Path: "notes.json", Format: "toml"})
		assert.Error(t, err)
	})
}

func TestStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")

	n := core.NewNote("Test", "Content")
	require.NoError(t, s.Add(ctx, n))

	notes, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, n.ID, notes[0].ID)
	assert.Equal(t, n.Title, notes[0].Title)
	assert.Equal(t, n.Content, notes[0].Content)
	assert.True(t, n.CreatedAt.Equal(notes[0].CreatedAt))
}

func TestStore_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")

	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		n := core.NewNote(title, "")
		ids = append(ids, n.ID)
		require.NoError(t, s.Add(ctx, n))
	}

	_, err := s.Delete(ctx, ids[1])
	require.NoError(t, err)
	_, err = s.Edit(ctx, ids[2], core.Patch{Title: ptr("THREE")})
	require.NoError(t, err)

	notes, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[3]}, []string{notes[0].ID, notes[1].ID, notes[2].ID})
}

func TestStore_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")

	n := core.NewNote("first", "")
	require.NoError(t, s.Add(ctx, n))

	err := s.Add(ctx, core.NewNote("second", "", core.WithID(n.ID)))
	assert.ErrorIs(t, err, core.ErrDuplicateID)

	notes, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestStore_GetByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")
	n := core.NewNote("find me", "")
	require.NoError(t, s.Add(ctx, n))

	got, found, err := s.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "find me", got.Title)

	_, found, err = s.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")
	n := core.NewNote("To Delete", "...")
	require.NoError(t, s.Add(ctx, n))

	t.Run("Absent ID Leaves Collection Unchanged", func(t *testing.T) {
		before, err := os.ReadFile(s.Path)
		require.NoError(t, err)

		found, err := s.Delete(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)

		after, err := os.ReadFile(s.Path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Removes Note", func(t *testing.T) {
		found, err := s.Delete(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, found)

		notes, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

func TestStore_Edit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		patch       core.Patch
		wantTitle   string
		wantContent string
	}{
		{"Title Only", core.Patch{Title: ptr("C")}, "C", "B"},
		{"Content Only", core.Patch{Content: ptr("D")}, "A", "D"},
		{"Both", core.Patch{Title: ptr("C"), Content: ptr("D")}, "C", "D"},
		{"Neither", core.Patch{}, "A", "B"},
		{"Empty Title Ignored", core.Patch{Title: ptr("")}, "A", "B"},
		{"Empty Content Clears", core.Patch{Content: ptr("")}, "A", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, "notes.json")
			n := core.NewNote("A", "B")
			require.NoError(t, s.Add(ctx, n))

			found, err := s.Edit(ctx, n.ID, tt.patch)
			require.NoError(t, err)
			assert.True(t, found)

			got, found, err := s.GetByID(ctx, n.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantContent, got.Content)
			assert.Equal(t, n.ID, got.ID)
			assert.True(t, n.CreatedAt.Equal(got.CreatedAt))
		})
	}

	t.Run("Absent ID Does Not Write", func(t *testing.T) {
		s := newTestStore(t, "notes.json")
		s.write = func(string, []byte, os.FileMode) error {
			t.Fatal("unexpected write")
			return nil
		}

		found, err := s.Edit(ctx, "missing", core.Patch{Title: ptr("x")})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestStore_Filter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")

	apple := core.NewNote("Apple", "Green")
	banana := core.NewNote("Banana", "Yellow")
	cherry := core.NewNote("Cherry", "red, like an APPLE")
	for _, n := range []core.Note{apple, banana, cherry} {
		require.NoError(t, s.Add(ctx, n))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"apple", []string{apple.ID, cherry.ID}},
		{"YELLOW", []string{banana.ID}},
		{"an", []string{banana.ID, cherry.ID}},
		{"", []string{apple.ID, banana.ID, cherry.ID}},
		{"durian", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			notes, err := s.Filter(ctx, tt.query)
			require.NoError(t, err)

			var got []string
			for _, n := range notes {
				got = append(got, n.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_FilterExactFirstNote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")
	require.NoError(t, s.Add(ctx, core.NewNote("Apple", "Green")))
	require.NoError(t, s.Add(ctx, core.NewNote("Banana", "Yellow")))

	results, err := s.Filter(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Apple", results[0].Title)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	first, err := NewStore(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	n := core.NewNote("durable", "yes")
	require.NoError(t, first.Add(ctx, n))

	second, err := NewStore(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, second.Initialize(ctx))

	got, found, err := second.GetByID(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "durable", got.Title)
}

func TestStore_WriteFailureKeepsPriorCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")

	keep := core.NewNote("keep", "")
	victim := core.NewNote("victim", "")
	require.NoError(t, s.Add(ctx, keep))
	require.NoError(t, s.Add(ctx, victim))

	before, err := s.ListAll(ctx)
	require.NoError(t, err)

	s.write = func(string, []byte, os.FileMode) error {
		return errors.New("disk full")
	}

	t.Run("Delete", func(t *testing.T) {
		found, err := s.Delete(ctx, victim.ID)
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
		assert.False(t, found)
	})

	t.Run("Add", func(t *testing.T) {
		assert.ErrorIs(t, s.Add(ctx, core.NewNote("new", "")), core.ErrStorageUnavailable)
	})

	t.Run("Edit", func(t *testing.T) {
		_, err := s.Edit(ctx, keep.ID, core.Patch{Title: ptr("changed")})
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})

	after, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_RealWriteFailureLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.json")
	require.NoError(t, s.Add(ctx, core.NewNote("a", "")))

	// Replacing the target with a non-empty directory makes the rename fail.
	require.NoError(t, os.Remove(s.Path))
	require.NoError(t, os.Mkdir(s.Path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "blocker"), nil, 0644))

	err := s.save([]core.Note{core.NewNote("b", "")})
	assert.ErrorIs(t, err, core.ErrStorageUnavailable)

	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), TempFilePrefix)
	}
}

func TestStore_Corrupt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", "{not json"},
		{"Object Instead of Array", `{"id": "x"}`},
		{"Missing Field", `[{"id": "x", "title": "t", "content": "c"}]`},
		{"Wrong Type", `[{"id": 1, "title": "t", "content": "c", "created_at": "2024-01-01T00:00:00Z"}]`},
		{"Null Record", `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, "notes.json")
			require.NoError(t, os.WriteFile(s.Path, []byte(tt.body), 0644))

			_, err := s.ListAll(ctx)
			assert.ErrorIs(t, err, core.ErrStorageCorrupt)

			// Mutations must not overwrite what they could not read.
			assert.ErrorIs(t, s.Add(ctx, core.NewNote("x", "")), core.ErrStorageCorrupt)
			data, err := os.ReadFile(s.Path)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(data))
		})
	}

	t.Run("Malformed Record Is Wrapped", func(t *testing.T) {
		s := newTestStore(t, "notes.json")
		require.NoError(t, os.WriteFile(s.Path, []byte(`[{"id": "x"}]`), 0644))

		_, err := s.ListAll(ctx)
		assert.ErrorIs(t, err, core.ErrStorageCorrupt)
		assert.ErrorIs(t, err, core.ErrMalformedRecord)
	})
}

func TestStore_EmptyFileReadsAsEmpty(t *testing.T) {
	s := newTestStore(t, "notes.json")
	require.NoError(t, os.WriteFile(s.Path, []byte("  \n"), 0644))

	notes, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestStore_RecreatesDeletedFile(t *testing.T) {
	s := newTestStore(t, "notes.json")
	require.NoError(t, os.Remove(s.Path))

	notes, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = os.Stat(s.Path)
	assert.NoError(t, err)
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	t.Run("Missing File Reads Empty and Is Not Created", func(t *testing.T) {
		s, err := NewStore(Config{Path: path, ReadOnly: true})
		require.NoError(t, err)
		require.NoError(t, s.Initialize(ctx))

		notes, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Mutations Fail", func(t *testing.T) {
		rw, err := NewStore(Config{Path: path})
		require.NoError(t, err)
		n := core.NewNote("existing", "")
		require.NoError(t, rw.Add(ctx, n))

		s, err := NewStore(Config{Path: path, ReadOnly: true})
		require.NoError(t, err)

		assert.ErrorIs(t, s.Add(ctx, core.NewNote("x", "")), core.ErrReadOnly)
		_, err = s.Edit(ctx, n.ID, core.Patch{Title: ptr("y")})
		assert.ErrorIs(t, err, core.ErrReadOnly)
		_, err = s.Delete(ctx, n.ID)
		assert.ErrorIs(t, err, core.ErrReadOnly)

		got, found, err := s.GetByID(ctx, n.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "existing", got.Title)
	})
}

func TestStore_YAMLFormat(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "notes.yaml")

	n := core.NewNote("Title: with colon", "multi\nline")
	require.NoError(t, s.Add(ctx, n))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), n.ID)
	assert.Contains(t, string(data), "created_at:")

	reopened, err := NewStore(Config{Path: s.Path})
	require.NoError(t, err)
	notes, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, n.Title, notes[0].Title)
	assert.Equal(t, n.Content, notes[0].Content)
	assert.True(t, n.CreatedAt.Equal(notes[0].CreatedAt))
}

func TestStore_CanceledContext(t *testing.T) {
	s := newTestStore(t, "notes.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_State(t *testing.T) {
	s := newTestStore(t, "notes.json")

	state, ok := s.State().(StoreState)
	require.True(t, ok)
	assert.Equal(t, s.Path, state.Path)
	assert.Equal(t, "json", state.Format)
	assert.True(t, state.Exists)
	assert.Zero(t, state.ActiveWatchers)
	assert.Equal(t, "file-store", s.ComponentType())
}

func BenchmarkStore_Add(b *testing.B) {
	ctx := context.Background()
	s, err := NewStore(Config{Path: filepath.Join(b.TempDir(), "notes.json")})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Add(ctx, core.NewNote("bench", "content")); err != nil {
			b.Fatal(err)
		}
	}
}
