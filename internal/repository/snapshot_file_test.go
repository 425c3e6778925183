package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikshahq/school-console-api/internal/store"
	"github.com/shikshahq/school-console-api/pkg/storage"
)

func newFileSnapshotRepo(t *testing.T) (*FileSnapshotRepository, string) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewFileSnapshotRepository(files), dir
}

func TestFileSnapshotRepositoryRoundTrip(t *testing.T) {
	repo, dir := newFileSnapshotRepo(t)

	require.NoError(t, repo.Save(context.Background(), store.KeySettings, []byte(`{"id_prefix":"ADM"}`)))

	data, err := repo.Load(context.Background(), store.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_prefix":"ADM"}`, string(data))

	// One file per key, named after it.
	_, err = os.Stat(filepath.Join(dir, store.KeySettings+".json"))
	require.NoError(t, err)
}

func TestFileSnapshotRepositoryLoadMissing(t *testing.T) {
	repo, _ := newFileSnapshotRepo(t)

	_, err := repo.Load(context.Background(), store.KeyStudents)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileSnapshotRepositorySaveOverwrites(t *testing.T) {
	repo, _ := newFileSnapshotRepo(t)

	require.NoError(t, repo.Save(context.Background(), store.KeyStudents, []byte(`[]`)))
	require.NoError(t, repo.Save(context.Background(), store.KeyStudents, []byte(`[{"id":"ADM-1"}]`)))

	data, err := repo.Load(context.Background(), store.KeyStudents)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ADM-1")
}
