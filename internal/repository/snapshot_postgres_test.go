package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikshahq/school-console-api/internal/store"
)

func newSnapshotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPostgresSnapshotRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	rows := sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"classes":["5"]}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM snapshots WHERE key = $1")).
		WithArgs(store.KeyMasterData).
		WillReturnRows(rows)

	data, err := repo.Load(context.Background(), store.KeyMasterData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"classes":["5"]}`, string(data))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoadMissing(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM snapshots WHERE key = $1")).
		WithArgs(store.KeyStudents).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := repo.Load(context.Background(), store.KeyStudents)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoadQueryError(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM snapshots WHERE key = $1")).
		WithArgs(store.KeyStudents).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background(), store.KeyStudents)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositorySave(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs(store.KeySettings, []byte(`{"id_prefix":"ADM"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), store.KeySettings, []byte(`{"id_prefix":"ADM"}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
