package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
)

type fakeBackend struct {
	data    map[string][]byte
	saves   []string
	loadErr error
	saveErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string][]byte{}}
}

func (b *fakeBackend) Load(_ context.Context, key string) ([]byte, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	data, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (b *fakeBackend) Save(_ context.Context, key string, data []byte) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.saves = append(b.saves, key)
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func TestStore_LoadMissingKeepsDefaults(t *testing.T) {
	st := New(newFakeBackend(), zap.NewNop())
	st.Load(context.Background())

	master := st.Master()
	assert.Equal(t, []string{DefaultTerm}, master.ExamTerms)
	assert.NotEmpty(t, master.Classes)
	require.Len(t, st.Sessions(), 1)
	assert.True(t, st.Sessions()[0].IsCurrent)
}

func TestStore_LoadCorruptBlobKeepsDefaults(t *testing.T) {
	backend := newFakeBackend()
	backend.data[KeySettings] = []byte("{not json")
	st := New(backend, zap.NewNop())
	st.Load(context.Background())

	assert.Equal(t, models.IDTypeNumeric, st.Settings().IDType)
}

func TestStore_LoadBackendErrorKeepsDefaults(t *testing.T) {
	backend := newFakeBackend()
	backend.loadErr = errors.New("backend down")
	st := New(backend, zap.NewNop())
	st.Load(context.Background())

	assert.NotEmpty(t, st.Master().Classes)
}

func TestStore_LoadAppliesPersistedBlobs(t *testing.T) {
	backend := newFakeBackend()
	students := []models.Student{{ID: "ADM-1", FirstName: "Aarav", Class: "5"}}
	data, err := json.Marshal(students)
	require.NoError(t, err)
	backend.data[KeyStudents] = data

	st := New(backend, zap.NewNop())
	st.Load(context.Background())

	loaded := st.Students()
	require.Len(t, loaded, 1)
	assert.Equal(t, "ADM-1", loaded[0].ID)
}

func TestStore_UpdateFlushesOnlyChangedBlobs(t *testing.T) {
	backend := newFakeBackend()
	st := New(backend, zap.NewNop())

	err := st.Update(context.Background(), func(s *State) error {
		s.Students = append(s.Students, models.Student{ID: "ADM-1", FirstName: "Aarav", Class: "5"})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{KeyStudents}, backend.saves)
}

func TestStore_UpdateMutatorErrorLeavesStateUntouched(t *testing.T) {
	backend := newFakeBackend()
	st := New(backend, zap.NewNop())
	boom := errors.New("boom")

	err := st.Update(context.Background(), func(s *State) error {
		s.Students = append(s.Students, models.Student{ID: "ADM-1"})
		s.Master.ExamTerms = nil
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Empty(t, st.Students())
	assert.Equal(t, []string{DefaultTerm}, st.Master().ExamTerms)
	assert.Empty(t, backend.saves)
}

func TestStore_UpdateFlushFailureKeepsMutation(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = errors.New("disk full")
	st := New(backend, zap.NewNop())

	err := st.Update(context.Background(), func(s *State) error {
		s.Students = append(s.Students, models.Student{ID: "ADM-1"})
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, st.Students(), 1)
}

func TestStore_UpdateCascadeFlushesEveryChangedBlob(t *testing.T) {
	backend := newFakeBackend()
	st := New(backend, zap.NewNop())

	err := st.Update(context.Background(), func(s *State) error {
		s.Students = append(s.Students, models.Student{ID: "ADM-1"})
		s.Settings.IDStartNumber++
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyStudents, KeySettings}, backend.saves)
}

func TestStore_ResetFlushesAllSnapshots(t *testing.T) {
	backend := newFakeBackend()
	st := New(backend, zap.NewNop())

	err := st.Update(context.Background(), func(s *State) error {
		s.Students = append(s.Students, models.Student{ID: "ADM-1"})
		return nil
	})
	require.NoError(t, err)

	backend.saves = nil
	require.NoError(t, st.Reset(context.Background()))

	assert.Empty(t, st.Students())
	assert.ElementsMatch(t,
		[]string{KeyMasterData, KeyStudents, KeySessions, KeySettings, KeyProfile},
		backend.saves)
}

func TestStore_FlushObserver(t *testing.T) {
	backend := newFakeBackend()
	st := New(backend, zap.NewNop())

	var observed []string
	st.SetFlushObserver(func(key string, _ time.Duration) {
		observed = append(observed, key)
	})

	err := st.Update(context.Background(), func(s *State) error {
		s.Settings.IDStartNumber++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{KeySettings}, observed)
}

func TestStore_FlushObserverSkippedOnSaveFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = errors.New("disk full")
	st := New(backend, zap.NewNop())

	var calls int
	st.SetFlushObserver(func(string, time.Duration) { calls++ })

	err := st.Update(context.Background(), func(s *State) error {
		s.Settings.IDStartNumber++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestStore_AccessorsReturnDeepCopies(t *testing.T) {
	st := New(newFakeBackend(), zap.NewNop())

	master := st.Master()
	master.Classes[0] = "tampered"
	assert.NotEqual(t, "tampered", st.Master().Classes[0])
}
