package handler

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
)

// memBackend is an in-memory snapshot backend for handler tests.
type memBackend struct {
	data map[string][]byte
}

func (b *memBackend) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := b.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (b *memBackend) Save(_ context.Context, key string, data []byte) error {
	if b.data == nil {
		b.data = make(map[string][]byte)
	}
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func newTestStore() *store.Store {
	return store.New(&memBackend{}, zap.NewNop())
}

func seedStudent(t *testing.T, st *store.Store, student models.Student) {
	t.Helper()
	err := st.Update(context.Background(), func(s *store.State) error {
		if student.Marks == nil {
			student.Marks = models.Marks{}
		}
		s.Students = append(s.Students, student)
		return nil
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}
}
