package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
)

// memBackend is an in-memory snapshot backend for tests.
type memBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (b *memBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (b *memBackend) Save(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string][]byte)
	}
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func newTestStore() *store.Store {
	return store.New(&memBackend{}, zap.NewNop())
}

// seedClassSubjects assigns the named subjects to a class as mandatory.
func seedClassSubjects(t *testing.T, st *store.Store, class string, subjects ...string) {
	t.Helper()
	err := st.Update(context.Background(), func(s *store.State) error {
		assignments := make([]models.SubjectAssignment, 0, len(subjects))
		for _, name := range subjects {
			assignments = append(assignments, models.SubjectAssignment{Name: name, Type: models.SubjectMandatory})
		}
		s.Master.ClassSubjects[class] = assignments
		return nil
	})
	if err != nil {
		t.Fatalf("seed class subjects: %v", err)
	}
}

// seedExam registers an exam definition under the default term.
func seedExam(t *testing.T, st *store.Store, term, name string, maxMarks int, subjects ...string) {
	t.Helper()
	err := st.Update(context.Background(), func(s *store.State) error {
		s.Master.TermExams[term] = append(s.Master.TermExams[term], models.ExamDefinition{
			Name:     name,
			MaxMarks: maxMarks,
			Subjects: subjects,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seed exam: %v", err)
	}
}

// seedStudent inserts a student directly into the roster.
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
