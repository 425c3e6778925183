package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected typed error, got %v", err)
	return appErr.Code
}

func TestExamService_AddTerm(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	require.NoError(t, svc.AddTerm(context.Background(), "Term 2"))

	master := st.Master()
	assert.Equal(t, []string{store.DefaultTerm, "Term 2"}, master.ExamTerms)
	assert.NotNil(t, master.TermExams["Term 2"])
	assert.NotNil(t, master.TermCoScholasticAreas["Term 2"])
}

func TestExamService_AddTermDuplicate(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	err := svc.AddTerm(context.Background(), store.DefaultTerm)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))
}

func TestExamService_DeleteTermCascades(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	require.NoError(t, svc.AddTerm(context.Background(), "Term 2"))
	seedExam(t, st, "Term 2", "Unit Test 1", 20, "English")
	require.NoError(t, svc.AssignAreaToTerm(context.Background(), "Term 2", store.DefaultCoScholasticArea))

	require.NoError(t, svc.DeleteTerm(context.Background(), "Term 2"))

	master := st.Master()
	assert.Equal(t, []string{store.DefaultTerm}, master.ExamTerms)
	_, hasExams := master.TermExams["Term 2"]
	assert.False(t, hasExams)
	_, hasAreas := master.TermCoScholasticAreas["Term 2"]
	assert.False(t, hasAreas)
}

func TestExamService_DeleteLastTerm(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	err := svc.DeleteTerm(context.Background(), store.DefaultTerm)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLastItem.Code, errorCode(t, err))
}

func TestExamService_UpsertExamCreate(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	err := svc.UpsertExam(context.Background(), UpsertExamRequest{
		Term:     store.DefaultTerm,
		Name:     "Half Yearly",
		MaxMarks: 80,
		Subjects: []string{"English", "Mathematics"},
	})
	require.NoError(t, err)

	exams, err := svc.TermExams(context.Background(), store.DefaultTerm)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Half Yearly", exams[0].Name)
	assert.Equal(t, 80, exams[0].MaxMarks)
}

func TestExamService_UpsertExamDuplicateName(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80)

	err := svc.UpsertExam(context.Background(), UpsertExamRequest{
		Term: store.DefaultTerm, Name: "Half Yearly", MaxMarks: 100,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))
}

func TestExamService_UpsertExamRename(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80, "English")

	err := svc.UpsertExam(context.Background(), UpsertExamRequest{
		Term:         store.DefaultTerm,
		OriginalName: "Half Yearly",
		Name:         "Mid Term",
		MaxMarks:     90,
		Subjects:     []string{"English", "Hindi"},
	})
	require.NoError(t, err)

	exams, err := svc.TermExams(context.Background(), store.DefaultTerm)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Mid Term", exams[0].Name)
	assert.Equal(t, 90, exams[0].MaxMarks)
	assert.Equal(t, []string{"English", "Hindi"}, exams[0].Subjects)
}

func TestExamService_UpsertExamRenameCollision(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80)
	seedExam(t, st, store.DefaultTerm, "Finals", 100)

	err := svc.UpsertExam(context.Background(), UpsertExamRequest{
		Term:         store.DefaultTerm,
		OriginalName: "Finals",
		Name:         "Half Yearly",
		MaxMarks:     100,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))
}

func TestExamService_DeleteExam(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80)

	require.NoError(t, svc.DeleteExam(context.Background(), store.DefaultTerm, "Half Yearly"))

	err := svc.DeleteExam(context.Background(), store.DefaultTerm, "Half Yearly")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestExamService_AreaLifecycle(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	require.NoError(t, svc.AddCoScholasticArea(context.Background(), "Discipline"))
	require.NoError(t, svc.AddSubjectToArea(context.Background(), "Discipline", "Punctuality"))

	err := svc.AddSubjectToArea(context.Background(), "Discipline", "Punctuality")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))

	master := st.Master()
	assert.Equal(t, []string{"Punctuality"}, master.CoScholasticSubjects["Discipline"])
}

func TestExamService_DeleteAreaCascades(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	require.NoError(t, svc.AddCoScholasticArea(context.Background(), "Discipline"))
	require.NoError(t, svc.AssignAreaToTerm(context.Background(), store.DefaultTerm, "Discipline"))
	_, err := svc.AssignAreasToClass(context.Background(), AssignAreasToClassRequest{
		Class: "5", Areas: []string{"Discipline"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCoScholasticArea(context.Background(), "Discipline"))

	master := st.Master()
	_, exists := master.CoScholasticSubjects["Discipline"]
	assert.False(t, exists)
	assert.NotContains(t, master.TermCoScholasticAreas[store.DefaultTerm], "Discipline")
	assert.NotContains(t, master.ClassCoScholasticAreas["5"], "Discipline")
}

func TestExamService_DeleteLastArea(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	err := svc.DeleteCoScholasticArea(context.Background(), store.DefaultCoScholasticArea)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLastItem.Code, errorCode(t, err))
}

func TestExamService_AssignAreaToTermIdempotent(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	require.NoError(t, svc.AssignAreaToTerm(context.Background(), store.DefaultTerm, store.DefaultCoScholasticArea))
	require.NoError(t, svc.AssignAreaToTerm(context.Background(), store.DefaultTerm, store.DefaultCoScholasticArea))

	assert.Equal(t, []string{store.DefaultCoScholasticArea}, st.Master().TermCoScholasticAreas[store.DefaultTerm])

	require.NoError(t, svc.UnassignAreaFromTerm(context.Background(), store.DefaultTerm, store.DefaultCoScholasticArea))
	assert.Empty(t, st.Master().TermCoScholasticAreas[store.DefaultTerm])
}

func TestExamService_AssignAreasToClassSkipsDuplicates(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())
	require.NoError(t, svc.AddCoScholasticArea(context.Background(), "Discipline"))

	added, err := svc.AssignAreasToClass(context.Background(), AssignAreasToClassRequest{
		Class: "5", Areas: []string{store.DefaultCoScholasticArea},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{store.DefaultCoScholasticArea}, added)

	added, err = svc.AssignAreasToClass(context.Background(), AssignAreasToClassRequest{
		Class: "5", Areas: []string{store.DefaultCoScholasticArea, "Discipline"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Discipline"}, added)
}

func TestExamService_AssignAreasToClassAllDuplicates(t *testing.T) {
	st := newTestStore()
	svc := NewExamService(st, nil, zap.NewNop())

	_, err := svc.AssignAreasToClass(context.Background(), AssignAreasToClassRequest{
		Class: "5", Areas: []string{store.DefaultCoScholasticArea},
	})
	require.NoError(t, err)

	_, err = svc.AssignAreasToClass(context.Background(), AssignAreasToClassRequest{
		Class: "5", Areas: []string{store.DefaultCoScholasticArea},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))
}
