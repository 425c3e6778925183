package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

func marksFixture(t *testing.T) (*MarksService, *store.Store) {
	t.Helper()
	st := newTestStore()
	seedClassSubjects(t, st, "5", "English", "Mathematics")
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80, "English", "Mathematics")
	seedStudent(t, st, models.Student{ID: "ADM-1", FirstName: "Aarav", Class: "5", Section: "A", RollNo: "1"})
	seedStudent(t, st, models.Student{ID: "ADM-2", FirstName: "Diya", Class: "5", Section: "B", RollNo: "2"})
	return NewMarksService(st, nil, zap.NewNop()), st
}

func TestMarksService_SetScore(t *testing.T) {
	svc, st := marksFixture(t)

	result, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "72",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warning)

	students := st.Students()
	assert.Equal(t, "72", students[0].Marks.Score(store.DefaultTerm, "Half Yearly", "English"))
}

func TestMarksService_SetScoreLastWriteWins(t *testing.T) {
	svc, st := marksFixture(t)

	for _, value := range []string{"60", "65"} {
		_, err := svc.SetScore(context.Background(), SetScoreRequest{
			StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: value,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, "65", st.Students()[0].Marks.Score(store.DefaultTerm, "Half Yearly", "English"))
}

func TestMarksService_SetScoreOverMaxWarns(t *testing.T) {
	svc, st := marksFixture(t)

	result, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "95",
	})
	require.NoError(t, err)
	assert.Equal(t, "score 95 exceeds maximum marks 80", result.Warning)

	// The warning is advisory; the value is stored as sent.
	assert.Equal(t, "95", st.Students()[0].Marks.Score(store.DefaultTerm, "Half Yearly", "English"))
}

func TestMarksService_SetScoreNonNumericValue(t *testing.T) {
	svc, st := marksFixture(t)

	result, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "AB",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "AB", st.Students()[0].Marks.Score(store.DefaultTerm, "Half Yearly", "English"))
}

func TestMarksService_SetScoreUnknownStudent(t *testing.T) {
	svc, _ := marksFixture(t)

	_, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-9", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "50",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestMarksService_Scores(t *testing.T) {
	svc, _ := marksFixture(t)

	_, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "72",
	})
	require.NoError(t, err)

	scores, err := svc.Scores(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)
	assert.Equal(t, "72", scores["Half Yearly"]["English"])

	empty, err := svc.Scores(context.Background(), "ADM-2", store.DefaultTerm)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarksService_Grid(t *testing.T) {
	svc, _ := marksFixture(t)

	_, err := svc.SetScore(context.Background(), SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "72",
	})
	require.NoError(t, err)

	grid, err := svc.Grid(context.Background(), "5", "", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)

	assert.Equal(t, []string{"English", "Mathematics"}, grid.Subjects)
	assert.Equal(t, 80, grid.MaxMarks)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "72", grid.Rows[0].Scores["English"])
	assert.Equal(t, "", grid.Rows[0].Scores["Mathematics"])
	assert.Equal(t, "Aarav", grid.Rows[0].StudentName)
}

func TestMarksService_GridSectionFilter(t *testing.T) {
	svc, _ := marksFixture(t)

	grid, err := svc.Grid(context.Background(), "5", "B", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, "ADM-2", grid.Rows[0].StudentID)
}

func TestMarksService_GridUnknownExam(t *testing.T) {
	svc, _ := marksFixture(t)

	_, err := svc.Grid(context.Background(), "5", "", store.DefaultTerm, "Finals")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}
