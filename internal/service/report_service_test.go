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

func TestCalculateGrade(t *testing.T) {
	cases := []struct {
		percentage float64
		grade      string
	}{
		{100, "A1"},
		{91, "A1"},
		{90.9, "A2"},
		{81, "A2"},
		{80, "B1"},
		{71, "B1"},
		{61, "B2"},
		{51, "C1"},
		{41, "C2"},
		{33, "D"},
		{32.9, "E"},
		{0, "E"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, CalculateGrade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func reportFixture(t *testing.T) (*ReportService, *store.Store) {
	t.Helper()
	st := newTestStore()
	seedClassSubjects(t, st, "5", "English", "Mathematics")
	seedExam(t, st, store.DefaultTerm, "Unit Test", 20, "English")
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80, "English", "Mathematics")
	seedStudent(t, st, models.Student{
		ID: "ADM-1", FirstName: "Aarav", LastName: "Sharma",
		Class: "5", Section: "A", RollNo: "1", DOB: "2014-02-14",
	})
	return NewReportService(st, nil, nil, zap.NewNop()), st
}

func setScore(t *testing.T, st *store.Store, id, exam, subject, value string) {
	t.Helper()
	err := st.Update(context.Background(), func(s *store.State) error {
		idx := findStudentIndex(s.Students, id)
		require.GreaterOrEqual(t, idx, 0)
		if s.Students[idx].Marks == nil {
			s.Students[idx].Marks = models.Marks{}
		}
		s.Students[idx].Marks.SetScore(store.DefaultTerm, exam, subject, value)
		return nil
	})
	require.NoError(t, err)
}

func TestReportService_BuildReportCard(t *testing.T) {
	svc, st := reportFixture(t)
	setScore(t, st, "ADM-1", "Unit Test", "English", "18")
	setScore(t, st, "ADM-1", "Half Yearly", "English", "72")
	setScore(t, st, "ADM-1", "Half Yearly", "Mathematics", "64")

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)

	assert.Equal(t, "Aarav Sharma", card.StudentName)
	require.Len(t, card.Subjects, 2)

	english := card.Subjects[0]
	assert.Equal(t, "English", english.Subject)
	require.Len(t, english.Cells, 2)
	assert.True(t, english.Cells[0].Applicable)
	assert.Equal(t, "18", english.Cells[0].Score)
	assert.Equal(t, float64(90), english.ObtainedTotal)
	assert.Equal(t, 100, english.MaxTotal)

	maths := card.Subjects[1]
	// Mathematics is not on the Unit Test; that cell stays non-applicable.
	assert.False(t, maths.Cells[0].Applicable)
	assert.Equal(t, float64(64), maths.ObtainedTotal)
	assert.Equal(t, 80, maths.MaxTotal)

	assert.Equal(t, float64(154), card.GrandObtained)
	assert.Equal(t, 180, card.GrandMax)
	assert.InDelta(t, 85.56, card.Percentage, 0.01)
	assert.Equal(t, "A2", card.Grade)
}

func TestReportService_BuildReportCardEmptyScoresExcludedFromMax(t *testing.T) {
	svc, st := reportFixture(t)
	// Only the Unit Test has a score; the Half Yearly cells stay empty and
	// must not inflate the maximum.
	setScore(t, st, "ADM-1", "Unit Test", "English", "18")

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)

	assert.Equal(t, 20, card.GrandMax)
	assert.Equal(t, float64(18), card.GrandObtained)
	assert.InDelta(t, 90.0, card.Percentage, 0.01)
}

func TestReportService_BuildReportCardOverMaxFlag(t *testing.T) {
	svc, st := reportFixture(t)
	setScore(t, st, "ADM-1", "Unit Test", "English", "25")

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)
	assert.True(t, card.Subjects[0].Cells[0].OverMax)
}

func TestReportService_BuildReportCardNoScores(t *testing.T) {
	svc, _ := reportFixture(t)

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)
	assert.Equal(t, 0, card.GrandMax)
	assert.Equal(t, float64(0), card.Percentage)
	assert.Equal(t, "E", card.Grade)
}

func TestReportService_BuildReportCardCoScholasticPlaceholders(t *testing.T) {
	svc, st := reportFixture(t)
	err := st.Update(context.Background(), func(s *store.State) error {
		s.Master.TermCoScholasticAreas[store.DefaultTerm] = []string{store.DefaultCoScholasticArea}
		s.Master.ClassCoScholasticAreas = map[string][]string{"5": {store.DefaultCoScholasticArea}}
		return nil
	})
	require.NoError(t, err)

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)

	require.Len(t, card.CoScholastic, 1)
	row := card.CoScholastic[0]
	assert.Equal(t, store.DefaultCoScholasticArea, row.Area)
	assert.Equal(t, "A", row.Grade)
	assert.True(t, row.Placeholder)
	assert.NotEmpty(t, row.Subjects)
}

func TestReportService_BuildReportCardAreaNeedsClassAndTerm(t *testing.T) {
	svc, st := reportFixture(t)
	// Assigned to the term only; the class never opted in.
	err := st.Update(context.Background(), func(s *store.State) error {
		s.Master.TermCoScholasticAreas[store.DefaultTerm] = []string{store.DefaultCoScholasticArea}
		return nil
	})
	require.NoError(t, err)

	card, err := svc.BuildReportCard(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)
	assert.Empty(t, card.CoScholastic)
}

func TestReportService_BuildReportCardUnknownTerm(t *testing.T) {
	svc, _ := reportFixture(t)

	_, err := svc.BuildReportCard(context.Background(), "ADM-1", "Term 9")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func seedSchedule(t *testing.T, st *store.Store, class, term, exam string, entries ...models.ScheduleEntry) {
	t.Helper()
	err := st.Update(context.Background(), func(s *store.State) error {
		s.Master.ExamSchedules = append(s.Master.ExamSchedules, models.ClassExamSchedule{
			ID: "sched-1", ClassName: class, Term: term, ExamName: exam, Entries: entries,
		})
		return nil
	})
	require.NoError(t, err)
}

func TestReportService_BuildAdmitCardsSortsByDate(t *testing.T) {
	svc, st := reportFixture(t)
	seedStudent(t, st, models.Student{ID: "ADM-2", FirstName: "Diya", Class: "5"})
	seedSchedule(t, st, "5", store.DefaultTerm, "Half Yearly",
		models.ScheduleEntry{Subject: "Mathematics", Date: "2025-09-12"},
		models.ScheduleEntry{Subject: "English", Date: "2025-09-10"},
	)

	cards, err := svc.BuildAdmitCards(context.Background(), AdmitCardsRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
	})
	require.NoError(t, err)

	// Empty StudentIDs selects the whole class.
	require.Len(t, cards, 2)
	require.Len(t, cards[0].Entries, 2)
	assert.Equal(t, "English", cards[0].Entries[0].Subject)
	assert.Equal(t, "Mathematics", cards[0].Entries[1].Subject)
	assert.NotEmpty(t, cards[0].Note)
}

func TestReportService_BuildAdmitCardsSelectedStudents(t *testing.T) {
	svc, st := reportFixture(t)
	seedStudent(t, st, models.Student{ID: "ADM-2", FirstName: "Diya", Class: "5"})
	seedSchedule(t, st, "5", store.DefaultTerm, "Half Yearly",
		models.ScheduleEntry{Subject: "English", Date: "2025-09-10"},
	)

	cards, err := svc.BuildAdmitCards(context.Background(), AdmitCardsRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		StudentIDs: []string{"ADM-2"},
	})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "ADM-2", cards[0].StudentID)
}

func TestReportService_BuildAdmitCardsNoSchedule(t *testing.T) {
	svc, _ := reportFixture(t)

	_, err := svc.BuildAdmitCards(context.Background(), AdmitCardsRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestReportService_BuildAdmitCardsNoMatchingStudents(t *testing.T) {
	svc, st := reportFixture(t)
	seedSchedule(t, st, "5", store.DefaultTerm, "Half Yearly",
		models.ScheduleEntry{Subject: "English", Date: "2025-09-10"},
	)

	_, err := svc.BuildAdmitCards(context.Background(), AdmitCardsRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		StudentIDs: []string{"ADM-404"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestReportService_ReportCardPDF(t *testing.T) {
	svc, st := reportFixture(t)
	setScore(t, st, "ADM-1", "Half Yearly", "English", "72")

	data, err := svc.ReportCardPDF(context.Background(), "ADM-1", store.DefaultTerm)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportService_AdmitCardsPDF(t *testing.T) {
	svc, st := reportFixture(t)
	seedSchedule(t, st, "5", store.DefaultTerm, "Half Yearly",
		models.ScheduleEntry{Subject: "English", Date: "2025-09-10", StartTime: "09:00", EndTime: "12:00"},
	)

	data, err := svc.AdmitCardsPDF(context.Background(), AdmitCardsRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Fields: models.AdmitCardFields{ShowSection: true, ShowRollNo: true, ShowDOB: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportService_ClassMarksCSV(t *testing.T) {
	svc, st := reportFixture(t)
	setScore(t, st, "ADM-1", "Half Yearly", "English", "72")

	data, err := svc.ClassMarksCSV(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "AdmissionNo,Name,RollNo,English,Mathematics")
	assert.Contains(t, out, "ADM-1,Aarav Sharma,1,72,")
}

func TestReportService_ClassMarksPDF(t *testing.T) {
	svc, st := reportFixture(t)
	setScore(t, st, "ADM-1", "Half Yearly", "English", "72")

	data, err := svc.ClassMarksPDF(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportService_ClassMarksPDFUnknownExam(t *testing.T) {
	svc, _ := reportFixture(t)

	_, err := svc.ClassMarksPDF(context.Background(), "5", store.DefaultTerm, "Annual")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}
