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

func scheduleFixture(t *testing.T) (*ScheduleService, *store.Store) {
	t.Helper()
	st := newTestStore()
	seedClassSubjects(t, st, "5", "English", "Hindi", "Mathematics")
	seedExam(t, st, store.DefaultTerm, "Half Yearly", 80, "English", "Mathematics", "Sanskrit")
	return NewScheduleService(st, nil, zap.NewNop()), st
}

func TestScheduleService_ApplicableSubjects(t *testing.T) {
	svc, _ := scheduleFixture(t)

	subjects, err := svc.ApplicableSubjects(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	// Sanskrit is on the exam but not assigned to the class.
	assert.Equal(t, []string{"English", "Mathematics"}, subjects)

	again, err := svc.ApplicableSubjects(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	assert.Equal(t, subjects, again)
}

func TestScheduleService_ApplicableSubjectsUnknownExam(t *testing.T) {
	svc, _ := scheduleFixture(t)

	_, err := svc.ApplicableSubjects(context.Background(), "5", store.DefaultTerm, "Finals")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestScheduleService_BuildDraftNew(t *testing.T) {
	svc, _ := scheduleFixture(t)

	draft, err := svc.BuildDraft(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	assert.Equal(t, DraftStateNew, draft.State)
	assert.Empty(t, draft.ScheduleID)
	require.Len(t, draft.Entries, 2)
	assert.Equal(t, "English", draft.Entries[0].Subject)
	assert.Empty(t, draft.Entries[0].Date)
}

func TestScheduleService_BuildDraftEditingPrefillsStoredRows(t *testing.T) {
	svc, _ := scheduleFixture(t)

	saved, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{
			{Subject: "English", Date: "2025-09-10", StartTime: "09:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)

	draft, err := svc.BuildDraft(context.Background(), "5", store.DefaultTerm, "Half Yearly")
	require.NoError(t, err)
	assert.Equal(t, DraftStateEditing, draft.State)
	assert.Equal(t, saved.ID, draft.ScheduleID)
	require.Len(t, draft.Entries, 2)
	assert.Equal(t, "2025-09-10", draft.Entries[0].Date)
	// Mathematics had no stored row; it comes back as an empty entry.
	assert.Equal(t, "Mathematics", draft.Entries[1].Subject)
	assert.Empty(t, draft.Entries[1].Date)
}

func TestScheduleService_SaveDropsUndatedRows(t *testing.T) {
	svc, st := scheduleFixture(t)

	saved, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{
			{Subject: "English", Date: "2025-09-10"},
			{Subject: "Mathematics"},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved.Entries, 1)
	assert.Equal(t, "English", saved.Entries[0].Subject)

	stored := st.Master().ExamSchedules
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Entries, 1)
}

func TestScheduleService_SaveRejectsZeroDatedRows(t *testing.T) {
	svc, _ := scheduleFixture(t)

	_, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{
			{Subject: "English"},
			{Subject: "Mathematics"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, err))
}

func TestScheduleService_SaveRejectsNonApplicableSubject(t *testing.T) {
	svc, _ := scheduleFixture(t)

	_, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{
			{Subject: "Sanskrit", Date: "2025-09-10"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sanskrit")
}

func TestScheduleService_SaveReplacesExistingSchedule(t *testing.T) {
	svc, st := scheduleFixture(t)

	first, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{{Subject: "English", Date: "2025-09-10"}},
	})
	require.NoError(t, err)

	second, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{{Subject: "Mathematics", Date: "2025-09-12"}},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	stored := st.Master().ExamSchedules
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Entries, 1)
	assert.Equal(t, "Mathematics", stored[0].Entries[0].Subject)
}

func TestScheduleService_DeleteSchedule(t *testing.T) {
	svc, st := scheduleFixture(t)

	saved, err := svc.SaveSchedule(context.Background(), SaveScheduleRequest{
		Class: "5", Term: store.DefaultTerm, Exam: "Half Yearly",
		Entries: []models.ScheduleEntry{{Subject: "English", Date: "2025-09-10"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSchedule(context.Background(), saved.ID))
	assert.Empty(t, st.Master().ExamSchedules)

	err = svc.DeleteSchedule(context.Background(), saved.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestCopyTimesToAll(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Subject: "English", Date: "2025-09-10", StartTime: "09:00", EndTime: "12:00"},
		{Subject: "Hindi", Date: "2025-09-11"},
		{Subject: "Mathematics"},
	}
	out := CopyTimesToAll(entries)

	require.Len(t, out, 3)
	for _, entry := range out {
		assert.Equal(t, "09:00", entry.StartTime)
		assert.Equal(t, "12:00", entry.EndTime)
	}
	// Dates and the input slice stay untouched.
	assert.Equal(t, "2025-09-11", out[1].Date)
	assert.Empty(t, entries[1].StartTime)
}

func TestCopyTimesToAllEmpty(t *testing.T) {
	assert.Empty(t, CopyTimesToAll(nil))
}
