package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type scheduleState interface {
	Master() models.MasterData
	Update(ctx context.Context, fn func(*store.State) error) error
}

// Draft states for the scheduling screen.
const (
	DraftStateNew     = "new"
	DraftStateEditing = "editing"
)

// ScheduleDraft is the editable timetable for one (class, term, exam)
// selection: prefilled from the stored schedule when one exists, otherwise
// one empty row per applicable subject.
type ScheduleDraft struct {
	State      string                 `json:"state"`
	ScheduleID string                 `json:"schedule_id,omitempty"`
	Entries    []models.ScheduleEntry `json:"entries"`
}

// SaveScheduleRequest persists a timetable for one triple.
type SaveScheduleRequest struct {
	Class   string                 `json:"class" validate:"required"`
	Term    string                 `json:"term" validate:"required"`
	Exam    string                 `json:"exam" validate:"required"`
	Entries []models.ScheduleEntry `json:"entries" validate:"required"`
}

// ScheduleService assigns dates and time windows to the subjects of an exam
// within one class.
type ScheduleService struct {
	state     scheduleState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(state scheduleState, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{state: state, validator: validate, logger: logger}
}

// ApplicableSubjects is the intersection of the exam's subject list and the
// class's subject assignment, ordered by the exam definition's array order.
func (s *ScheduleService) ApplicableSubjects(_ context.Context, class, term, exam string) ([]string, error) {
	master := s.state.Master()
	return applicableSubjects(&master, class, term, exam)
}

func applicableSubjects(master *models.MasterData, class, term, exam string) ([]string, error) {
	def := master.FindExam(term, exam)
	if def == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	classSubjects := make(map[string]bool)
	for _, assignment := range master.ClassSubjects[class] {
		classSubjects[assignment.Name] = true
	}
	subjects := make([]string, 0, len(def.Subjects))
	for _, subject := range def.Subjects {
		if classSubjects[subject] {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

// Schedules lists every stored schedule.
func (s *ScheduleService) Schedules(_ context.Context) []models.ClassExamSchedule {
	return s.state.Master().ExamSchedules
}

// BuildDraft resolves the editing state for a (class, term, exam) selection.
func (s *ScheduleService) BuildDraft(_ context.Context, class, term, exam string) (*ScheduleDraft, error) {
	master := s.state.Master()
	subjects, err := applicableSubjects(&master, class, term, exam)
	if err != nil {
		return nil, err
	}

	if existing := master.FindSchedule(class, term, exam); existing != nil {
		stored := make(map[string]models.ScheduleEntry, len(existing.Entries))
		for _, entry := range existing.Entries {
			stored[entry.Subject] = entry
		}
		entries := make([]models.ScheduleEntry, 0, len(subjects))
		for _, subject := range subjects {
			if entry, ok := stored[subject]; ok {
				entries = append(entries, entry)
			} else {
				entries = append(entries, models.ScheduleEntry{Subject: subject})
			}
		}
		return &ScheduleDraft{State: DraftStateEditing, ScheduleID: existing.ID, Entries: entries}, nil
	}

	entries := make([]models.ScheduleEntry, 0, len(subjects))
	for _, subject := range subjects {
		entries = append(entries, models.ScheduleEntry{Subject: subject})
	}
	return &ScheduleDraft{State: DraftStateNew, Entries: entries}, nil
}

// CopyTimesToAll copies the first row's time window onto every row. Pure
// convenience for the entry grid; nothing is persisted here.
func CopyTimesToAll(entries []models.ScheduleEntry) []models.ScheduleEntry {
	if len(entries) == 0 {
		return entries
	}
	out := make([]models.ScheduleEntry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].StartTime = entries[0].StartTime
		out[i].EndTime = entries[0].EndTime
	}
	return out
}

// SaveSchedule upserts the schedule for a triple. Rows without a date are
// dropped, not stored empty; a save with zero dated rows is rejected.
func (s *ScheduleService) SaveSchedule(ctx context.Context, req SaveScheduleRequest) (*models.ClassExamSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	var saved models.ClassExamSchedule
	err := s.state.Update(ctx, func(st *store.State) error {
		subjects, err := applicableSubjects(&st.Master, req.Class, req.Term, req.Exam)
		if err != nil {
			return err
		}
		applicable := make(map[string]bool, len(subjects))
		for _, subject := range subjects {
			applicable[subject] = true
		}

		dated := make([]models.ScheduleEntry, 0, len(req.Entries))
		for _, entry := range req.Entries {
			if entry.Date == "" {
				continue
			}
			if !applicable[entry.Subject] {
				return appErrors.Clone(appErrors.ErrValidation, "subject not applicable for this exam: "+entry.Subject)
			}
			dated = append(dated, entry)
		}
		if len(dated) == 0 {
			return appErrors.Clone(appErrors.ErrValidation, "at least one subject must have a date")
		}

		if existing := st.Master.FindSchedule(req.Class, req.Term, req.Exam); existing != nil {
			existing.Entries = dated
			saved = *existing
			return nil
		}
		schedule := models.ClassExamSchedule{
			ID:        uuid.NewString(),
			ClassName: req.Class,
			Term:      req.Term,
			ExamName:  req.Exam,
			Entries:   dated,
		}
		st.Master.ExamSchedules = append(st.Master.ExamSchedules, schedule)
		saved = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteSchedule removes a stored schedule by its ID.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		for i := range st.Master.ExamSchedules {
			if st.Master.ExamSchedules[i].ID == id {
				st.Master.ExamSchedules = append(st.Master.ExamSchedules[:i], st.Master.ExamSchedules[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	})
}
