package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type marksState interface {
	Master() models.MasterData
	Students() []models.Student
	Update(ctx context.Context, fn func(*store.State) error) error
}

// SetScoreRequest writes one marks cell.
type SetScoreRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Term      string `json:"term" validate:"required"`
	Exam      string `json:"exam" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Value     string `json:"value"`
}

// SetScoreResult reports a successful write plus any display-only warning.
type SetScoreResult struct {
	Warning string `json:"warning,omitempty"`
}

// MarksGridRow is one student's row in the marks-entry grid.
type MarksGridRow struct {
	StudentID   string            `json:"student_id"`
	StudentName string            `json:"student_name"`
	RollNo      string            `json:"roll_no,omitempty"`
	Scores      map[string]string `json:"scores"`
}

// MarksGrid is the entry grid for one (class, section, term, exam) scope.
type MarksGrid struct {
	Subjects []string       `json:"subjects"`
	MaxMarks int            `json:"max_marks"`
	Rows     []MarksGridRow `json:"rows"`
}

// MarksService maintains the sparse score ledger. Scores are raw strings;
// numeric validity is a rendering concern, never a save blocker.
type MarksService struct {
	state     marksState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarksService constructs a MarksService.
func NewMarksService(state marksState, validate *validator.Validate, logger *zap.Logger) *MarksService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarksService{state: state, validator: validate, logger: logger}
}

// SetScore mutates exactly one ledger cell, creating intermediate maps on
// demand. Last write wins. A value above the exam maximum produces a warning
// on the result, not an error.
func (s *MarksService) SetScore(ctx context.Context, req SetScoreRequest) (*SetScoreResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score payload")
	}

	result := &SetScoreResult{}
	err := s.state.Update(ctx, func(st *store.State) error {
		idx := findStudentIndex(st.Students, req.StudentID)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		student := &st.Students[idx]
		if student.Marks == nil {
			student.Marks = models.Marks{}
		}
		student.Marks.SetScore(req.Term, req.Exam, req.Subject, req.Value)

		if def := st.Master.FindExam(req.Term, req.Exam); def != nil {
			if score, err := strconv.ParseFloat(req.Value, 64); err == nil && score > float64(def.MaxMarks) {
				result.Warning = fmt.Sprintf("score %s exceeds maximum marks %d", req.Value, def.MaxMarks)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Scores returns a student's ledger slice for one term.
func (s *MarksService) Scores(_ context.Context, studentID, term string) (map[string]map[string]string, error) {
	students := s.state.Students()
	idx := findStudentIndex(students, studentID)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	scores := students[idx].Marks[term]
	if scores == nil {
		scores = map[string]map[string]string{}
	}
	return scores, nil
}

// Grid assembles the marks-entry grid for one class/section and exam: one
// row per student, one column per applicable subject.
func (s *MarksService) Grid(_ context.Context, class, section, term, exam string) (*MarksGrid, error) {
	master := s.state.Master()
	def := master.FindExam(term, exam)
	if def == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	subjects, err := applicableSubjects(&master, class, term, exam)
	if err != nil {
		return nil, err
	}

	grid := &MarksGrid{Subjects: subjects, MaxMarks: def.MaxMarks}
	for _, student := range s.state.Students() {
		if student.Class != class {
			continue
		}
		if section != "" && student.Section != section {
			continue
		}
		row := MarksGridRow{
			StudentID:   student.ID,
			StudentName: student.FullName(),
			RollNo:      student.RollNo,
			Scores:      make(map[string]string, len(subjects)),
		}
		for _, subject := range subjects {
			row.Scores[subject] = student.Marks.Score(term, exam, subject)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func findStudentIndex(students []models.Student, id string) int {
	for i := range students {
		if students[i].ID == id {
			return i
		}
	}
	return -1
}
