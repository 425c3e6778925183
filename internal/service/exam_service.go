package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type examState interface {
	Master() models.MasterData
	Update(ctx context.Context, fn func(*store.State) error) error
}

// UpsertExamRequest creates or replaces an exam definition within a term.
// OriginalName identifies the exam being edited; empty means create.
type UpsertExamRequest struct {
	Term         string   `json:"term" validate:"required"`
	OriginalName string   `json:"original_name"`
	Name         string   `json:"name" validate:"required"`
	MaxMarks     int      `json:"max_marks" validate:"required,gt=0"`
	Subjects     []string `json:"subjects"`
}

// AssignAreasToClassRequest assigns co-scholastic areas to a class.
type AssignAreasToClassRequest struct {
	Class string   `json:"class" validate:"required"`
	Areas []string `json:"areas" validate:"required,min=1"`
}

// ExamService is the exam configuration engine: terms, exam definitions and
// co-scholastic area assignments, with the cascade invariants between them.
type ExamService struct {
	state     examState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService constructs an ExamService.
func NewExamService(state examState, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{state: state, validator: validate, logger: logger}
}

// Terms returns the ordered term list.
func (s *ExamService) Terms(_ context.Context) []string {
	return s.state.Master().ExamTerms
}

// TermExams returns the exam definitions of one term.
func (s *ExamService) TermExams(_ context.Context, term string) ([]models.ExamDefinition, error) {
	master := s.state.Master()
	exams, ok := master.TermExams[term]
	if !ok && !contains(master.ExamTerms, term) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	return exams, nil
}

// AddTerm registers a new term with empty exam and area lists.
func (s *ExamService) AddTerm(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "term name required")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		if contains(st.Master.ExamTerms, name) {
			return appErrors.Clone(appErrors.ErrConflict, "term already exists")
		}
		st.Master.ExamTerms = append(st.Master.ExamTerms, name)
		if st.Master.TermExams == nil {
			st.Master.TermExams = map[string][]models.ExamDefinition{}
		}
		st.Master.TermExams[name] = []models.ExamDefinition{}
		if st.Master.TermCoScholasticAreas == nil {
			st.Master.TermCoScholasticAreas = map[string][]string{}
		}
		st.Master.TermCoScholasticAreas[name] = []string{}
		return nil
	})
}

// DeleteTerm removes a term and cascades its exam list and co-scholastic
// mapping in the same mutation. The last remaining term cannot be deleted.
func (s *ExamService) DeleteTerm(ctx context.Context, name string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.ExamTerms, name) {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		if len(st.Master.ExamTerms) <= 1 {
			return appErrors.Clone(appErrors.ErrLastItem, "cannot delete the last term")
		}
		st.Master.ExamTerms = remove(st.Master.ExamTerms, name)
		delete(st.Master.TermExams, name)
		delete(st.Master.TermCoScholasticAreas, name)
		return nil
	})
}

// UpsertExam creates or replaces an exam definition. Subjects are stored
// verbatim; they are validated against class subjects at scheduling time,
// not here.
func (s *ExamService) UpsertExam(ctx context.Context, req UpsertExamRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	req.Name = strings.TrimSpace(req.Name)
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.ExamTerms, req.Term) {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		exams := st.Master.TermExams[req.Term]
		def := models.ExamDefinition{Name: req.Name, MaxMarks: req.MaxMarks, Subjects: req.Subjects}

		if req.OriginalName == "" {
			if findExamIndex(exams, req.Name) >= 0 {
				return appErrors.Clone(appErrors.ErrConflict, "an exam with this name already exists in the term")
			}
			st.Master.TermExams[req.Term] = append(exams, def)
			return nil
		}

		idx := findExamIndex(exams, req.OriginalName)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		if req.Name != req.OriginalName && findExamIndex(exams, req.Name) >= 0 {
			return appErrors.Clone(appErrors.ErrConflict, "an exam with this name already exists in the term")
		}
		exams[idx] = def
		st.Master.TermExams[req.Term] = exams
		return nil
	})
}

// DeleteExam removes one exam definition from a term.
func (s *ExamService) DeleteExam(ctx context.Context, term, name string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		exams := st.Master.TermExams[term]
		idx := findExamIndex(exams, name)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		st.Master.TermExams[term] = append(exams[:idx], exams[idx+1:]...)
		return nil
	})
}

// AssignAreaToTerm adds an area to a term's assignment list. Assigning an
// already assigned area is a no-op.
func (s *ExamService) AssignAreaToTerm(ctx context.Context, term, area string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.ExamTerms, term) {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		if _, ok := st.Master.CoScholasticSubjects[area]; !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "co-scholastic area not found")
		}
		if contains(st.Master.TermCoScholasticAreas[term], area) {
			return nil
		}
		st.Master.TermCoScholasticAreas[term] = append(st.Master.TermCoScholasticAreas[term], area)
		return nil
	})
}

// UnassignAreaFromTerm removes an area from a term's assignment list.
// Removing an unassigned area is a no-op.
func (s *ExamService) UnassignAreaFromTerm(ctx context.Context, term, area string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.ExamTerms, term) {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		st.Master.TermCoScholasticAreas[term] = remove(st.Master.TermCoScholasticAreas[term], area)
		return nil
	})
}

// AddCoScholasticArea registers a new co-scholastic area.
func (s *ExamService) AddCoScholasticArea(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "area name required")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		if _, ok := st.Master.CoScholasticSubjects[name]; ok {
			return appErrors.Clone(appErrors.ErrConflict, "area already exists")
		}
		if st.Master.CoScholasticSubjects == nil {
			st.Master.CoScholasticSubjects = map[string][]string{}
		}
		st.Master.CoScholasticSubjects[name] = []string{}
		return nil
	})
}

// DeleteCoScholasticArea removes an area and cascades it out of every class
// and term assignment list in one mutation. The last area cannot be deleted.
func (s *ExamService) DeleteCoScholasticArea(ctx context.Context, name string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		if _, ok := st.Master.CoScholasticSubjects[name]; !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "co-scholastic area not found")
		}
		if len(st.Master.CoScholasticSubjects) <= 1 {
			return appErrors.Clone(appErrors.ErrLastItem, "cannot delete the last co-scholastic area")
		}
		delete(st.Master.CoScholasticSubjects, name)
		for class, areas := range st.Master.ClassCoScholasticAreas {
			st.Master.ClassCoScholasticAreas[class] = remove(areas, name)
		}
		for term, areas := range st.Master.TermCoScholasticAreas {
			st.Master.TermCoScholasticAreas[term] = remove(areas, name)
		}
		return nil
	})
}

// AddSubjectToArea appends a graded sub-subject to an area.
func (s *ExamService) AddSubjectToArea(ctx context.Context, area, subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return appErrors.Clone(appErrors.ErrValidation, "subject name required")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		subjects, ok := st.Master.CoScholasticSubjects[area]
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "co-scholastic area not found")
		}
		if contains(subjects, subject) {
			return appErrors.Clone(appErrors.ErrConflict, "subject already present in this area")
		}
		st.Master.CoScholasticSubjects[area] = append(subjects, subject)
		return nil
	})
}

// AssignAreasToClass adds the requested areas to a class, skipping areas
// already assigned. Returns the areas actually added; when every requested
// area was a duplicate the call fails with a conflict.
func (s *ExamService) AssignAreasToClass(ctx context.Context, req AssignAreasToClassRequest) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	var added []string
	err := s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.Classes, req.Class) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		for _, area := range req.Areas {
			if _, ok := st.Master.CoScholasticSubjects[area]; !ok {
				return appErrors.Clone(appErrors.ErrNotFound, "co-scholastic area not found: "+area)
			}
		}
		current := st.Master.ClassCoScholasticAreas[req.Class]
		for _, area := range req.Areas {
			if contains(current, area) {
				continue
			}
			current = append(current, area)
			added = append(added, area)
		}
		if len(added) == 0 {
			return appErrors.Clone(appErrors.ErrConflict, "all selected areas are already assigned to this class")
		}
		if st.Master.ClassCoScholasticAreas == nil {
			st.Master.ClassCoScholasticAreas = map[string][]string{}
		}
		st.Master.ClassCoScholasticAreas[req.Class] = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}

func findExamIndex(exams []models.ExamDefinition, name string) int {
	for i := range exams {
		if exams[i].Name == name {
			return i
		}
	}
	return -1
}
