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

type masterState interface {
	Master() models.MasterData
	Update(ctx context.Context, fn func(*store.State) error) error
}

// SetClassSubjectsRequest replaces a class's subject assignment.
type SetClassSubjectsRequest struct {
	Class    string                     `json:"class" validate:"required"`
	Subjects []models.SubjectAssignment `json:"subjects" validate:"dive"`
}

// SetClassSectionsRequest replaces a class's section list.
type SetClassSectionsRequest struct {
	Class    string   `json:"class" validate:"required"`
	Sections []string `json:"sections"`
}

// MasterService manages the master-data string pools and per-class subject
// and section assignments.
type MasterService struct {
	state     masterState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMasterService constructs a MasterService.
func NewMasterService(state masterState, validate *validator.Validate, logger *zap.Logger) *MasterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MasterService{state: state, validator: validate, logger: logger}
}

// Snapshot returns the full master-data view.
func (s *MasterService) Snapshot(_ context.Context) models.MasterData {
	return s.state.Master()
}

// Items returns one pool.
func (s *MasterService) Items(_ context.Context, kind models.ListKind) ([]string, error) {
	master := s.state.Master()
	items, ok := master.List(kind)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown list kind")
	}
	return items, nil
}

// AddItem appends a value to a pool, rejecting duplicates.
func (s *MasterService) AddItem(ctx context.Context, kind models.ListKind, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return appErrors.Clone(appErrors.ErrValidation, "value required")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		items, ok := st.Master.List(kind)
		if !ok {
			return appErrors.Clone(appErrors.ErrValidation, "unknown list kind")
		}
		if contains(items, value) {
			return appErrors.Clone(appErrors.ErrConflict, "value already exists")
		}
		st.Master.SetList(kind, append(items, value))
		return nil
	})
}

// RemoveItem drops a value from a pool.
func (s *MasterService) RemoveItem(ctx context.Context, kind models.ListKind, value string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		items, ok := st.Master.List(kind)
		if !ok {
			return appErrors.Clone(appErrors.ErrValidation, "unknown list kind")
		}
		if !contains(items, value) {
			return appErrors.Clone(appErrors.ErrNotFound, "value not found")
		}
		st.Master.SetList(kind, remove(items, value))
		return nil
	})
}

// ClassSubjects returns a class's subject assignment.
func (s *MasterService) ClassSubjects(_ context.Context, class string) ([]models.SubjectAssignment, error) {
	master := s.state.Master()
	if !contains(master.Classes, class) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return master.ClassSubjects[class], nil
}

// SetClassSubjects replaces a class's subject assignment. Subject names must
// come from the global pool and be unique within the class.
func (s *MasterService) SetClassSubjects(ctx context.Context, req SetClassSubjectsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class subjects payload")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.Classes, req.Class) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		seen := make(map[string]bool, len(req.Subjects))
		for _, sub := range req.Subjects {
			if !contains(st.Master.Subjects, sub.Name) {
				return appErrors.Clone(appErrors.ErrValidation, "unknown subject: "+sub.Name)
			}
			if sub.Type != models.SubjectMandatory && sub.Type != models.SubjectOptional {
				return appErrors.Clone(appErrors.ErrValidation, "subject type must be Mandatory or Optional")
			}
			if seen[sub.Name] {
				return appErrors.Clone(appErrors.ErrValidation, "duplicate subject: "+sub.Name)
			}
			seen[sub.Name] = true
		}
		if st.Master.ClassSubjects == nil {
			st.Master.ClassSubjects = map[string][]models.SubjectAssignment{}
		}
		st.Master.ClassSubjects[req.Class] = req.Subjects
		return nil
	})
}

// ClassSections returns the effective section list for a class, falling back
// to the global pool.
func (s *MasterService) ClassSections(_ context.Context, class string) ([]string, error) {
	master := s.state.Master()
	if !contains(master.Classes, class) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return master.SectionsForClass(class), nil
}

// SetClassSections replaces a class's section list. An empty list clears the
// override so the class falls back to the global pool.
func (s *MasterService) SetClassSections(ctx context.Context, req SetClassSectionsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class sections payload")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		if !contains(st.Master.Classes, req.Class) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		if len(req.Sections) == 0 {
			delete(st.Master.ClassSections, req.Class)
			return nil
		}
		if st.Master.ClassSections == nil {
			st.Master.ClassSections = map[string][]string{}
		}
		st.Master.ClassSections[req.Class] = req.Sections
		return nil
	})
}
