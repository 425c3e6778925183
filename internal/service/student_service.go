package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

// Confirmation phrase for a full data wipe.
const factoryResetPhrase = "RESET"

type studentState interface {
	Master() models.MasterData
	Students() []models.Student
	Update(ctx context.Context, fn func(*store.State) error) error
	Reset(ctx context.Context) error
}

// UpdateStudentRequest carries an edit to an existing record. The admission
// ID itself is immutable.
type UpdateStudentRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`

	Class    string   `json:"class" validate:"required"`
	Section  string   `json:"section"`
	RollNo   string   `json:"roll_no"`
	Subjects []string `json:"subjects"`

	Gender     string `json:"gender"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Category   string `json:"category"`
	Religion   string `json:"religion"`
	Caste      string `json:"caste"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email" validate:"omitempty,email"`

	CurrentAddress   string `json:"current_address"`
	PermanentAddress string `json:"permanent_address"`

	Father        models.Guardian `json:"father"`
	Mother        models.Guardian `json:"mother"`
	OtherGuardian models.Guardian `json:"other_guardian"`
}

// DeleteStudentRequest requires the caller to retype the admission ID.
type DeleteStudentRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// FactoryResetRequest requires the fixed confirmation phrase.
type FactoryResetRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// StudentService manages the student roster after admission.
type StudentService struct {
	state     studentState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(state studentState, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{state: state, validator: validate, logger: logger}
}

// List returns students matching the filter, sorted by class then roll number
// then name.
func (s *StudentService) List(_ context.Context, filter models.StudentFilter) []models.Student {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []models.Student
	for _, st := range s.state.Students() {
		if filter.Class != "" && st.Class != filter.Class {
			continue
		}
		if filter.Section != "" && st.Section != filter.Section {
			continue
		}
		if filter.Session != "" && st.AdmissionSessionID != filter.Session {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.FullName()), search) &&
			!strings.Contains(strings.ToLower(st.ID), search) {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		if out[i].RollNo != out[j].RollNo {
			return out[i].RollNo < out[j].RollNo
		}
		return out[i].FullName() < out[j].FullName()
	})
	return out
}

// Get returns one student by admission ID.
func (s *StudentService) Get(_ context.Context, id string) (*models.Student, error) {
	students := s.state.Students()
	idx := findStudentIndex(students, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := students[idx]
	return &student, nil
}

// Update replaces the editable fields of a student. Marks and admission
// metadata are untouched.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	var updated models.Student
	err := s.state.Update(ctx, func(st *store.State) error {
		idx := findStudentIndex(st.Students, id)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		if !contains(st.Master.Classes, req.Class) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown class: "+req.Class)
		}
		student := &st.Students[idx]
		student.FirstName = req.FirstName
		student.MiddleName = req.MiddleName
		student.LastName = req.LastName
		student.Class = req.Class
		student.Section = req.Section
		student.RollNo = req.RollNo
		student.Subjects = req.Subjects
		student.Gender = req.Gender
		student.DOB = req.DOB
		student.BloodGroup = req.BloodGroup
		student.Category = req.Category
		student.Religion = req.Religion
		student.Caste = req.Caste
		student.Mobile = req.Mobile
		student.Email = req.Email
		student.CurrentAddress = req.CurrentAddress
		student.PermanentAddress = req.PermanentAddress
		student.Father = req.Father
		student.Mother = req.Mother
		student.OtherGuardian = req.OtherGuardian
		updated = *student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a student and their marks. The confirmation must be the
// student's exact admission ID.
func (s *StudentService) Delete(ctx context.Context, id string, req DeleteStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "confirmation is required")
	}
	if req.Confirmation != id {
		return appErrors.Clone(appErrors.ErrConfirmation, "confirmation must match the admission ID")
	}
	return s.state.Update(ctx, func(st *store.State) error {
		idx := findStudentIndex(st.Students, id)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		st.Students = append(st.Students[:idx], st.Students[idx+1:]...)
		return nil
	})
}

// FactoryReset wipes every snapshot back to seeded defaults. Guarded by the
// fixed phrase so a stray request cannot destroy the school's data.
func (s *StudentService) FactoryReset(ctx context.Context, req FactoryResetRequest) error {
	if req.Confirmation != factoryResetPhrase {
		return appErrors.Clone(appErrors.ErrConfirmation, "confirmation must be the word RESET")
	}
	s.logger.Warn("factory reset requested, wiping all snapshots")
	return s.state.Reset(ctx)
}
