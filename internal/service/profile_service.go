package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type profileState interface {
	Profile() models.SchoolProfile
	Update(ctx context.Context, fn func(*store.State) error) error
}

// UpdateProfileRequest replaces the school identity record.
type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Website     string `json:"website"`
	Affiliation string `json:"affiliation"`
	LogoURL     string `json:"logo_url"`
}

// ProfileService manages the single school profile record.
type ProfileService struct {
	state     profileState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(state profileState, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{state: state, validator: validate, logger: logger}
}

// Get returns the school profile.
func (s *ProfileService) Get(_ context.Context) models.SchoolProfile {
	return s.state.Profile()
}

// Update replaces the profile wholesale.
func (s *ProfileService) Update(ctx context.Context, req UpdateProfileRequest) (*models.SchoolProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	var updated models.SchoolProfile
	err := s.state.Update(ctx, func(st *store.State) error {
		st.Profile = models.SchoolProfile{
			Name:        req.Name,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
			Website:     req.Website,
			Affiliation: req.Affiliation,
			LogoURL:     req.LogoURL,
		}
		updated = st.Profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
