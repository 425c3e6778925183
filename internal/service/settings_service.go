package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type settingsState interface {
	Settings() models.Settings
	Sessions() []models.Session
	Update(ctx context.Context, fn func(*store.State) error) error
}

// UpdateSettingsRequest replaces the ID-generation settings wholesale.
type UpdateSettingsRequest struct {
	IDType           models.IDType `json:"id_type" validate:"required,oneof=Numeric Pattern"`
	IDPrefix         string        `json:"id_prefix"`
	IDSeparator      string        `json:"id_separator"`
	IDStartNumber    int           `json:"id_start_number" validate:"gte=1"`
	IDPadding        int           `json:"id_padding" validate:"gte=0,lte=10"`
	IDPattern        string        `json:"id_pattern"`
	IncludeClassInID bool          `json:"include_class_in_id"`
	IncludeDateInID  bool          `json:"include_date_in_id"`
}

// SettingsService manages admission ID generation settings.
type SettingsService struct {
	state     settingsState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(state settingsState, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{state: state, validator: validate, logger: logger}
}

// Get returns the current settings.
func (s *SettingsService) Get(_ context.Context) models.Settings {
	return s.state.Settings()
}

// Update replaces the settings. Pattern mode requires a non-empty pattern.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*models.Settings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	if req.IDType == models.IDTypePattern && req.IDPattern == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pattern mode requires an ID pattern")
	}

	var updated models.Settings
	err := s.state.Update(ctx, func(st *store.State) error {
		st.Settings = models.Settings{
			IDType:           req.IDType,
			IDPrefix:         req.IDPrefix,
			IDSeparator:      req.IDSeparator,
			IDStartNumber:    req.IDStartNumber,
			IDPadding:        req.IDPadding,
			IDPattern:        req.IDPattern,
			IncludeClassInID: req.IncludeClassInID,
			IncludeDateInID:  req.IncludeDateInID,
		}
		updated = st.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PreviewID renders a sample ID with the proposed settings, without saving
// them.
func (s *SettingsService) PreviewID(_ context.Context, req UpdateSettingsRequest, class, section string) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	settings := models.Settings{
		IDType:           req.IDType,
		IDPrefix:         req.IDPrefix,
		IDSeparator:      req.IDSeparator,
		IDStartNumber:    req.IDStartNumber,
		IDPadding:        req.IDPadding,
		IDPattern:        req.IDPattern,
		IncludeClassInID: req.IncludeClassInID,
		IncludeDateInID:  req.IncludeDateInID,
	}
	sessionName := ""
	if current := models.CurrentSession(s.state.Sessions()); current != nil {
		sessionName = current.Name
	}
	return GenerateAdmissionID(settings, settings.IDStartNumber, class, section, sessionName, ""), nil
}
