package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type sessionState interface {
	Sessions() []models.Session
	Students() []models.Student
	Update(ctx context.Context, fn func(*store.State) error) error
}

// SessionRequest creates or renames an academic session.
type SessionRequest struct {
	Name string `json:"name" validate:"required"`
}

// SessionService manages academic sessions. Exactly one session is current
// at any time.
type SessionService struct {
	state     sessionState
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(state sessionState, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{state: state, validator: validate, logger: logger}
}

// List returns every session.
func (s *SessionService) List(_ context.Context) []models.Session {
	return s.state.Sessions()
}

// Create adds a session. The new session is not current until selected.
func (s *SessionService) Create(ctx context.Context, req SessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	name := strings.TrimSpace(req.Name)

	var created models.Session
	err := s.state.Update(ctx, func(st *store.State) error {
		for i := range st.Sessions {
			if st.Sessions[i].Name == name {
				return appErrors.Clone(appErrors.ErrConflict, "session already exists: "+name)
			}
		}
		created = models.Session{ID: uuid.NewString(), Name: name}
		st.Sessions = append(st.Sessions, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Rename changes a session's display name.
func (s *SessionService) Rename(ctx context.Context, id string, req SessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	name := strings.TrimSpace(req.Name)

	var updated models.Session
	err := s.state.Update(ctx, func(st *store.State) error {
		idx := findSessionIndex(st.Sessions, id)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		for i := range st.Sessions {
			if i != idx && st.Sessions[i].Name == name {
				return appErrors.Clone(appErrors.ErrConflict, "session already exists: "+name)
			}
		}
		st.Sessions[idx].Name = name
		updated = st.Sessions[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetCurrent marks one session current and clears the flag everywhere else.
func (s *SessionService) SetCurrent(ctx context.Context, id string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		idx := findSessionIndex(st.Sessions, id)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		for i := range st.Sessions {
			st.Sessions[i].IsCurrent = i == idx
		}
		return nil
	})
}

// Delete removes a session. The current session, the last remaining session,
// and any session with admitted students are protected.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.state.Update(ctx, func(st *store.State) error {
		idx := findSessionIndex(st.Sessions, id)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		if len(st.Sessions) == 1 {
			return appErrors.Clone(appErrors.ErrLastItem, "cannot delete the only session")
		}
		if st.Sessions[idx].IsCurrent {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "cannot delete the current session")
		}
		for i := range st.Students {
			if st.Students[i].AdmissionSessionID == id {
				return appErrors.Clone(appErrors.ErrPreconditionFailed, "session has admitted students")
			}
		}
		st.Sessions = append(st.Sessions[:idx], st.Sessions[idx+1:]...)
		return nil
	})
}

func findSessionIndex(sessions []models.Session, id string) int {
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}
