package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
)

// ErrNotFound is returned by backends when a snapshot key has never been
// written.
var ErrNotFound = errors.New("snapshot not found")

// Backend persists whole-object JSON snapshots under string keys.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Snapshot keys. Each key holds one full-object blob; there is no
// versioning or migration scheme between software versions.
const (
	KeyMasterData = "master_data"
	KeyStudents   = "students"
	KeySessions   = "sessions"
	KeySettings   = "settings"
	KeyProfile    = "school_profile"
)

// State is the complete in-memory dataset of the console.
type State struct {
	Master   models.MasterData
	Students []models.Student
	Sessions []models.Session
	Settings models.Settings
	Profile  models.SchoolProfile
}

// Store holds the five snapshots and serialises every mutation. Mutators
// run on a deep copy; only a successful mutator replaces the live state, so
// cascading updates are never observable half-applied. After replacement the
// changed blobs are flushed wholesale to the backend.
type Store struct {
	mu           sync.RWMutex
	backend      Backend
	logger       *zap.Logger
	state        State
	observeFlush func(key string, duration time.Duration)
}

// New constructs a store over the given backend.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger, state: DefaultState()}
}

// SetFlushObserver installs a callback invoked after every blob write.
// Must be called before the store is shared across goroutines.
func (s *Store) SetFlushObserver(fn func(key string, duration time.Duration)) {
	s.observeFlush = fn
}

func (s *Store) flush(ctx context.Context, key string, data []byte) {
	start := time.Now()
	if err := s.backend.Save(ctx, key, data); err != nil {
		s.logger.Error("snapshot flush failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.observeFlush != nil {
		s.observeFlush(key, time.Since(start))
	}
}

// Load reads every snapshot from the backend. A missing or unparseable blob
// keeps its default value; load never fails the caller over bad data.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loadBlob(ctx, s, KeyMasterData, &s.state.Master)
	loadBlob(ctx, s, KeyStudents, &s.state.Students)
	loadBlob(ctx, s, KeySessions, &s.state.Sessions)
	loadBlob(ctx, s, KeySettings, &s.state.Settings)
	loadBlob(ctx, s, KeyProfile, &s.state.Profile)
}

func loadBlob[T any](ctx context.Context, s *Store, key string, dst *T) {
	data, err := s.backend.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("snapshot load failed, keeping defaults", zap.String("key", key), zap.Error(err))
		}
		return
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.logger.Warn("snapshot corrupt, keeping defaults", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = decoded
}

// Update applies fn to a deep copy of the state. When fn succeeds the copy
// becomes the live state and every blob whose serialised form changed is
// flushed. A flush failure is logged but does not undo the in-memory
// mutation, mirroring the source system's fire-and-forget persistence.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(s.state)
	if err != nil {
		return fmt.Errorf("clone state: %w", err)
	}
	if err := fn(&next); err != nil {
		return err
	}

	before := s.encodeBlobs(&s.state)
	after := s.encodeBlobs(&next)
	s.state = next

	for key, data := range after {
		if string(before[key]) == string(data) {
			continue
		}
		s.flush(ctx, key, data)
	}
	return nil
}

// Reset replaces every snapshot with defaults and flushes all five blobs.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = DefaultState()
	for key, data := range s.encodeBlobs(&s.state) {
		s.flush(ctx, key, data)
	}
	return nil
}

// Master returns a deep copy of the master data snapshot.
func (s *Store) Master() models.MasterData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, err := clone(s.state.Master)
	if err != nil {
		s.logger.Error("master snapshot copy failed", zap.Error(err))
	}
	return out
}

// Students returns a deep copy of the student list.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, err := clone(s.state.Students)
	if err != nil {
		s.logger.Error("students snapshot copy failed", zap.Error(err))
	}
	return out
}

// Sessions returns a deep copy of the session list.
func (s *Store) Sessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, err := clone(s.state.Sessions)
	if err != nil {
		s.logger.Error("sessions snapshot copy failed", zap.Error(err))
	}
	return out
}

// Settings returns the current settings snapshot.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// Profile returns the current school profile snapshot.
func (s *Store) Profile() models.SchoolProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Profile
}

func (s *Store) encodeBlobs(state *State) map[string][]byte {
	blobs := make(map[string][]byte, 5)
	encode := func(key string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("snapshot encode failed", zap.String("key", key), zap.Error(err))
			return
		}
		blobs[key] = data
	}
	encode(KeyMasterData, state.Master)
	encode(KeyStudents, state.Students)
	encode(KeySessions, state.Sessions)
	encode(KeySettings, state.Settings)
	encode(KeyProfile, state.Profile)
	return blobs
}

func clone[T any](in T) (T, error) {
	var out T
	data, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
