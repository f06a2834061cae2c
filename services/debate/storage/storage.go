package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/eduvox/backend/services/debate/entity"
)

var ErrSessionNotFound = errors.New("debate session not found")

type Storage interface {
	SaveSession(ctx context.Context, session *entity.Session) error
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

type storage struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// New returns an in-memory Storage. Sessions are copied on the way in and out.
func New() Storage {
	return &storage{
		sessions: make(map[string]*entity.Session),
	}
}

func (s *storage) SaveSession(ctx context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *storage) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return clone(session), nil
}

func clone(session *entity.Session) *entity.Session {
	out := *session
	out.History = append([]entity.Turn(nil), session.History...)
	if session.Report != nil {
		report := *session.Report
		out.Report = &report
	}
	return &out
}
