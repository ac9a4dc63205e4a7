// Package session manages the authenticated user session: login, logout,
// and the on-device persistence of the bearer token. The token is written
// only here; the transport and every cached resource just read it.
package session

import (
	"context"
	"log/slog"

	"github.com/misanthropic-codes/sports360/internal/domain"
)

// Store is the slice of the on-device store the session flow needs
type Store interface {
	SaveSession(domain.Session) error
	LoadSession() (domain.Session, bool)
	ClearSession()
	SetOnboarded(bool) error
	HasOnboarded() bool
	ClearAll()
}

// Service manages login, logout, and session persistence
type Service struct {
	api    domain.API
	store  Store
	logger *slog.Logger
}

// NewService creates a session service
func NewService(api domain.API, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, store: store, logger: logger}
}

// Login authenticates against the backend and persists the session
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		return nil, err
	}
	if err := s.store.SaveSession(*sess); err != nil {
		s.logger.Error("failed to persist session", "error", err)
	}
	s.logger.Info("logged in", "userID", sess.UserID)
	return sess, nil
}

// Register creates an account and persists the resulting session
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	sess, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Error("registration failed", "error", err)
		return nil, err
	}
	if err := s.store.SaveSession(*sess); err != nil {
		s.logger.Error("failed to persist session", "error", err)
	}
	s.logger.Info("registered", "userID", sess.UserID)
	return sess, nil
}

// Logout clears the session and every cached payload. A different account
// must never see the previous account's data.
func (s *Service) Logout() {
	s.store.ClearSession()
	s.store.ClearAll()
	s.logger.Info("logged out")
}

// Current returns the persisted session, if any
func (s *Service) Current() (domain.Session, bool) {
	return s.store.LoadSession()
}

// Token returns the current bearer token, or "" when logged out.
// Shaped to plug straight into the transport's TokenSource.
func (s *Service) Token() string {
	sess, ok := s.store.LoadSession()
	if !ok {
		return ""
	}
	return sess.Token
}

// MarkOnboarded records that the first-run flow completed
func (s *Service) MarkOnboarded() {
	if err := s.store.SetOnboarded(true); err != nil {
		s.logger.Error("failed to persist onboarding flag", "error", err)
	}
}

// HasOnboarded reports whether the first-run flow has completed
func (s *Service) HasOnboarded() bool {
	return s.store.HasOnboarded()
}
