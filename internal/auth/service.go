// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserProvider is the slice of the user service the auth flow needs.
type UserProvider interface {
	ResolveByCredentials(
		ctx context.Context,
		username, password string,
	) (*authz.Principal, error)
	CreateEmployee(
		ctx context.Context,
		username, password string,
	) (*authz.Principal, error)
}

type Service struct {
	users    UserProvider
	sessions *SessionStore
}

func NewService(users UserProvider, sessions *SessionStore) *Service {
	return &Service{users: users, sessions: sessions}
}

// Login verifies credentials and establishes a server-side session.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (*authz.Principal, string, error) {
	principal, err := s.users.ResolveByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, principal.ID)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	return principal, sessionID, nil
}

// Register creates an employee account and logs it in.
func (s *Service) Register(
	ctx context.Context,
	username, password string,
) (*authz.Principal, string, error) {
	principal, err := s.users.CreateEmployee(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessions.Create(ctx, principal.ID)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	return principal, sessionID, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}
