// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveByCredentials verifies a username/password pair for the
// authenticator. Unknown user and wrong password collapse into the same
// core.ErrUnauthorized, and the dummy-hash comparison keeps both paths on
// the same clock.
func (s *Service) ResolveByCredentials(
	ctx context.Context,
	username, password string,
) (*authz.Principal, error) {
	u, err := s.repo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(password, nil)
			return nil, fmt.Errorf("resolve credentials: %w", core.ErrUnauthorized)
		}
		return nil, err
	}

	if !core.VerifyPasswordTimingSafe(password, &u.PasswordHash) {
		return nil, fmt.Errorf("resolve credentials: %w", core.ErrUnauthorized)
	}

	return u.Principal(), nil
}

func (s *Service) ResolveByID(
	ctx context.Context,
	id string,
) (*authz.Principal, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.Principal(), nil
}

func (s *Service) Create(
	ctx context.Context,
	username, password string,
	role authz.Role,
) (*User, error) {
	if role == "" {
		role = authz.RoleEmployee
	}
	if !role.Valid() {
		return nil, core.ValidationError(
			fmt.Sprintf("invalid role %q", role), nil)
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"USERNAME_EXISTS",
				"username already exists",
			)
		}
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// Rename changes the target's username. Usernames are stored lowercase,
// so the new value is normalized the same way Create normalizes it.
func (s *Service) Rename(
	ctx context.Context,
	targetID, username string,
) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.Username == username {
		return target, nil
	}

	if err := s.repo.UpdateUsername(ctx, targetID, username); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"USERNAME_EXISTS",
				"username already exists",
			)
		}
		return nil, err
	}

	target.Username = username
	return target, nil
}

// UpdateRole enforces the super_admin self-protection rule: an actor may
// never change their own role.
func (s *Service) UpdateRole(
	ctx context.Context,
	actorID, targetID string,
	role authz.Role,
) (*User, error) {
	if !role.Valid() {
		return nil, core.ValidationError(
			fmt.Sprintf("invalid role %q", role), nil)
	}

	if actorID == targetID {
		return nil, core.ValidationError("cannot change your own role", nil)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Demoting the only super_admin would orphan the deployment the same
	// way deleting them would.
	if target.IsSuperAdmin() && role != authz.RoleSuperAdmin {
		count, countErr := s.repo.CountByRole(
			ctx, string(authz.RoleSuperAdmin))
		if countErr != nil {
			return nil, countErr
		}
		if count <= 1 {
			return nil, core.ValidationError(
				"cannot demote the last super admin", nil)
		}
	}

	if err := s.repo.UpdateRole(ctx, targetID, string(role)); err != nil {
		return nil, err
	}

	target.Role = role
	return target, nil
}

func (s *Service) SetPassword(
	ctx context.Context,
	targetID, password string,
) error {
	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, targetID, passwordHash)
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !core.VerifyPassword(currentPassword, u.PasswordHash) {
		return core.AuthenticationError(
			"INVALID_CREDENTIALS",
			"current password is incorrect",
		)
	}

	return s.SetPassword(ctx, userID, newPassword)
}

// Delete enforces that a super_admin cannot delete themselves and that the
// last remaining super_admin can never be removed.
func (s *Service) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return core.ValidationError("cannot delete your own account", nil)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsSuperAdmin() {
		count, countErr := s.repo.CountByRole(
			ctx, string(authz.RoleSuperAdmin))
		if countErr != nil {
			return countErr
		}
		if count <= 1 {
			return core.ValidationError(
				"cannot delete the last super admin", nil)
		}
	}

	return s.repo.Delete(ctx, targetID)
}

// CreateEmployee is the self-registration path: new accounts always start
// as employees.
func (s *Service) CreateEmployee(
	ctx context.Context,
	username, password string,
) (*authz.Principal, error) {
	u, err := s.Create(ctx, username, password, authz.RoleEmployee)
	if err != nil {
		return nil, err
	}
	return u.Principal(), nil
}
