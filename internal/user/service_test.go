// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	m := make(map[string]*User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeRepo{users: m}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeRepo) GetByUsername(
	_ context.Context,
	username string,
) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	u.Role = authz.Role(role)
	return nil
}

func (f *fakeRepo) UpdateUsername(
	_ context.Context,
	id, username string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update username: %w", core.ErrNotFound)
	}
	for _, existing := range f.users {
		if existing.ID != id && existing.Username == username {
			return fmt.Errorf("update username: %w", core.ErrDuplicateKey)
		}
	}
	u.Username = username
	return nil
}

func (f *fakeRepo) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ExistsByUsername(
	_ context.Context,
	username string,
) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountByRole(_ context.Context, role string) (int, error) {
	count := 0
	for _, u := range f.users {
		if string(u.Role) == role {
			count++
		}
	}
	return count, nil
}

func superAdmin(id string) *User {
	return &User{ID: id, Username: "root-" + id, Role: authz.RoleSuperAdmin}
}

func TestDeleteLastSuperAdminRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(
		superAdmin("sa1"),
		&User{ID: "a1", Username: "admin1", Role: authz.RoleAdmin},
	))

	err := svc.Delete(context.Background(), "a1", "sa1")
	assertValidationError(t, err, "cannot delete the last super admin")
}

func TestDeleteSuperAdminWithAnotherRemaining(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(superAdmin("sa1"), superAdmin("sa2"))
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "sa1", "sa2"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, ok := repo.users["sa2"]; ok {
		t.Error("expected sa2 to be deleted")
	}
}

func TestDeleteSelfRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(superAdmin("sa1"), superAdmin("sa2")))

	err := svc.Delete(context.Background(), "sa1", "sa1")
	assertValidationError(t, err, "cannot delete your own account")
}

func TestUpdateOwnRoleRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(superAdmin("sa1")))

	_, err := svc.UpdateRole(
		context.Background(), "sa1", "sa1", authz.RoleAdmin)
	assertValidationError(t, err, "cannot change your own role")
}

func TestDemoteLastSuperAdminRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(
		superAdmin("sa1"),
		&User{ID: "a1", Username: "admin1", Role: authz.RoleAdmin},
	))

	_, err := svc.UpdateRole(
		context.Background(), "a1", "sa1", authz.RoleAdmin)
	assertValidationError(t, err, "cannot demote the last super admin")
}

func TestCreateDefaultsToEmployee(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), "Washer One", "longpassword", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Role != authz.RoleEmployee {
		t.Errorf("Role = %q, want employee", u.Role)
	}
	if u.Username != "washer one" {
		t.Errorf("Username = %q, want lowercased", u.Username)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(
		&User{ID: "u1", Username: "maria", Role: authz.RoleEmployee},
	))

	_, err := svc.Create(
		context.Background(), "maria", "longpassword", authz.RoleEmployee)
	appErr, ok := core.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "USERNAME_EXISTS" {
		t.Errorf("Code = %q, want USERNAME_EXISTS", appErr.Code)
	}
	if appErr.Status != 409 {
		t.Errorf("Status = %d, want 409", appErr.Status)
	}
}

func TestRenameNormalizesUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(
		&User{ID: "u1", Username: "maria", Role: authz.RoleEmployee},
	))

	u, err := svc.Rename(context.Background(), "u1", "  Maria.Lopez ")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if u.Username != "maria.lopez" {
		t.Errorf("Username = %q, want maria.lopez", u.Username)
	}
}

func TestRenameToTakenUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(
		&User{ID: "u1", Username: "maria", Role: authz.RoleEmployee},
		&User{ID: "u2", Username: "jorge", Role: authz.RoleEmployee},
	))

	_, err := svc.Rename(context.Background(), "u1", "jorge")
	appErr, ok := core.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "USERNAME_EXISTS" {
		t.Errorf("Code = %q, want USERNAME_EXISTS", appErr.Code)
	}
}

func TestResolveByCredentials(t *testing.T) {
	t.Parallel()

	hash, err := core.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	svc := NewService(newFakeRepo(&User{
		ID:           "u1",
		Username:     "stefan",
		PasswordHash: hash,
		Role:         authz.RoleEmployee,
	}))

	ctx := context.Background()

	p, err := svc.ResolveByCredentials(ctx, "stefan", "correct-horse")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if p.ID != "u1" || p.Role != authz.RoleEmployee {
		t.Errorf("unexpected principal %+v", p)
	}

	// Wrong password and unknown user must be indistinguishable.
	_, wrongErr := svc.ResolveByCredentials(ctx, "stefan", "wrong")
	_, unknownErr := svc.ResolveByCredentials(ctx, "nobody", "whatever")

	if !errors.Is(wrongErr, core.ErrUnauthorized) {
		t.Errorf("wrong password: got %v, want ErrUnauthorized", wrongErr)
	}
	if !errors.Is(unknownErr, core.ErrUnauthorized) {
		t.Errorf("unknown user: got %v, want ErrUnauthorized", unknownErr)
	}
}

func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()

	appErr, ok := core.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", appErr.Code)
	}
	if appErr.Status != 400 {
		t.Errorf("Status = %d, want 400", appErr.Status)
	}
	if appErr.Message != message {
		t.Errorf("Message = %q, want %q", appErr.Message, message)
	}
}
