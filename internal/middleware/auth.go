// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
)

// PrincipalResolver is how the authenticator reaches the user store without
// depending on it.
type PrincipalResolver interface {
	// ResolveByCredentials verifies a username/password pair. Unknown user
	// and wrong password both surface as core.ErrUnauthorized so callers
	// cannot enumerate usernames.
	ResolveByCredentials(
		ctx context.Context,
		username, password string,
	) (*authz.Principal, error)

	// ResolveByID loads a principal for an established session.
	// core.ErrNotFound means the user no longer exists.
	ResolveByID(ctx context.Context, id string) (*authz.Principal, error)
}

// SessionReader resolves a session ID to the user it was issued for.
// core.ErrNotFound means no such session.
type SessionReader interface {
	UserIDForSession(ctx context.Context, sessionID string) (string, error)
}

type Authenticator struct {
	users      PrincipalResolver
	sessions   SessionReader
	cookieName string
}

func NewAuthenticator(
	users PrincipalResolver,
	sessions SessionReader,
	cookieName string,
) *Authenticator {
	return &Authenticator{
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// Require authenticates the request or rejects it. A Basic header, when
// present, is authoritative: its failure never falls back to the session
// path.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.Authenticate(r)
		if err != nil {
			core.JSONError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(
			WithPrincipal(r.Context(), principal)))
	})
}

// Optional attaches a principal when credentials resolve and proceeds
// anonymously when they do not. It never rejects.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.Authenticate(r)
		if err == nil && principal != nil {
			r = r.WithContext(WithPrincipal(r.Context(), principal))
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) Authenticate(
	r *http.Request,
) (*authz.Principal, error) {
	if creds, ok := basicCredentials(r); ok {
		return a.basicAuth(r.Context(), creds)
	}

	return a.sessionAuth(r)
}

type credentials struct {
	username string
	password string
	valid    bool
}

// basicCredentials reports whether an Authorization: Basic header is
// present and, when parseable, its decoded parts. A present-but-malformed
// header still selects the Basic path.
func basicCredentials(r *http.Request) (credentials, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return credentials{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return credentials{}, false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return credentials{}, true
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return credentials{}, true
	}

	return credentials{
		username: username,
		password: password,
		valid:    true,
	}, true
}

func (a *Authenticator) basicAuth(
	ctx context.Context,
	creds credentials,
) (*authz.Principal, error) {
	if !creds.valid || creds.username == "" || creds.password == "" {
		return nil, invalidCredentials()
	}

	principal, err := a.users.ResolveByCredentials(
		ctx,
		creds.username,
		creds.password,
	)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) ||
			errors.Is(err, core.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	return principal, nil
}

func (a *Authenticator) sessionAuth(
	r *http.Request,
) (*authz.Principal, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, core.AuthenticationError(
			"UNAUTHORIZED",
			"authentication required",
		)
	}

	userID, err := a.sessions.UserIDForSession(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.AuthenticationError(
				"UNAUTHORIZED",
				"authentication required",
			)
		}
		return nil, err
	}

	principal, err := a.users.ResolveByID(r.Context(), userID)
	if err != nil {
		// The client held a live session for a user that no longer
		// resolves, so the code differs from a bad-credential reject.
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.AuthenticationError(
				"USER_NOT_FOUND",
				"user not found",
			)
		}
		return nil, err
	}

	return principal, nil
}

func invalidCredentials() *core.AppError {
	return core.AuthenticationError(
		"INVALID_CREDENTIALS",
		"invalid username or password",
	)
}
