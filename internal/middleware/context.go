// AngelaMos | 2026
// context.go

package middleware

import (
	"context"

	"github.com/washtrack/washtrack/internal/authz"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	orderKey     contextKey = "order_state"
	requestIDKey contextKey = "request_id"
)

func WithPrincipal(
	ctx context.Context,
	p *authz.Principal,
) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) *authz.Principal {
	if p, ok := ctx.Value(principalKey).(*authz.Principal); ok {
		return p
	}
	return nil
}

func WithOrderState(
	ctx context.Context,
	o *authz.OrderState,
) context.Context {
	return context.WithValue(ctx, orderKey, o)
}

func GetOrderState(ctx context.Context) *authz.OrderState {
	if o, ok := ctx.Value(orderKey).(*authz.OrderState); ok {
		return o
	}
	return nil
}

// AuthContextFrom assembles the typed guard context from the request
// context. Guards receive this by value instead of reaching into ambient
// request state.
func AuthContextFrom(ctx context.Context) authz.Context {
	return authz.Context{
		Principal: GetPrincipal(ctx),
		Order:     GetOrderState(ctx),
	}
}

func IsAuthenticated(ctx context.Context) bool {
	return GetPrincipal(ctx) != nil
}

func GetUserID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.ID
	}
	return ""
}

func GetUserRole(ctx context.Context) authz.Role {
	if p := GetPrincipal(ctx); p != nil {
		return p.Role
	}
	return ""
}
