package middleware

import (
	"context"

	"github.com/craftline/shopfront/internal/application/session"
)

type ctxKey string

const ctxClaims ctxKey = "session_claims"

// WithClaims attaches the verified claim set to the context, read-only for
// the remainder of the request.
func WithClaims(ctx context.Context, c session.Claims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

func ClaimsFromContext(ctx context.Context) (session.Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(session.Claims)
	return c, ok && c.UserID != ""
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	return c.UserID, ok
}
