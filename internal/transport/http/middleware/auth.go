package middleware

import (
	"net/http"
	"strings"

	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/domain"
	"github.com/craftline/shopfront/internal/infrastructure/security"
)

type TokenVerifier interface {
	Verify(token string) (session.Claims, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth is the session guard. It extracts the session cookie, verifies it
// through the codec, and injects the embedded claims into the request
// context. It never consults the credential store: the signed claims are
// trusted as of mint time.
//
// Missing and invalid artifacts are distinct errors internally but both map
// to 401 outward, so callers cannot probe which check failed.
func Auth(verifier TokenVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := security.ReadSessionToken(r)
			if err != nil || strings.TrimSpace(raw) == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
