package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	RequestIDMW func(http.Handler) http.Handler
	CORSMW      func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler

	// Per-route rate limits; nil disables the limit for that route.
	RLRegister func(http.Handler) http.Handler
	RLLogin    func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()

	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.CORSMW != nil {
		r.Use(deps.CORSMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(optional(deps.RLRegister)).Post("/register", deps.Auth.Register)
		r.With(optional(deps.RLLogin)).Post("/login", deps.Auth.Login)
		r.Post("/logout", deps.Auth.Logout)

		r.With(deps.AuthMW).Get("/user", deps.Auth.Me)
		r.With(deps.AuthMW).Put("/user", deps.Auth.UpdateProfile)
	})

	return r, nil
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
