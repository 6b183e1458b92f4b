package handlers

import (
	"net/http"

	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/domain"
	"github.com/craftline/shopfront/internal/infrastructure/security"
	"github.com/craftline/shopfront/internal/logger"
	"github.com/craftline/shopfront/internal/transport/http/dto"
	"github.com/craftline/shopfront/internal/transport/http/middleware"
	"github.com/craftline/shopfront/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *session.Service
	secureCookies bool
}

func NewAuthHandler(svc *session.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", sess.User.ID).
		Str("email", sess.User.Email).
		Bool("is_admin", sess.IsAdmin).
		Msg("user_registered")

	security.SetSessionCookies(w, sess.Token, sess.User.Email, h.svc.SessionTTL(), h.secureCookies)

	response.Created(w, dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.NewUserView(sess.User, sess.IsAdmin),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Failed logins set no cookie of any kind.
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", sess.User.ID).
		Msg("user_logged_in")

	security.SetSessionCookies(w, sess.Token, sess.User.Email, h.svc.SessionTTL(), h.secureCookies)

	response.OK(w, dto.AuthResponse{
		Message: "User logged in successfully",
		User:    dto.NewUserView(sess.User, sess.IsAdmin),
	})
}

// Logout instructs the client to discard both cookies. There is no server
// session to tear down, so it succeeds with or without an active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookies(w, h.secureCookies)
	response.OK(w, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the stored profile of the authenticated user. The admin flag
// comes from the verified claims, so it reflects the allow-list as it stood
// when the artifact was minted.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeResponse{
		User:    dto.NewProfileView(u),
		IsAdmin: claims.IsAdmin,
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), claims.UserID, req.ToProfileUpdate())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.AuthResponse{
		Message: "Profile updated successfully",
		User:    dto.NewUserView(u, claims.IsAdmin),
	})
}
