package session

import (
	"time"

	"github.com/craftline/shopfront/internal/domain"
)

// Service is the session issuer: it validates credentials against the
// credential store, resolves the admin flag from the allow-list, and mints
// the signed session artifact. It holds no per-session state.
type Service struct {
	users  UserRepo
	hasher PasswordHasher
	codec  TokenCodec
	admins domain.AdminList
	pub    EventPublisher

	sessionTTL time.Duration
	audit      func(action string, fields map[string]string)
}

type Config struct {
	SessionTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, codec TokenCodec, admins domain.AdminList, pub EventPublisher, cfg Config) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		admins:     admins,
		pub:        pub,
		sessionTTL: ttl,
		audit:      func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// SessionTTL is the fixed validity window of minted artifacts.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

// Session is the outcome of a successful register or login: the created or
// matched user, the admin flag as computed at mint time, and the artifact.
type Session struct {
	User      domain.User
	IsAdmin   bool
	Token     string
	ExpiresAt time.Time
}

// mint signs a claim set for the user. IsAdmin is resolved here, at mint
// time, and frozen into the token for the whole validity window.
func (s *Service) mint(u domain.User) (Session, error) {
	isAdmin := s.admins.IsAdmin(u.Email)

	tok, err := s.codec.Mint(u.ID, u.Email, isAdmin, s.sessionTTL)
	if err != nil {
		return Session{}, domain.ErrTokenSignFailed(err)
	}

	return Session{
		User:      u,
		IsAdmin:   isAdmin,
		Token:     tok,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}, nil
}
