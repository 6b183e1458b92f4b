package session

import (
	"context"

	"github.com/craftline/shopfront/internal/domain"
)

// Login authenticates a user and opens a session.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
// Unknown email and wrong password produce the identical error.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials. Store outages still
		// surface as infrastructure errors.
		if domain.Is(err, "user_not_found") {
			return Session{}, domain.ErrInvalidCredentials()
		}
		return Session{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Session{}, domain.ErrInvalidCredentials()
	}

	sess, err := s.mint(u)
	if err != nil {
		return Session{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})

	return sess, nil
}
