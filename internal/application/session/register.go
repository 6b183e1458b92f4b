package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/craftline/shopfront/internal/domain"
)

// Register creates a user and opens a session for it.
//
// Duplicate detection happens twice: the lookup here covers the common case,
// and the store's unique constraint backstops the race where two registers
// for the same email both pass the lookup. The store adapter converts a
// constraint violation into the same conflict error.
func (s *Service) Register(ctx context.Context, name, email, password string) (Session, error) {
	if name == "" {
		return Session{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return Session{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return Session{}, domain.ErrMissingField("password")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Session{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return Session{}, err
	}

	sess, err := s.mint(created)
	if err != nil {
		// The account exists but no artifact was issued; the caller can
		// recover by logging in. No compensating delete.
		return Session{}, err
	}

	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})

	if s.pub != nil {
		// Best effort: a broker outage must not fail the registration.
		_ = s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Email:  created.Email,
			Name:   created.Name,
		})
	}

	return sess, nil
}
