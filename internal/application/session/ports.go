package session

import (
	"context"
	"time"

	"github.com/craftline/shopfront/internal/domain"
)

/*
UserRepo
--------
Persistence port for the credential store.
Only describes WHAT the session service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Partial profile update: nil fields are left untouched.
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error)
}

// ProfileUpdate carries the writable profile fields. Email and password are
// deliberately absent: neither is updatable through this flow.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *domain.Address
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. The per-record salt is the hasher's concern.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenCodec
----------
Mints and verifies the signed session artifact (JWT).
Used by the service and by the guard middleware.
*/
type Claims struct {
	UserID    string
	Email     string // denormalized at mint time; may go stale, by contract
	IsAdmin   bool   // denormalized at mint time; may go stale, by contract
	ExpiresAt time.Time
}

type TokenCodec interface {
	Mint(userID, email string, isAdmin bool, ttl time.Duration) (string, error)
	Verify(token string) (Claims, error)
}

/*
EventPublisher
--------------
Publishes registration events to the broker. The welcome-mail pipeline
consumes them; this service never sends mail itself.
*/
type UserRegisteredEvent struct {
	UserID string
	Email  string
	Name   string
}

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
