package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/domain"
)

const userColumns = `id, name, email, password_hash, phone, addr_street, addr_city, addr_state, addr_postal_code, addr_country, created_at`

// UserRepo is the Postgres credential store. Email is stored and matched
// case-sensitively; uniqueness is enforced by a constraint on the column so
// the register race collapses to a conflict, not a duplicate row.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Phone,
		&ur.AddrStreet,
		&ur.AddrCity,
		&ur.AddrState,
		&ur.AddrPostal,
		&ur.AddrCountry,
		&ur.CreatedAt,
	)
	return ur, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	var street, city, state, postal, country sql.NullString
	if a := u.Address; a != nil {
		street, city, state = nullable(a.Street), nullable(a.City), nullable(a.State)
		postal, country = nullable(a.PostalCode), nullable(a.Country)
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, phone, addr_street, addr_city, addr_state, addr_postal_code, addr_country)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + userColumns + `;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Name, u.Email, u.PasswordHash, nullable(u.Phone),
		street, city, state, postal, country,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, upd session.ProfileUpdate) (domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, domain.ErrMissingField("user_id")
	}

	// COALESCE keeps untouched fields; the address is written whole when set.
	const q = `
UPDATE users
SET name  = COALESCE($2, name),
    phone = COALESCE($3, phone),
    addr_street      = CASE WHEN $4 THEN $5 ELSE addr_street END,
    addr_city        = CASE WHEN $4 THEN $6 ELSE addr_city END,
    addr_state       = CASE WHEN $4 THEN $7 ELSE addr_state END,
    addr_postal_code = CASE WHEN $4 THEN $8 ELSE addr_postal_code END,
    addr_country     = CASE WHEN $4 THEN $9 ELSE addr_country END
WHERE id = $1
RETURNING ` + userColumns + `;
`
	var street, city, state, postal, country sql.NullString
	hasAddr := upd.Address != nil
	if hasAddr {
		street, city, state = nullable(upd.Address.Street), nullable(upd.Address.City), nullable(upd.Address.State)
		postal, country = nullable(upd.Address.PostalCode), nullable(upd.Address.Country)
	}

	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q,
		userID, upd.Name, upd.Phone, hasAddr, street, city, state, postal, country,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
