package postgres

import (
	"database/sql"
	"time"

	"github.com/craftline/shopfront/internal/domain"
)

// userRow mirrors the users table. Phone and the address columns are
// nullable; the domain model collapses an all-null address to nil.
type userRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        sql.NullString
	AddrStreet   sql.NullString
	AddrCity     sql.NullString
	AddrState    sql.NullString
	AddrPostal   sql.NullString
	AddrCountry  sql.NullString
	CreatedAt    time.Time
}

func toDomainUser(ur userRow) domain.User {
	u := domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Phone:        ur.Phone.String,
	}

	if ur.AddrStreet.Valid || ur.AddrCity.Valid || ur.AddrState.Valid || ur.AddrPostal.Valid || ur.AddrCountry.Valid {
		u.Address = &domain.Address{
			Street:     ur.AddrStreet.String,
			City:       ur.AddrCity.String,
			State:      ur.AddrState.String,
			PostalCode: ur.AddrPostal.String,
			Country:    ur.AddrCountry.String,
		}
	}

	return u
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
