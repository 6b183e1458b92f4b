package domain

// Address is the optional postal address attached to a user profile.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// User is the credential-store record. PasswordHash must never leave the
// service boundary; transport views exclude it by construction.
type User struct {
	ID           string
	Name         string
	Email        string // unique, case-sensitive as stored
	PasswordHash string
	Phone        string
	Address      *Address
}
