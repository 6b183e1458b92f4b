package dto

import "github.com/craftline/shopfront/internal/domain"

// UserView is the public user shape returned by register/login/update.
// It never carries the password hash and never can: there is no field for it.
type UserView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address *AddressPayload `json:"address,omitempty"`
	IsAdmin bool            `json:"isAdmin"`
}

// ProfileView is UserView without the admin flag; GET /user reports the flag
// separately, taken from the verified claims rather than the record.
type ProfileView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address *AddressPayload `json:"address,omitempty"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

type MeResponse struct {
	User    ProfileView `json:"user"`
	IsAdmin bool        `json:"isAdmin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserView(u domain.User, isAdmin bool) UserView {
	return UserView{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: newAddressPayload(u.Address),
		IsAdmin: isAdmin,
	}
}

func NewProfileView(u domain.User) ProfileView {
	return ProfileView{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: newAddressPayload(u.Address),
	}
}

func newAddressPayload(a *domain.Address) *AddressPayload {
	if a == nil {
		return nil
	}
	return &AddressPayload{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
