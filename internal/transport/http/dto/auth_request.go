package dto

import (
	"github.com/craftline/shopfront/internal/application/session"
	"github.com/craftline/shopfront/internal/domain"
)

// -------- Core auth --------

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate deliberately reports nothing beyond invalid_credentials: a 400
// naming the missing field would let a caller distinguish input shapes that
// must stay indistinguishable.
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return domain.ErrInvalidCredentials()
	}
	return nil
}

// -------- Profile --------

type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// UpdateProfileRequest is a partial update: nil fields are untouched.
// Email and password are not updatable through this endpoint.
type UpdateProfileRequest struct {
	Name    *string         `json:"name" validate:"omitempty,min=2,max=100"`
	Phone   *string         `json:"phone" validate:"omitempty,max=32"`
	Address *AddressPayload `json:"address"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validateStruct(r)
}

// ToProfileUpdate maps the request onto the application-layer update.
func (r *UpdateProfileRequest) ToProfileUpdate() session.ProfileUpdate {
	upd := session.ProfileUpdate{
		Name:  r.Name,
		Phone: r.Phone,
	}
	if r.Address != nil {
		upd.Address = &domain.Address{
			Street:     r.Address.Street,
			City:       r.Address.City,
			State:      r.Address.State,
			PostalCode: r.Address.PostalCode,
			Country:    r.Address.Country,
		}
	}
	return upd
}
