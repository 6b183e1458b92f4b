package session

import (
	"context"

	"github.com/craftline/shopfront/internal/domain"
)

// GetUser loads the user referenced by a verified artifact. The caller
// already holds the claim set; the admin flag stays the one frozen at mint
// time, so none is recomputed here.
func (s *Service) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update of name/phone/address. Email and
// password cannot be changed through this flow.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error) {
	u, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("profile_updated", map[string]string{"user_id": userID})

	return u, nil
}
