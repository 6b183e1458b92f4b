package session

import (
	"context"
	"testing"

	"github.com/craftline/shopfront/internal/domain"
)

func strp(s string) *string { return &s }

func TestGetUser_ReturnsStoredRecord(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Name: "Alice", Email: "a@x.com", PasswordHash: "h"})

	u, err := svc.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Name != "Alice" || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestGetUser_Gone_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.GetUser(context.Background(), "missing")
	requireErrCode(t, err, "user_not_found")
}

func TestUpdateProfile_PartialUpdate_LeavesOtherFields(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, audits := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Name: "Alice", Email: "a@x.com", Phone: "111", PasswordHash: "h"})

	u, err := svc.UpdateProfile(context.Background(), "u1", ProfileUpdate{Name: strp("Alicia")})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Name != "Alicia" {
		t.Fatalf("expected name updated, got %q", u.Name)
	}
	if u.Phone != "111" || u.Email != "a@x.com" {
		t.Fatalf("expected untouched fields kept: %+v", u)
	}

	requireAuditAction(t, audits, "profile_updated")
}

func TestUpdateProfile_AddressWrittenWhole(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{
		ID: "u1", Name: "Alice", Email: "a@x.com", PasswordHash: "h",
		Address: &domain.Address{Street: "Old St", City: "Oldtown"},
	})

	u, err := svc.UpdateProfile(context.Background(), "u1", ProfileUpdate{
		Address: &domain.Address{Street: "New St"},
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Address == nil || u.Address.Street != "New St" {
		t.Fatalf("expected new street, got %+v", u.Address)
	}
	if u.Address.City != "" {
		t.Fatalf("expected address replaced whole, got %+v", u.Address)
	}
}

func TestUpdateProfile_UserGone_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{Name: strp("X")})
	requireErrCode(t, err, "user_not_found")
}
