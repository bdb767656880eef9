package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin": RoleAdmin,
		"user":  RoleUser,
		"Admin": RoleUser,
		"admn":  RoleUser,
		"":      RoleUser,
		"root":  RoleUser,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRequire(t *testing.T) {
	admin := Identity{Subject: "a", Role: RoleAdmin}
	user := Identity{Subject: "u", Role: RoleUser}

	if err := Require(admin, RoleAdmin); err != nil {
		t.Fatalf("admin should pass admin check: %v", err)
	}
	if err := Require(user, RoleAdmin); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if err := Require(user, RoleUser); err != nil {
		t.Fatalf("user should pass user check: %v", err)
	}
	if err := Require(admin, RoleUser); err != nil {
		t.Fatalf("admin should pass user check: %v", err)
	}
}

func TestNewClaims_FourHourLifetime(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewClaims(&User{ID: "u-1", Role: RoleAdmin}, now)

	if c.Subject != "u-1" || c.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if !c.ExpiresAt.Equal(now.Add(4 * time.Hour)) {
		t.Fatalf("expected expiry now+4h, got %s", c.ExpiresAt)
	}
}

func TestIdentityFromClaims_KeepsRolesApart(t *testing.T) {
	if id := IdentityFromClaims(Claims{Subject: "1", Role: "user"}); id.Role != RoleUser || id.IsAdmin() {
		t.Fatalf("user claims must not become admin: %+v", id)
	}
	if id := IdentityFromClaims(Claims{Subject: "2", Role: "admin"}); id.Role != RoleAdmin {
		t.Fatalf("admin claims lost admin role: %+v", id)
	}
}
