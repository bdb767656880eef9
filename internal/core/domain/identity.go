package domain

import "time"

// SessionLifetime is how long an issued token stays valid.
const SessionLifetime = 4 * time.Hour

// Claims is the payload carried inside every session token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// NewClaims builds the claims for a freshly signed-in user.
func NewClaims(u *User, now time.Time) Claims {
	return Claims{
		Subject:   u.ID,
		Role:      u.Role.String(),
		ExpiresAt: now.Add(SessionLifetime),
	}
}

// Identity is the authenticated caller of a single request.
type Identity struct {
	Subject string
	Role    Role
}

// IdentityFromClaims maps decoded claims to an Identity. Role strings are
// parsed with ParseRole, so unknown roles become RoleUser.
func IdentityFromClaims(c Claims) Identity {
	return Identity{Subject: c.Subject, Role: ParseRole(c.Role)}
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Require checks that id holds at least min. With two roles this only ever
// rejects a non-admin identity on an admin-only operation.
func Require(id Identity, min Role) error {
	if min == RoleAdmin && id.Role != RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}
