package domain

// Role is the closed set of privileges a user account can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a stored or token-carried role string into a Role.
//
// Only the exact string "admin" yields RoleAdmin. Anything else, including
// typos, casing variants and the empty string, falls back to RoleUser, so an
// unrecognised value always ends up with the least privilege.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
