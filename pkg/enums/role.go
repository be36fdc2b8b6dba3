package enums

import (
	"fmt"
	"strings"
)

// Role is the account-level permission of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var validRoles = []Role{
	RoleAdmin,
	RoleUser,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole converts raw input into a Role. Input is matched case-insensitively.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
