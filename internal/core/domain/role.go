package domain

import (
	"fmt"
	"strings"
)

// Role is a user's privilege level. Roles are ordered, and a higher role
// satisfies every check a lower role does.
type Role int

const (
	RoleUnknown Role = iota // Zero value; satisfies nothing
	RoleViewer
	RoleUser
	RoleManager
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleViewer:  "VIEWER",
	RoleUser:    "USER",
	RoleManager: "MANAGER",
	RoleAdmin:   "ADMIN",
}

// String returns the stored name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid reports whether r is one of the four assignable roles.
func (r Role) IsValid() bool {
	return r >= RoleViewer && r <= RoleAdmin
}

// Satisfies reports whether r meets or exceeds required.
func (r Role) Satisfies(required Role) bool {
	return r.IsValid() && r >= required
}

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
