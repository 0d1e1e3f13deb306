package models

import (
	"fmt"
)

// Role is the authorization tier of an account. Roles are ordered:
// Client < Employee < Admin.
type Role int

const (
	RoleClient Role = iota + 1
	RoleEmployee
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleClient:   "Client",
	RoleEmployee: "Employee",
	RoleAdmin:    "Admin",
}

// Roles lists every role from lowest to highest tier.
func Roles() []Role {
	return []Role{RoleClient, RoleEmployee, RoleAdmin}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps an account_type name to its Role.
func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// AtLeast returns every role ranked at or above min.
func AtLeast(min Role) []Role {
	var out []Role
	for _, r := range Roles() {
		if r >= min {
			out = append(out, r)
		}
	}
	return out
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Account is the persisted identity record. PasswordHash never leaves the
// store layer except for verification at login.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
}

// NewAccountRequest carries the already validated and hashed registration data.
type NewAccountRequest struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// ProfileUpdate holds the account fields a user may change on the update form.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
}
