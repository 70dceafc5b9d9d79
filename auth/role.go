package auth

import (
	"fmt"
	"strings"
)

// Higher roles are not implied to include lower roles, see the registry.
type Role int

const (
	Reader Role = 1
	Writer Role = 2
	Admin  Role = 3
)

// Roles lists all valid roles.
var Roles = []Role{Admin, Writer, Reader}

// ParseRole normalizes a role name. It accepts any casing, like "admin" or "ADMIN".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return Admin, nil
	case "writer":
		return Writer, nil
	case "reader":
		return Reader, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	case Writer:
		return "writer"
	case Reader:
		return "reader"
	}
	return "unknown"
}

func (r Role) Valid() bool {
	switch r {
	case Admin, Writer, Reader:
		return true
	default:
		return false
	}
}
