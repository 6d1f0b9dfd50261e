package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the access level of a user. Only the two values below exist;
// strings are produced and parsed at the storage and JSON boundaries.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

const (
	roleUserName  = "user"
	roleAdminName = "admin"
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminName
	default:
		return roleUserName
	}
}

// ParseRole accepts the stored names plus the legacy "ROLE_" prefixed forms.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "role_")
	switch s {
	case roleUserName, "usuari":
		return RoleUser, nil
	case roleAdminName:
		return RoleAdmin, nil
	}
	return RoleUser, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
