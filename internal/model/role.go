package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is ordered by privilege: USER < MANAGER < ADMIN.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.rank() >= other.rank()
}

// ParseRole accepts any casing; an empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleUser, nil
	}
	r := Role(strings.ToUpper(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type Action string

const (
	ActionProductRead      Action = "product:read"
	ActionManagementRead   Action = "management:read"
	ActionManagementCreate Action = "management:create"
	ActionManagementUpdate Action = "management:update"
	ActionManagementDelete Action = "management:delete"
	ActionAdminRead        Action = "admin:read"
	ActionAdminCreate      Action = "admin:create"
	ActionAdminUpdate      Action = "admin:update"
	ActionAdminDelete      Action = "admin:delete"
	ActionUserProvision    Action = "user:provision"
)

var actionMinRole = map[Action]Role{
	ActionProductRead:      RoleUser,
	ActionManagementRead:   RoleManager,
	ActionManagementCreate: RoleManager,
	ActionManagementUpdate: RoleManager,
	ActionManagementDelete: RoleManager,
	ActionAdminRead:        RoleAdmin,
	ActionAdminCreate:      RoleAdmin,
	ActionAdminUpdate:      RoleAdmin,
	ActionAdminDelete:      RoleAdmin,
	ActionUserProvision:    RoleAdmin,
}

// Allows reports whether role may perform action. Unknown roles and
// unknown actions are denied.
func Allows(role Role, action Action) bool {
	required, ok := actionMinRole[action]
	if !ok {
		return false
	}
	return role.AtLeast(required)
}
