package auth

import (
	"errors"
	"fmt"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is a crew member's job classification. Each role carries a fixed
// capability set; there are no per-user permission overrides.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOffice   Role = "office"
	RoleCaptain  Role = "captain"
	RoleEngineer Role = "engineer"
	RoleDeckhand Role = "deckhand"
)

// Capability is one permission bit checked before an operation.
type Capability uint16

const (
	CapView Capability = 1 << iota
	CapComment
	CapCompleteTasks
	CapEditInventory
	CapViewSafety
	CapViewTasks
	CapAudit
	CapManageUsers
)

var rolePermissions = map[Role]Capability{
	RoleAdmin: CapView | CapComment | CapCompleteTasks | CapEditInventory |
		CapViewSafety | CapViewTasks | CapAudit | CapManageUsers,
	RoleOffice:   CapView | CapComment | CapViewTasks,
	RoleCaptain:  CapView | CapCompleteTasks | CapViewSafety | CapEditInventory | CapViewTasks,
	RoleEngineer: CapView | CapCompleteTasks | CapEditInventory | CapViewSafety | CapViewTasks,
	RoleDeckhand: CapView | CapViewTasks,
}

// HasPermission reports whether the role's capability set includes cap.
// Unknown roles have no capabilities.
func HasPermission(role Role, cap Capability) bool {
	return rolePermissions[role]&cap != 0
}

// ParseRole validates a role name from external input.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := rolePermissions[role]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return role, nil
}

// Roles returns every defined role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOffice, RoleCaptain, RoleEngineer, RoleDeckhand}
}
