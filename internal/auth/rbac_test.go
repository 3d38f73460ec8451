package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		cap      Capability
		expected bool
	}{
		{"admin manages users", RoleAdmin, CapManageUsers, true},
		{"admin reads audit log", RoleAdmin, CapAudit, true},
		{"office comments", RoleOffice, CapComment, true},
		{"office cannot edit inventory", RoleOffice, CapEditInventory, false},
		{"office cannot view safety", RoleOffice, CapViewSafety, false},
		{"captain edits inventory", RoleCaptain, CapEditInventory, true},
		{"captain views safety", RoleCaptain, CapViewSafety, true},
		{"captain cannot manage users", RoleCaptain, CapManageUsers, false},
		{"engineer completes tasks", RoleEngineer, CapCompleteTasks, true},
		{"engineer cannot read audit log", RoleEngineer, CapAudit, false},
		{"deckhand views", RoleDeckhand, CapView, true},
		{"deckhand views tasks", RoleDeckhand, CapViewTasks, true},
		{"deckhand cannot complete tasks", RoleDeckhand, CapCompleteTasks, false},
		{"deckhand cannot comment", RoleDeckhand, CapComment, false},
		{"unknown role has nothing", Role("pirate"), CapView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasPermission(tt.role, tt.cap))
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		parsed, err := ParseRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := ParseRole("pirate")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
