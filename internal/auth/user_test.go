package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*User)}
}

func (s *fakeUserStore) Save(_ context.Context, u *User) error {
	s.users[u.Username] = u
	return nil
}

func (s *fakeUserStore) ByUsername(_ context.Context, username string) (*User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, username string, role Role) error {
	u, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	u, err := svc.Register(context.Background(), "engineer.scott", "warp-core-4ever", RoleEngineer)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "engineer.scott", u.Username)
	assert.Equal(t, RoleEngineer, u.Role)
	assert.NotEqual(t, "warp-core-4ever", u.PasswordHash, "password is stored hashed")
	assert.False(t, u.CreatedAt.IsZero())
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "longenough1", RoleDeckhand)
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Register(ctx, "someone", "short", RoleDeckhand)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "someone", "longenough1", Role("pirate"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "captain.ahab", "whale-hunter", RoleCaptain)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "captain.ahab", "other-password", RoleDeckhand)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "captain.ahab", "whale-hunter", RoleCaptain)
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "captain.ahab", "whale-hunter")
	require.NoError(t, err)
	assert.Equal(t, RoleCaptain, u.Role)

	_, err = svc.Authenticate(ctx, "captain.ahab", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "whale-hunter")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_ChangeRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "deckhand.dan", "eight-chars", RoleDeckhand)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeRole(ctx, "deckhand.dan", RoleEngineer))

	u, err := store.ByUsername(ctx, "deckhand.dan")
	require.NoError(t, err)
	assert.Equal(t, RoleEngineer, u.Role)

	err = svc.ChangeRole(ctx, "deckhand.dan", Role("pirate"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = svc.ChangeRole(ctx, "nobody", RoleEngineer)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
