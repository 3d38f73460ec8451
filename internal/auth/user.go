package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is a crew member or office account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore persists user accounts.
type UserStore interface {
	Save(ctx context.Context, u *User) error
	ByUsername(ctx context.Context, username string) (*User, error)
	UpdateRole(ctx context.Context, username string, role Role) error
}

// UserService handles registration and credential checks.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, username, password string, role Role) (*User, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if existing, err := s.store.ByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.store.ByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ChangeRole reassigns a user's role.
func (s *UserService) ChangeRole(ctx context.Context, username string, role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	return s.store.UpdateRole(ctx, username, role)
}
