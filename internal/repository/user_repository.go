package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when creating a user with a duplicate username
var ErrUsernameTaken = errors.New("username already taken")

// User is the stub account record. No route authenticates against it; the
// analysis endpoint is anonymous.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// InsertUser is the creation payload for a User
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRepository defines user storage operations
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, insert InsertUser) (*User, error)
}

// memoryUserRepository keeps users in process memory only
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*User),
	}
}

func (r *memoryUserRepository) GetUser(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, insert InsertUser) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == insert.Username {
			return nil, ErrUsernameTaken
		}
	}

	user := &User{
		ID:       uuid.NewString(),
		Username: insert.Username,
		Password: insert.Password,
	}
	r.users[user.ID] = user

	copied := *user
	return &copied, nil
}
