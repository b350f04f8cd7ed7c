package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It backs tests and
// STORE_BACKEND=memory; nothing survives a restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string // email -> id
	now     func() time.Time
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Insert(_ context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return nil, ErrDuplicateEmail
	}

	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	return public(&stored), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string, withHash bool) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := *r.byID[id]
	if !withHash {
		u.PasswordHash = ""
	}
	return &u, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return public(u), nil
}

func (r *MemoryRepository) GetPasswordHash(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return "", ErrNotFound
	}
	return u.PasswordHash, nil
}

func (r *MemoryRepository) SetPasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *MemoryRepository) SetFirstName(_ context.Context, id, firstName string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.FirstName = firstName
	return public(u), nil
}

// public copies u without its hash.
func public(u *User) *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

var _ Repository = (*MemoryRepository)(nil)
