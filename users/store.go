package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type createInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,passwordlen,hasupper,hasdigit"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50,firstname"`
}

type passwordInput struct {
	Password string `json:"password" validate:"required,passwordlen,hasupper,hasdigit"`
}

type profileInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,firstname"`
}

// CredentialStore creates users and checks their passwords. Plaintext
// passwords stop here: the repository below only ever sees hashes.
type CredentialStore struct {
	repo      Repository
	hasher    Hasher
	validator *Validator

	dummyOnce sync.Once
	dummyHash string
	dummyErr  error
}

// NewCredentialStore wires a store over repo.
func NewCredentialStore(repo Repository, hasher Hasher, validator *Validator) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher, validator: validator}
}

// Create validates the input, hashes the password and stores a new user.
// The returned record never carries the hash. Validation failures come back
// as an apperror ValidationError; a taken email as ErrDuplicateEmail.
func (s *CredentialStore) Create(ctx context.Context, email, password, firstName string) (*User, error) {
	in := createInput{
		Email:     NormalizeEmail(email),
		Password:  password,
		FirstName: strings.TrimSpace(firstName),
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Insert(ctx, &User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
	})
}

// FindByEmail looks a user up by email. The hash is included only when asked for.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string, includePasswordHash bool) (*User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email), includePasswordHash)
}

// FindByID returns the public projection of a user.
func (s *CredentialStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// VerifyPassword compares candidate against the user's stored hash. The
// user must have been loaded with its hash.
func (s *CredentialStore) VerifyPassword(u *User, candidate string) (bool, error) {
	if u.PasswordHash == "" {
		return false, errors.New("user loaded without password hash")
	}
	return s.hasher.Verify(candidate, u.PasswordHash)
}

// UpdatePassword validates and re-hashes newPassword for user id.
func (s *CredentialStore) UpdatePassword(ctx context.Context, id, newPassword string) error {
	if err := s.validator.Struct(passwordInput{Password: newPassword}); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.SetPasswordHash(ctx, id, hash)
}

// UpdateProfile changes profile fields only; the password hash is never touched.
func (s *CredentialStore) UpdateProfile(ctx context.Context, id, firstName string) (*User, error) {
	in := profileInput{FirstName: strings.TrimSpace(firstName)}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.repo.SetFirstName(ctx, id, in.FirstName)
}

// Authenticate resolves email and password to a user. An unknown email and a
// wrong password both yield ErrInvalidCredentials, and both pay for one
// bcrypt comparison.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.FindByEmail(ctx, email, true)
	if errors.Is(err, ErrNotFound) {
		s.burnComparison(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.VerifyPassword(u, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return public(u), nil
}

// ChangePassword replaces the password of user id after checking current.
// A wrong current password yields ErrInvalidCredentials.
func (s *CredentialStore) ChangePassword(ctx context.Context, id, current, newPassword string) error {
	hash, err := s.repo.GetPasswordHash(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(current, hash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return s.UpdatePassword(ctx, id, newPassword)
}

func (s *CredentialStore) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, s.dummyErr = s.hasher.Hash("dummy-password-for-timing")
	})
	if s.dummyErr == nil {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
