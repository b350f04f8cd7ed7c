package users

import "context"

// Repository is the persistence boundary for user records. It only ever
// receives password hashes, never plaintext.
type Repository interface {
	// Insert stores a new user, assigning ID and CreatedAt, and returns the
	// stored record without its hash. A taken email yields ErrDuplicateEmail.
	Insert(ctx context.Context, u *User) (*User, error)

	// GetByEmail looks a user up by normalized email. PasswordHash is only
	// populated when withHash is true.
	GetByEmail(ctx context.Context, email string, withHash bool) (*User, error)

	// GetByID returns the public projection of a user.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetPasswordHash returns only the stored hash for id.
	GetPasswordHash(ctx context.Context, id string) (string, error)

	SetPasswordHash(ctx context.Context, id, hash string) error
	SetFirstName(ctx context.Context, id, firstName string) (*User, error)
}
