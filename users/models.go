// Package users owns user records: the credential store (password hashing and
// verification, email uniqueness) and the profile endpoints for a signed-in user.
package users

import "time"

// User represents a stored user record.
// PasswordHash is only populated when a lookup explicitly asks for it and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID        string `json:"id" example:"6f1c2a8e-3d4b-4f7a-9c61-2b5e8d9a0f13"`
	Email     string `json:"email" example:"jo@example.com"`
	FirstName string `json:"firstName" example:"Jo"`
}

// Public strips everything but the public fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, FirstName: u.FirstName}
}
