// Package auth provides the sign-up, sign-in and sign-out endpoints.
// This file, `dto.go`, defines the request and response bodies of those endpoints.
package auth

import "github.com/user/finstarter-go/users"

// RegisterRequest represents the registration request payload.
// Validation tags are checked by users.Validator.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email" example:"jo@example.com"`
	Password  string `json:"password" validate:"required,passwordlen,hasupper,hasdigit" example:"Abcdefgh1234"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50,firstname" example:"Jo"`
}

// LoginRequest represents the login request payload.
// Password strength is not re-checked at login; only presence.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jo@example.com"`
	Password string `json:"password" validate:"required" example:"Abcdefgh1234"`
}

// RegisterResponse is returned with 201 Created.
type RegisterResponse struct {
	Success bool             `json:"success" example:"true"`
	User    users.PublicUser `json:"user"`
}

// SuccessResponse is the JSON logout acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
