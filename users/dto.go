package users

import "time"

// ProfileResponse is the signed-in user's own profile.
// @Description Profile of the signed-in user
type ProfileResponse struct {
	ID        string    `json:"id" example:"6f1c2a8e-3d4b-4f7a-9c61-2b5e8d9a0f13"`
	Email     string    `json:"email" example:"jo@example.com"`
	FirstName string    `json:"firstName" example:"Jo"`
	CreatedAt time.Time `json:"createdAt" example:"2025-03-01T10:30:00Z"`
}

// UpdateProfileRequest changes profile fields. Email and password are not
// editable here.
// @Description Request body for updating the profile
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,firstname" example:"Jo"`
}

// ChangePasswordRequest replaces the password after re-checking the current one.
// @Description Request body for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"Abcdefgh1234"`
	NewPassword     string `json:"newPassword" validate:"required,passwordlen,hasupper,hasdigit" example:"Zyxwvuts9876"`
}

func newProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		CreatedAt: u.CreatedAt,
	}
}
