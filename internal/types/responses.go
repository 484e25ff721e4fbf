package types

import "github.com/pageza/usuarios/backend/internal/models"

// ProfileResponse is the profile part of a UserResponse
type ProfileResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"perfil_nome"`
}

// UserResponse is the user+profile aggregate returned by every user endpoint
type UserResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"nome"`
	Email   string          `json:"email"`
	Profile ProfileResponse `json:"perfil"`
}

// NewUserResponse maps a user row and its profile to the response shape
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Profile: ProfileResponse{
			ID:   user.Profile.ID,
			Name: user.Profile.Name,
		},
	}
}

// NewUserResponses maps a list of users, returning an empty (non-nil) slice for no users
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Error string `json:"error"`
}
