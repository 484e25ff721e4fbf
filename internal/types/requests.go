package types

// CreateProfileRequest is the nested profile of a CreateUserRequest
type CreateProfileRequest struct {
	Name string `json:"perfil_nome" binding:"required"`
}

// CreateUserRequest represents the request body for creating a user together with its profile
type CreateUserRequest struct {
	Name     string                `json:"nome" binding:"required"`
	Email    string                `json:"email" binding:"required"`
	Password string                `json:"senha" binding:"required"`
	Profile  *CreateProfileRequest `json:"perfil" binding:"required"`
}

// Complete reports whether every required field, including the nested profile name, is present
func (r *CreateUserRequest) Complete() bool {
	return r != nil &&
		r.Name != "" &&
		r.Email != "" &&
		r.Password != "" &&
		r.Profile != nil &&
		r.Profile.Name != ""
}

// UpdateUserRequest represents the request body for updating a user.
// A nil field keeps the stored value; ProfileName is applied only when non-empty.
type UpdateUserRequest struct {
	Name        *string `json:"nome"`
	Email       *string `json:"email"`
	Password    *string `json:"senha"`
	ProfileName *string `json:"perfil_nome"`
}
