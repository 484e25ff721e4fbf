package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/internal/models"
	"github.com/pageza/usuarios/backend/internal/testhelpers"
	"github.com/pageza/usuarios/backend/internal/types"
)

func strPtr(s string) *string { return &s }

func newCreateRequest(name, email string) *types.CreateUserRequest {
	return &types.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "secret",
		Profile:  &types.CreateProfileRequest{Name: "admin"},
	}
}

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := testhelpers.SetupTestDatabase(t)
	return NewUserService(db), db
}

func TestCreateUser(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, uint(1), user.Profile.ID)
	assert.Equal(t, user.Profile.ID, user.ProfileID)
	assert.Equal(t, "admin", user.Profile.Name)

	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *types.CreateUserRequest)
	}{
		{"missing name", func(r *types.CreateUserRequest) { r.Name = "" }},
		{"missing email", func(r *types.CreateUserRequest) { r.Email = "" }},
		{"missing password", func(r *types.CreateUserRequest) { r.Password = "" }},
		{"missing profile", func(r *types.CreateUserRequest) { r.Profile = nil }},
		{"missing profile name", func(r *types.CreateUserRequest) { r.Profile.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newCreateRequest("Ana", "ana@x.com")
			tt.mutate(req)

			_, err := svc.CreateUser(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, newCreateRequest("Outra Ana", "ana@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)
}

func TestUniqueIndexCatchesDuplicate(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	require.NoError(t, err)

	// Bypass the pre-check, as a concurrent request would
	err = db.Create(&models.User{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "x",
		Profile:  models.Profile{Name: "user"},
	}).Error
	assert.ErrorIs(t, translateError(err, "create user"), ErrEmailTaken)
}

func TestGetUser(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.Profile.ID, got.Profile.ID)
	assert.Equal(t, created.Profile.Name, got.Profile.Name)

	_, err = svc.GetUser(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.CreateUser(ctx, newCreateRequest(email, email))
		require.NoError(t, err)
	}

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, u := range users {
		assert.Equal(t, uint(i+1), u.ID)
		assert.Equal(t, "admin", u.Profile.Name)
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("omitted fields keep their values", func(t *testing.T) {
		svc, _ := setupUserService(t)
		created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)

		updated, err := svc.UpdateUser(ctx, created.ID, &types.UpdateUserRequest{Name: strPtr("Ana Maria")})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.Name)
		assert.Equal(t, "ana@x.com", updated.Email)
		assert.Equal(t, "secret", updated.Password)
		assert.Equal(t, "admin", updated.Profile.Name)
	})

	t.Run("empty request changes nothing", func(t *testing.T) {
		svc, _ := setupUserService(t)
		created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)

		updated, err := svc.UpdateUser(ctx, created.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.Name)
		assert.Equal(t, "admin", updated.Profile.Name)
	})

	t.Run("profile name", func(t *testing.T) {
		svc, _ := setupUserService(t)
		created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)

		updated, err := svc.UpdateUser(ctx, created.ID, &types.UpdateUserRequest{ProfileName: strPtr("editor")})
		require.NoError(t, err)
		assert.Equal(t, "editor", updated.Profile.Name)
		assert.Equal(t, created.Profile.ID, updated.Profile.ID)

		// an empty profile name is ignored
		updated, err = svc.UpdateUser(ctx, created.ID, &types.UpdateUserRequest{ProfileName: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "editor", updated.Profile.Name)
	})

	t.Run("explicit empty value is stored", func(t *testing.T) {
		svc, _ := setupUserService(t)
		created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)

		updated, err := svc.UpdateUser(ctx, created.ID, &types.UpdateUserRequest{Name: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Name)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		svc, _ := setupUserService(t)
		_, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)
		bia, err := svc.CreateUser(ctx, newCreateRequest("Bia", "bia@x.com"))
		require.NoError(t, err)

		_, err = svc.UpdateUser(ctx, bia.ID, &types.UpdateUserRequest{
			Name:  strPtr("Changed"),
			Email: strPtr("ana@x.com"),
		})
		assert.ErrorIs(t, err, ErrEmailTaken)

		got, err := svc.GetUser(ctx, bia.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bia", got.Name)
		assert.Equal(t, "bia@x.com", got.Email)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		svc, _ := setupUserService(t)
		created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
		require.NoError(t, err)

		_, err = svc.UpdateUser(ctx, created.ID, &types.UpdateUserRequest{Email: strPtr("ana@x.com")})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := setupUserService(t)

		_, err := svc.UpdateUser(ctx, 42, &types.UpdateUserRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, db := setupUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var profile models.Profile
	err = db.First(&profile, created.Profile.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteUser(ctx, created.ID), ErrUserNotFound)

	// the email can be registered again
	_, err = svc.CreateUser(ctx, newCreateRequest("Ana", "ana@x.com"))
	assert.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
