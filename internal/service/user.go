package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/internal/models"
	"github.com/pageza/usuarios/backend/internal/types"
)

var (
	ErrInvalidInput = errors.New("missing required field")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserService handles user and profile persistence
type UserService struct {
	db *gorm.DB
}

// Ensure UserService implements IUserService
var _ IUserService = (*UserService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db: db,
	}
}

// CreateUser creates a user and its profile in a single create call.
// The email check runs before the insert; the unique index catches a concurrent duplicate.
func (s *UserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	if !req.Complete() {
		return nil, ErrInvalidInput
	}

	taken, err := s.emailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Profile: models.Profile{
			Name: req.Profile.Name,
		},
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err, "create user")
	}

	return user, nil
}

// ListUsers returns every user with its profile, ordered by id
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Profile").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	// Convert to []*models.User
	result := make([]*models.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// GetUser retrieves a user and its profile by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, translateError(err, "get user")
	}
	return &user, nil
}

// UpdateUser applies a partial update. Omitted user fields keep their stored value,
// and the profile row is only touched when a non-empty profile name is supplied.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *types.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &types.UpdateUserRequest{}
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		taken, err := s.emailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	updates := map[string]interface{}{
		"nome":  valueOr(req.Name, user.Name),
		"email": valueOr(req.Email, user.Email),
		"senha": valueOr(req.Password, user.Password),
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, translateError(err, "update user")
	}

	if req.ProfileName != nil && *req.ProfileName != "" {
		err := s.db.WithContext(ctx).
			Model(&models.Profile{}).
			Where("id = ?", user.ProfileID).
			Update("perfil_nome", *req.ProfileName).Error
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes the user row and then its profile row.
// The two deletes are independent statements, not one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return translateError(err, "get user")
	}

	if err := s.db.WithContext(ctx).Delete(&models.User{}, user.ID).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Profile{}, user.ProfileID).Error; err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	return nil
}

func (s *UserService) emailExists(ctx context.Context, email string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("find user by email: %w", err)
}

func translateError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailTaken
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
