package service

import (
	"context"

	"github.com/pageza/usuarios/backend/internal/models"
	"github.com/pageza/usuarios/backend/internal/types"
)

// IUserService defines the interface for user+profile operations
type IUserService interface {
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, req *types.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}
