package api

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/usuarios/backend/internal/middleware"
	"github.com/pageza/usuarios/backend/internal/service"
	"github.com/pageza/usuarios/backend/internal/types"
)

const (
	msgRequiredFields = "Campos obrigatórios: nome, email, senha, perfil.perfil_nome"
	msgEmailTaken     = "Email já cadastrado"
	msgUserNotFound   = "Usuário não encontrado"
	msgUserDeleted    = "Usuário removido com sucesso"
	msgInvalidBody    = "Corpo da requisição inválido"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.IUserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user routes. writeMiddleware only runs on routes that modify data.
func (h *UserHandler) RegisterRoutes(router gin.IRouter, writeMiddleware ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append(make([]gin.HandlerFunc, 0, len(writeMiddleware)+1), writeMiddleware...), handler)
	}

	users := router.Group("/usuarios")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)

		users.POST("", write(h.CreateUser)...)
		users.PUT("/:id", write(h.UpdateUser)...)
		users.DELETE("/:id", write(h.DeleteUser)...)
	}
}

// CreateUser handles POST /usuarios
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msgRequiredFields})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

// ListUsers handles GET /usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponses(users))
}

// GetUser handles GET /usuarios/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, service.ErrUserNotFound)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

// UpdateUser handles PUT /usuarios/:id. An empty body is an update with no fields.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, service.ErrUserNotFound)
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msgInvalidBody})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

// DeleteUser handles DELETE /usuarios/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, service.ErrUserNotFound)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: msgUserDeleted})
}

// respondError maps service errors to status codes. Unexpected errors are attached
// to the context for the request logger and answered with the generic body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msgRequiredFields})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: msgEmailTaken})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: msgUserNotFound})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: middleware.InternalErrorMessage})
	}
}

// parseID reads a path id the way a numeric coercion would: "7", "7.0" and " 7 " are all 7.
// Anything that is not a positive integer can never match a row.
func parseID(raw string) (uint, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 1 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, false
	}
	return uint(f), true
}
