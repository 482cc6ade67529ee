package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/shafina/squadgoals/internal/middleware"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/shafina/squadgoals/pkg/dto"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create provisions the authenticated auth uid as a user.
func (h *UserHandler) Create(c *drift.Context) {
	authUID := middleware.GetAuthUID(c)
	if authUID == "" {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}
	if req.Timezone == "" {
		c.BadRequest("timezone is required")
		return
	}

	user, err := h.userService.Create(context.Background(), authUID, req.Name, req.Email, req.Timezone)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			_ = c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
			return
		}
		c.InternalServerError("failed to create user")
		return
	}

	_ = c.JSON(http.StatusCreated, dto.UserResponseFrom(user))
}

// Search finds users by name or email, excluding the caller.
func (h *UserHandler) Search(c *drift.Context) {
	authUID := middleware.GetAuthUID(c)
	if authUID == "" {
		c.Unauthorized("not authenticated")
		return
	}

	query := c.QueryParam("query")
	if len(query) < 2 {
		c.BadRequest("query must be at least 2 characters long")
		return
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			c.BadRequest("limit cannot be less than 1")
			return
		}
		limit = n
	}

	user, err := h.userService.GetByAuthUID(context.Background(), authUID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	users, err := h.userService.Search(context.Background(), query, user.ID, limit)
	if err != nil {
		c.InternalServerError("failed to search users")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = dto.UserResponseFrom(&users[i])
	}

	_ = c.JSON(http.StatusOK, response)
}
