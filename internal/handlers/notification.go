package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/shafina/squadgoals/internal/middleware"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/shafina/squadgoals/pkg/dto"
)

type NotificationHandler struct {
	notificationService NotificationServiceInterface
	userService         UserServiceInterface
}

func NewNotificationHandler(notificationService NotificationServiceInterface, userService UserServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
	}
}

func (h *NotificationHandler) List(c *drift.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	recent := c.QueryParam("recent") != "false"

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			c.BadRequest("invalid limit")
			return
		}
		limit = n
	}

	notifications, err := h.notificationService.ListForUser(context.Background(), user.ID, recent, limit)
	if err != nil {
		c.InternalServerError("failed to list notifications")
		return
	}

	response := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		response[i] = dto.NotificationResponseFrom(&notifications[i])
	}

	_ = c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkRead(c *drift.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid notification id")
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(context.Background(), notificationID, user.ID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.NotFound("notification not found")
			return
		}
		c.InternalServerError("failed to mark notification read")
		return
	}

	_ = c.JSON(http.StatusOK, map[string]string{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *drift.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(context.Background(), user.ID); err != nil {
		c.InternalServerError("failed to mark notifications read")
		return
	}

	_ = c.JSON(http.StatusOK, map[string]string{"message": "all notifications marked as read"})
}

func (h *NotificationHandler) resolveUser(c *drift.Context) (*models.User, bool) {
	authUID := middleware.GetAuthUID(c)
	if authUID == "" {
		c.Unauthorized("not authenticated")
		return nil, false
	}

	user, err := h.userService.GetByAuthUID(context.Background(), authUID)
	if err != nil {
		c.NotFound("user not found")
		return nil, false
	}
	return user, true
}
