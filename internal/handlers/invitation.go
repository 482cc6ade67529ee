package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/shafina/squadgoals/internal/middleware"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/shafina/squadgoals/pkg/dto"
)

type InvitationHandler struct {
	invitationService InvitationServiceInterface
	userService       UserServiceInterface
}

func NewInvitationHandler(invitationService InvitationServiceInterface, userService UserServiceInterface) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		userService:       userService,
	}
}

// List returns the caller's invitations filtered by status, newest first.
func (h *InvitationHandler) List(c *drift.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	status := strings.ToUpper(c.QueryParam("status"))
	if status == "" {
		status = models.InvitationStatusPending
	}
	if !models.ValidInvitationStatus(status) {
		c.BadRequest("invalid status")
		return
	}

	page := 0
	if pageStr := c.QueryParam("page"); pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 0 {
			c.BadRequest("invalid page")
			return
		}
		page = n
	}

	size := 10
	if sizeStr := c.QueryParam("size"); sizeStr != "" {
		n, err := strconv.Atoi(sizeStr)
		if err != nil || n < 1 {
			c.BadRequest("invalid size")
			return
		}
		size = n
	}

	invitations, total, err := h.invitationService.ListForUser(context.Background(), user.ID, status, page, size)
	if err != nil {
		c.InternalServerError("failed to list invitations")
		return
	}

	content := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		content[i] = dto.InvitationResponseFrom(&invitations[i])
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	_ = c.JSON(http.StatusOK, dto.PaginatedInvitationsResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	})
}

func (h *InvitationHandler) Accept(c *drift.Context) {
	h.respond(c, h.invitationService.Accept, "invitation accepted")
}

func (h *InvitationHandler) Decline(c *drift.Context) {
	h.respond(c, h.invitationService.Decline, "invitation declined")
}

func (h *InvitationHandler) respond(c *drift.Context, op func(ctx context.Context, invitationID, actingUserID uuid.UUID) error, message string) {
	invitationID, err := uuid.Parse(c.Param("invitationId"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := op(context.Background(), invitationID, user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			c.NotFound("invitation not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("you are not the invited user")
		default:
			c.InternalServerError("failed to update invitation")
		}
		return
	}

	_ = c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *InvitationHandler) resolveUser(c *drift.Context) (*models.User, bool) {
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
