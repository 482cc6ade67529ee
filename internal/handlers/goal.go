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

type GoalHandler struct {
	goalService GoalServiceInterface
	userService UserServiceInterface
}

func NewGoalHandler(goalService GoalServiceInterface, userService UserServiceInterface) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		userService: userService,
	}
}

// Create builds a goal with the caller as the squad's only member and invites
// the requested squad users.
func (h *GoalHandler) Create(c *drift.Context) {
	creator, ok := h.resolveUser(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}
	if req.Timezone == "" {
		c.BadRequest("timezone is required")
		return
	}
	if req.StartAt.IsZero() {
		c.BadRequest("start_at is required")
		return
	}
	if !models.ValidFrequency(req.Frequency) {
		c.BadRequest("frequency must be one of DAILY, WEEKLY, MONTHLY")
		return
	}

	goal, err := h.goalService.Create(context.Background(), creator, services.CreateGoalParams{
		Title:        req.Title,
		Description:  req.Description,
		Timezone:     req.Timezone,
		StartAt:      req.StartAt,
		Frequency:    req.Frequency,
		IsPublic:     req.Public,
		TagNames:     req.TagNames,
		SquadUserIDs: req.SquadUserIDs,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("invited user not found")
			return
		}
		c.InternalServerError("failed to create goal")
		return
	}

	_ = c.JSON(http.StatusCreated, dto.GoalResponseFrom(goal))
}

// ListPublic returns public goals, newest first by default.
func (h *GoalHandler) ListPublic(c *drift.Context) {
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

	goals, err := h.goalService.GetPublicGoals(context.Background(), recent, limit)
	if err != nil {
		c.InternalServerError("failed to list goals")
		return
	}

	response := make([]dto.GoalResponse, len(goals))
	for i := range goals {
		response[i] = dto.GoalResponseFrom(&goals[i])
	}

	_ = c.JSON(http.StatusOK, response)
}

// Get returns a goal with its squad and tags. Public goals are visible to
// anyone authenticated; private goals only to squad members.
func (h *GoalHandler) Get(c *drift.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		c.BadRequest("invalid goal id")
		return
	}

	goal, err := h.goalService.GetByID(context.Background(), goalID)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			c.NotFound("goal not found")
			return
		}
		c.InternalServerError("failed to get goal")
		return
	}

	if !goal.IsPublic {
		user, ok := h.resolveUser(c)
		if !ok {
			return
		}

		isMember, err := h.goalService.IsSquadMember(context.Background(), goalID, user.ID)
		if err != nil || !isMember {
			c.Forbidden("you do not have access to this goal")
			return
		}
	}

	if goal.Squad, err = h.goalService.GetSquad(context.Background(), goalID); err != nil {
		c.InternalServerError("failed to load squad")
		return
	}
	if goal.Tags, err = h.goalService.GetTags(context.Background(), goalID); err != nil {
		c.InternalServerError("failed to load tags")
		return
	}

	_ = c.JSON(http.StatusOK, dto.GoalResponseFrom(goal))
}

func (h *GoalHandler) resolveUser(c *drift.Context) (*models.User, bool) {
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
