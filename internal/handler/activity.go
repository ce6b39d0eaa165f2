package handler

import (
	"golf-coach/internal/middleware"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	acts, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, activityViews(acts))
}

// GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, activityView(*a))
}

// POST /api/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var req model.CreateActivityRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, activityView(*a))
}

// PATCH /api/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req model.UpdateActivityRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, activityView(*a))
}
