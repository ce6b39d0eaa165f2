package handler

import (
	"golf-coach/internal/middleware"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	svc *service.ResourceService
}

func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// GET /api/resources
func (h *ResourceHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(list))
}

// POST /api/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	var req model.CreateResourceRequest
	if !bind(c, &req) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// PATCH /api/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req model.UpdateResourceRequest
	if !bind(c, &req) {
		return
	}
	r, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
