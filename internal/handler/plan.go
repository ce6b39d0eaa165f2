package handler

import (
	"golf-coach/internal/middleware"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// GET /api/practice-plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]PlanView, 0, len(plans))
	for i := range plans {
		out = append(out, planView(&plans[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/practice-plans/active
func (h *PlanHandler) Active(c *gin.Context) {
	p, err := h.svc.Active(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, planView(p))
}

// POST /api/practice-plans/generate
func (h *PlanHandler) Generate(c *gin.Context) {
	var req model.GeneratePlanRequest
	if !bind(c, &req) {
		return
	}
	p, err := h.svc.Generate(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, planView(p))
}
