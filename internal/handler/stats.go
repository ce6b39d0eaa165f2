package handler

import (
	"golf-coach/internal/middleware"
	"golf-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GET /api/user
func (h *StatsHandler) User(c *gin.Context) {
	u, err := h.svc.User(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userView(u))
}

// GET /api/stats
func (h *StatsHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardView(d))
}

// GET /api/performance
func (h *StatsHandler) RoundPerformance(c *gin.Context) {
	p, err := h.svc.RoundPerformance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/performance/activities
func (h *StatsHandler) ActivityPerformance(c *gin.Context) {
	p, err := h.svc.ActivityPerformance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
