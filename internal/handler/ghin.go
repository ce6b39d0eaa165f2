package handler

import (
	"golf-coach/internal/logger"
	"golf-coach/internal/middleware"
	"golf-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	onboardingConnected = "/onboarding?status=connected"
	onboardingError     = "/onboarding?status=error"
)

type GhinHandler struct {
	svc *service.GhinService
}

func NewGhinHandler(svc *service.GhinService) *GhinHandler {
	return &GhinHandler{svc: svc}
}

// GET /api/ghin/auth-url
func (h *GhinHandler) AuthURL(c *gin.Context) {
	u, err := h.svc.AuthURL(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authUrl": u})
}

// GET /api/ghin/callback?code=...&state=...
//
// Always answers with a redirect; the browser lands on the onboarding page
// either way.
func (h *GhinHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	if e := c.Query("error"); e != "" {
		logger.Ctx(ctx).Warn("ghin.callback.denied", "error", e, "description", c.Query("error_description"))
		c.Redirect(http.StatusFound, onboardingError)
		return
	}
	if _, err := h.svc.Callback(ctx, c.Query("code"), c.Query("state")); err != nil {
		logger.Ctx(ctx).Warn("ghin.callback.failed", "err", err)
		c.Redirect(http.StatusFound, onboardingError)
		return
	}
	c.Redirect(http.StatusFound, onboardingConnected)
}

// POST /api/ghin/sync
func (h *GhinHandler) Sync(c *gin.Context) {
	res, err := h.svc.Sync(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, syncView(res))
}

// POST /api/ghin/disconnect
func (h *GhinHandler) Disconnect(c *gin.Context) {
	if err := h.svc.Disconnect(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
