package handler

import (
	"golf-coach/internal/middleware"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Stats     *StatsHandler
	Rounds    *RoundHandler
	Activity  *ActivityHandler
	Resources *ResourceHandler
	Plans     *PlanHandler
	Ghin      *GhinHandler
}

type RouterConfig struct {
	DemoUserID  int
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())

	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.CORSOrigins
		cc.AllowCredentials = true
	}
	r.Use(cors.New(cc))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api", middleware.DemoUser(cfg.DemoUserID))
	api.GET("/user", h.Stats.User)
	api.GET("/stats", h.Stats.Dashboard)
	api.GET("/performance", h.Stats.RoundPerformance)
	api.GET("/performance/activities", h.Stats.ActivityPerformance)

	api.GET("/rounds", h.Rounds.List)
	api.POST("/rounds", h.Rounds.Create)
	api.GET("/rounds/export", h.Rounds.Export)
	api.POST("/rounds/screenshot", h.Rounds.Screenshot)
	api.GET("/rounds/:id", h.Rounds.Get)

	api.GET("/activities", h.Activity.List)
	api.POST("/activities", h.Activity.Create)
	api.GET("/activities/:id", h.Activity.Get)
	api.PATCH("/activities/:id", h.Activity.Update)

	api.GET("/resources", h.Resources.List)
	api.POST("/resources", h.Resources.Create)
	api.PATCH("/resources/:id", h.Resources.Update)
	api.DELETE("/resources/:id", h.Resources.Delete)

	api.GET("/practice-plans", h.Plans.List)
	api.GET("/practice-plans/active", h.Plans.Active)
	api.POST("/practice-plans/generate", h.Plans.Generate)

	api.GET("/ghin/auth-url", h.Ghin.AuthURL)
	api.GET("/ghin/callback", h.Ghin.Callback)
	api.POST("/ghin/sync", h.Ghin.Sync)
	api.POST("/ghin/disconnect", h.Ghin.Disconnect)

	return r
}
