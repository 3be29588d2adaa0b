package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homekeep/middleware"
	"homekeep/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// StatsRoutes sets up the dashboard statistics routes.
func StatsRoutes(router *gin.Engine, h *StatsHandler) {
	stats := router.Group("/stats")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/dashboard", h.Dashboard())
		stats.GET("/popular-locations", h.PopularLocations())
	}
}

func (h *StatsHandler) Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		dashboard, err := h.stats.Dashboard(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

func (h *StatsHandler) PopularLocations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
		rows, err := h.stats.PopularLocations(c.Request.Context(), userID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
