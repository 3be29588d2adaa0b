package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homekeep/middleware"
	"homekeep/models"
	"homekeep/services"
)

type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// LocationRoutes sets up the location routes.
func LocationRoutes(router *gin.Engine, h *LocationHandler) {
	locations := router.Group("/locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.POST("", h.Create())
		locations.GET("", h.List())
		locations.GET("/tree", h.Tree())
		locations.GET("/:id", h.Get())
		locations.PUT("/:id", h.Update())
		locations.DELETE("/:id", h.Delete())
	}
}

type locationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageUrl    string `json:"image_url"`
	ParentID    *uint  `json:"parent_id"`
}

func (h *LocationHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req locationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		loc := models.Location{
			Name:        req.Name,
			Description: req.Description,
			ImageUrl:    req.ImageUrl,
			ParentID:    req.ParentID,
		}
		created, err := h.locations.Create(c.Request.Context(), userID, &loc)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

// List returns the caller's locations. Without a parent_id query parameter
// every location is returned; ?parent_id=root restricts to the top level and
// a numeric ?parent_id=N to the direct children of N.
func (h *LocationHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		parentParam, hasParent := c.GetQuery("parent_id")
		if !hasParent {
			offset, limit := pagination(c)
			locations, err := h.locations.List(c.Request.Context(), userID, offset, limit)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, locations)
			return
		}

		var parentID *uint
		if parentParam != "root" && parentParam != "0" {
			id, err := strconv.ParseUint(parentParam, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent_id"})
				return
			}
			pid := uint(id)
			parentID = &pid
		}

		locations, err := h.locations.Children(c.Request.Context(), userID, parentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, locations)
	}
}

// Tree returns the caller's full location hierarchy, nested under its roots.
func (h *LocationHandler) Tree() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		tree, err := h.locations.Tree(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

func (h *LocationHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		loc, err := h.locations.Get(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, loc)
	}
}

func (h *LocationHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}

		var req locationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated, err := h.locations.Update(c.Request.Context(), userID, id, models.Location{
			Name:        req.Name,
			Description: req.Description,
			ImageUrl:    req.ImageUrl,
			ParentID:    req.ParentID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// Delete removes a location. A location that still has items or
// sub-locations is not deleted; the handler answers 409 with the reason.
func (h *LocationHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		deleted, err := h.locations.Delete(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Location deleted successfully",
			"location": deleted,
		})
	}
}

// pathID parses the :id path parameter, answering 400 itself on garbage.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// pagination reads ?page and ?page_size with sane defaults and caps.
func pagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if err != nil || size < 1 {
		size = 50
	}
	if size > 200 {
		size = 200
	}
	return (page - 1) * size, size
}
