package routes

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"homekeep/middleware"
	"homekeep/models"
	"homekeep/services"
)

type ItemHandler struct {
	items *services.ItemService
}

func NewItemHandler(items *services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// ItemRoutes sets up the item routes.
func ItemRoutes(router *gin.Engine, h *ItemHandler) {
	items := router.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("", h.Create())
		items.GET("", h.List())
		items.GET("/:id", h.Get())
		items.PUT("/:id", h.Update())
		items.DELETE("/:id", h.Delete())
	}
}

type itemRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	Categories   []string   `json:"categories"`
	Quantity     int        `json:"quantity"`
	Price        *float64   `json:"price"`
	PurchaseDate *time.Time `json:"purchase_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	ImageUrl     string     `json:"image_url"`
	LocationID   *uint      `json:"location_id"`
}

func (r itemRequest) model() models.Item {
	return models.Item{
		Name:         r.Name,
		Description:  r.Description,
		Categories:   r.Categories,
		Quantity:     r.Quantity,
		Price:        r.Price,
		PurchaseDate: r.PurchaseDate,
		ExpiryDate:   r.ExpiryDate,
		ImageUrl:     r.ImageUrl,
		LocationID:   r.LocationID,
	}
}

func (h *ItemHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item := req.model()
		created, err := h.items.Create(c.Request.Context(), userID, &item)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

// List returns the caller's items, optionally filtered. ?search matches name
// and description case-insensitively, ?location_id scopes the result to that
// location and everything nested under it, ?categories=a,b keeps items
// carrying at least one of the labels.
func (h *ItemHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var locationID *uint
		if raw := c.Query("location_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location_id"})
				return
			}
			lid := uint(id)
			locationID = &lid
		}

		var categories []string
		if raw := c.Query("categories"); raw != "" {
			categories = strings.Split(raw, ",")
		}

		offset, limit := pagination(c)
		items, err := h.items.Search(c.Request.Context(), userID, c.Query("search"), locationID, categories, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func (h *ItemHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		item, err := h.items.Get(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (h *ItemHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}

		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated, err := h.items.Update(c.Request.Context(), userID, id, req.model())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func (h *ItemHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, err := h.items.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	}
}
