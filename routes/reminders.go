package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"homekeep/middleware"
	"homekeep/models"
	"homekeep/services"
)

type ReminderHandler struct {
	reminders *services.ReminderService
}

func NewReminderHandler(reminders *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// ReminderRoutes sets up the reminder routes.
func ReminderRoutes(router *gin.Engine, h *ReminderHandler) {
	reminders := router.Group("/reminders")
	reminders.Use(middleware.AuthMiddleware())
	{
		reminders.POST("", h.Create())
		reminders.GET("", h.List())
		reminders.GET("/:id", h.Get())
		reminders.PUT("/:id", h.Update())
		reminders.DELETE("/:id", h.Delete())
		reminders.POST("/:id/complete", h.Complete())
	}
}

type reminderRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	DueDate     time.Time         `json:"due_date"`
	RepeatType  models.RepeatType `json:"repeat_type"`
	IsCompleted bool              `json:"is_completed"`
	ItemID      *uint             `json:"item_id"`
}

func (r reminderRequest) model() models.Reminder {
	return models.Reminder{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		RepeatType:  r.RepeatType,
		IsCompleted: r.IsCompleted,
		ItemID:      r.ItemID,
	}
}

func (h *ReminderHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req reminderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		rem := req.model()
		created, err := h.reminders.Create(c.Request.Context(), userID, &rem)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

// List returns the caller's reminders. ?due=true narrows to overdue
// unfinished reminders, ?upcoming=true to reminders falling due within
// ?days (default 7), and ?item_id to a single item's reminders.
func (h *ReminderHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		ctx := c.Request.Context()

		if raw := c.Query("item_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id"})
				return
			}
			reminders, err := h.reminders.ByItem(ctx, userID, uint(id))
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, reminders)
			return
		}

		if c.Query("due") == "true" {
			reminders, err := h.reminders.Due(ctx, userID)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, reminders)
			return
		}

		if c.Query("upcoming") == "true" {
			days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
			reminders, err := h.reminders.Upcoming(ctx, userID, days)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, reminders)
			return
		}

		offset, limit := pagination(c)
		reminders, err := h.reminders.List(ctx, userID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reminders)
	}
}

func (h *ReminderHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		rem, err := h.reminders.Get(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rem)
	}
}

func (h *ReminderHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}

		var req reminderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated, err := h.reminders.Update(c.Request.Context(), userID, id, req.model())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func (h *ReminderHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		if _, err := h.reminders.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
	}
}

// Complete marks a reminder done. Re-completing answers 200 with the
// reminder unchanged.
func (h *ReminderHandler) Complete() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		id, ok := pathID(c)
		if !ok {
			return
		}
		rem, err := h.reminders.Complete(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, rem)
	}
}
