package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"homekeep/middleware"
)

type UserHandler struct {
	users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// UserRoutes sets up the authenticated profile routes. Users can only ever
// see and change their own record; the id comes from the token, not the URL.
func UserRoutes(router *gin.Engine, h *UserHandler) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.Me())
		users.PUT("/me", h.UpdateMe())
		users.DELETE("/me", h.DeleteMe())
	}
}

func (h *UserHandler) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		user, err := h.users.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		})
	}
}

func (h *UserHandler) UpdateMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var updateRequest struct {
			Name     string `json:"name"`
			Email    string `json:"email" binding:"omitempty,email"`
			Password string `json:"password" binding:"omitempty,min=6"`
		}
		if err := c.ShouldBindJSON(&updateRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := h.users.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		if updateRequest.Name != "" {
			user.Name = updateRequest.Name
		}
		if updateRequest.Email != "" {
			user.Email = updateRequest.Email
		}
		if updateRequest.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(updateRequest.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
				return
			}
			user.Password = string(hashed)
		}

		if err := h.users.Update(c.Request.Context(), user); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

func (h *UserHandler) DeleteMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		if err := h.users.Delete(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
