package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeep/models"
)

// respondError maps domain errors onto HTTP statuses. Conflict responses
// carry a machine-readable reason and the blocking count so the caller can
// resolve the situation.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var hasItems *models.HasItemsError
	var hasChildren *models.HasChildrenError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this record"})
	case errors.As(err, &hasItems):
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cannot delete location with items. Move or delete items first.",
			"reason": "has_items",
			"count":  hasItems.Count,
		})
	case errors.As(err, &hasChildren):
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cannot delete location with sub-locations. Delete sub-locations first.",
			"reason": "has_children",
			"count":  hasChildren.Count,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
