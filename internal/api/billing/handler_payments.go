package billing

import (
	"net/http"

	"metaads-dashboard/database"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory is a read: it follows the viewer identity, so an admin
// "viewing as" a user sees that user's history.
func GetPaymentHistory(c *gin.Context) {
	userID := middleware.ViewerID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
