package admin

import (
	"net/http"
	"time"

	"metaads-dashboard/config"
	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/billing"
	"metaads-dashboard/internal/domain/impersonation"
	"metaads-dashboard/internal/domain/users"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsVerified     bool       `json:"is_verified"`
	PlanName       *string    `json:"plan_name,omitempty"`
	BillingStatus  string     `json:"billing_status"`
	SoftBlock      bool       `json:"soft_block"`
	HardBlock      bool       `json:"hard_block"`
	ForceAIEnabled *bool      `json:"force_ai_enabled,omitempty"`
	AutoReports    bool       `json:"auto_reports"`
	AIResetAt      *time.Time `json:"ai_reset_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Preload("Plan").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	now := time.Now()
	adminUsers := make([]AdminUser, 0, len(list))
	for _, u := range list {
		var planName *string
		if u.Plan != nil {
			planName = &u.Plan.Name
		}

		st := billing.Resolve(now, u, config.GRACE_PERIOD_DAYS)

		adminUsers = append(adminUsers, AdminUser{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Role:           u.Role,
			IsVerified:     u.IsVerified,
			PlanName:       planName,
			BillingStatus:  string(st.Status),
			SoftBlock:      st.Block.SoftBlock,
			HardBlock:      st.Block.HardBlock,
			ForceAIEnabled: u.ForceAIEnabled,
			AutoReports:    u.AutoReports,
			AIResetAt:      u.AIResetAt,
			CreatedAt:      u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Plan").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Preload("Plan").Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"billing":  billing.Resolve(time.Now(), user, config.GRACE_PERIOD_DAYS),
		"payments": payments,
	})
}

// BeginImpersonation validates the target and hands back the ticket value
// the admin's browser keeps in per-tab session storage. Nothing is persisted
// server-side — the ticket is a view filter, not a credential. Calling it
// twice for the same target yields the same ticket.
func BeginImpersonation(c *gin.Context) {
	var body struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid user_id"})
		return
	}

	var target users.User
	if err := database.DB.First(&target, body.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ticket := impersonation.Ticket{TargetUserID: target.ID}
	audit(c, target.ID, "impersonate_begin", "", "")

	c.JSON(http.StatusOK, gin.H{
		"header":      impersonation.Header,
		"ticket":      ticket.HeaderValue(),
		"redirect_to": "/dashboard",
	})
}

// EndImpersonation only acknowledges: the ticket lives client-side and the
// client clears it.
func EndImpersonation(c *gin.Context) {
	audit(c, 0, "impersonate_end", "", "")
	c.Status(http.StatusNoContent)
}

// ForceAIToggle flips the AI override for a tenant. Like every admin
// mutation it requires a recorded reason and runs as the real admin — the
// impersonation header is never honored here.
func ForceAIToggle(c *gin.Context) {
	var body struct {
		Value  bool   `json:"value"`
		Reason string `json:"reason" binding:"required"`
	}
	target, ok := bindChange(c, &body, &body.Reason)
	if !ok {
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", target.ID).
		Update("force_ai_enabled", body.Value).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	billingstate.Invalidate(c.Request.Context(), target.ID)
	audit(c, target.ID, "force_ai", boolWord(body.Value), body.Reason)
	c.JSON(http.StatusOK, gin.H{"message": "AI override updated"})
}

// ResetAI clears the tenant's AI learning state: the override is removed and
// the reset timestamp lets downstream consumers discard learned data.
func ResetAI(c *gin.Context) {
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	target, ok := bindChange(c, &body, &body.Reason)
	if !ok {
		return
	}

	now := time.Now()
	if err := database.DB.Model(&users.User{}).
		Where("id = ?", target.ID).
		Updates(map[string]interface{}{
			"force_ai_enabled": nil,
			"ai_reset_at":      now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset user"})
		return
	}

	billingstate.Invalidate(c.Request.Context(), target.ID)
	audit(c, target.ID, "reset_ai", "", body.Reason)
	c.JSON(http.StatusOK, gin.H{"message": "AI state reset"})
}

// Toggleable settings fields, json name -> column.
var settingsFields = map[string]string{
	"auto_reports": "auto_reports",
}

// UpdateUserSetting applies one structured {field, value, reason} change.
func UpdateUserSetting(c *gin.Context) {
	var body struct {
		Field  string `json:"field" binding:"required"`
		Value  bool   `json:"value"`
		Reason string `json:"reason" binding:"required"`
	}
	target, ok := bindChange(c, &body, &body.Reason)
	if !ok {
		return
	}

	column, known := settingsFields[body.Field]
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown settings field"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", target.ID).
		Update(column, body.Value).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}

	audit(c, target.ID, "setting:"+body.Field, boolWord(body.Value), body.Reason)
	c.JSON(http.StatusOK, gin.H{"message": "Setting updated"})
}

func boolWord(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
