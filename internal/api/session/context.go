package session

import "github.com/gin-gonic/gin"

// Context is the per-request identity snapshot the UI renders from. When an
// impersonation ticket is applied the user fields describe the target and
// the context is flagged — the authorization principal underneath is still
// the real admin.
type Context struct {
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsAdmin        bool   `json:"is_admin"`
	IsImpersonated bool   `json:"is_impersonated"`
}

func FromGin(c *gin.Context) Context {
	sc := Context{
		UserID: c.GetUint("user_id"),
		Email:  c.GetString("email"),
		Role:   c.GetString("role"),
	}
	sc.IsAdmin = sc.Role == "admin"

	if c.GetBool("is_impersonated") {
		sc.UserID = c.GetUint("view_user_id")
		sc.Email = c.GetString("view_email")
		sc.Role = "user"
		sc.IsAdmin = false
		sc.IsImpersonated = true
	}

	return sc
}
