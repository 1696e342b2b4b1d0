package auth

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"metaads-dashboard/config"
	"metaads-dashboard/database"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const loginTokenTTL = 15 * time.Minute

func isEmailValid(email string) bool {
	pattern := `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func generateLoginToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Login serves POST /auth/login (form-encoded email). Always 204 on a
// well-formed email — the response never reveals whether an account exists.
// First-time emails are provisioned with a trial, so the magic link is also
// the signup flow.
func Login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	if email == "" || !isEmailValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	next := c.PostForm("next")
	if !strings.HasPrefix(next, "/") {
		next = ""
	}

	user, err := findOrCreateEmailUser(email)
	if err != nil {
		slog.Warn("login_provision_failed", "request_id", middleware.RequestID(c), "error", err)
		c.Status(http.StatusNoContent)
		return
	}

	// One live link per user
	database.DB.Where("user_id = ?", user.ID).Delete(&users.LoginToken{})

	token, err := generateLoginToken()
	if err != nil {
		slog.Warn("login_token_generate_failed", "request_id", middleware.RequestID(c), "error", err)
		c.Status(http.StatusNoContent)
		return
	}
	lt := users.LoginToken{
		UserID:    user.ID,
		Token:     token,
		Next:      next,
		ExpiresAt: time.Now().Add(loginTokenTTL),
	}
	if err := database.DB.Create(&lt).Error; err != nil {
		slog.Warn("login_token_store_failed", "request_id", middleware.RequestID(c), "error", err)
		c.Status(http.StatusNoContent)
		return
	}

	if err := SendLoginEmail(user.Email, token); err != nil {
		slog.Warn("login_email_failed", "request_id", middleware.RequestID(c), "error", err)
	}

	c.Status(http.StatusNoContent)
}

// Verify serves GET /auth/verify?token=... — completes the magic-link flow,
// sets the session cookie and returns the browser to where it was headed.
func Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var lt users.LoginToken
	if err := database.DB.Where("token = ?", token).First(&lt).Error; err != nil || lt.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, lt.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if !user.IsVerified {
		database.DB.Model(&users.User{}).Where("id = ?", user.ID).Update("is_verified", true)
	}
	database.DB.Delete(&lt)

	tokenString, err := IssueSessionJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}
	SetSessionCookie(c, tokenString)

	next := lt.Next
	if !strings.HasPrefix(next, "/") || next == "" {
		next = "/dashboard"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout clears both the session and the advisory block cookie. Spent
// impersonation tickets live in the tab's session storage, so dropping the
// session orphans them too.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.SetCookie(middleware.BlockCookie, "", -1, "/", "", false, false)

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Status(http.StatusNoContent)
}

func findOrCreateEmailUser(email string) (users.User, error) {
	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil {
		return user, nil
	}

	now := time.Now()
	trialEnd := now.AddDate(0, 0, 14)

	user = users.User{
		Name:         email[:strings.Index(email, "@")],
		Email:        email,
		AuthProvider: "email",
		Role:         "user",
		IsVerified:   false,
		TrialStartAt: &now,
		TrialEndAt:   &trialEnd,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return users.User{}, err
	}
	return user, nil
}

func IssueSessionJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		middleware.SessionCookie,
		token,
		int((24 * time.Hour).Seconds()),
		"/",
		"",    // domain (set in prod)
		false, // secure (true in prod HTTPS)
		true,  // httpOnly
	)
}
