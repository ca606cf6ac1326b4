package middleware

import (
	"bytes"
	"io"
	"regexp"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// credentialKeyRe matches JSON string fields whose key carries a password
// ("password", "old_password", "new_password", "confirm_password", ...).
var credentialKeyRe = regexp.MustCompile(`"([a-z_]*password[a-z_]*)"\s*:\s*"(?:[^"\\]|\\.)*"`)

// auditAction builds the persisted action string. Bodies are appended only
// when small, and credential fields are masked: audit rows are served back
// to the user via /api/logs and must never echo a plaintext password.
func auditAction(method, path string, body []byte) string {
	action := method + " " + path
	if len(body) == 0 || len(body) >= 2000 {
		return action
	}
	masked := credentialKeyRe.ReplaceAllString(string(body), `"$1":"***"`)
	return action + " " + masked
}

// AuditMiddleware persists one AuditLog row per authenticated request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}

		// capture the body so handlers can still read it
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// only record operations of logged-in users
		if userID == 0 {
			return
		}

		path := c.Request.URL.Path

		log := models.AuditLog{
			UserID:    &userID,
			Path:      path,
			Method:    c.Request.Method,
			Action:    auditAction(c.Request.Method, path, bodyBytes),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&log).Error
	}
}
