package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

// AuthState reports the process-wide authentication flag.
type AuthState interface {
	IsAuthenticated() bool
}

// RequireAuthenticated rejects requests while the dashboard is logged out.
// A disabled gate lets every request through.
func RequireAuthenticated(state AuthState, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled || state == nil || state.IsAuthenticated() {
			c.Next()
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "login required"))
		c.Abort()
	}
}
