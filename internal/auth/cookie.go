package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sira/backend/internal/config"
)

// SetTokenCookie persists the session token into the client-visible
// cookie: http-only, cross-site capable, same 30-day expiry as the token.
func SetTokenCookie(c *gin.Context, token string, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     config.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearTokenCookie expires the cookie immediately. Logout is purely a
// client-side effect: the token itself stays valid until its expiry.
func ClearTokenCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     config.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// TokenFromRequest extracts the bearer token: the cookie wins when both
// the cookie and the Authorization header are present.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(config.TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
