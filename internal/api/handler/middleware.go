package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/models"
)

// VerifyToken resolves the bearer token (cookie wins over the
// Authorization header), checks the signature and attaches an immutable
// principal to the request context for downstream handlers.
func (h *Handler) VerifyToken(c *gin.Context) {
	token := auth.TokenFromRequest(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no token"})
		return
	}

	userID, err := h.Tokens.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrExpiredToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "token expired"})
		case errors.Is(err, apperr.ErrConfiguration):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "invalid token"})
		}
		return
	}

	// Токен підписаний, але користувач міг бути видалений — перевіряємо.
	user, err := h.Storage.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
			return
		}
		h.respondInternal(c, err)
		c.Abort()
		return
	}

	auth.SetPrincipal(c, auth.Principal{UserID: user.ID, Role: user.Role})
	c.Next()
}

// AdminOnly gates a route to admin accounts. Must run after VerifyToken.
func (h *Handler) AdminOnly(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
		return
	}
	if p.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": false, "message": "admin access only"})
		return
	}
	c.Next()
}
