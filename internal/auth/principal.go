package auth

import (
	"github.com/gin-gonic/gin"

	"sira/backend/internal/models"
)

// principalKey — ключ, під яким middleware кладе Principal у gin context.
const principalKey = "auth_principal"

// Principal is the immutable identity attached to a request after the
// token has been verified. Handlers read it instead of re-loading the
// user or mutating shared request state.
type Principal struct {
	UserID string
	Role   models.Role
}

// SetPrincipal attaches p to the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated principal, ok=false when the
// request never passed the token middleware.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
