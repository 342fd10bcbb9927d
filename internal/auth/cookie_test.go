package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"sira/backend/internal/auth"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

// TestTokenFromRequestCookieWins verifies the cookie takes precedence
// when both the cookie and the Authorization header carry a token.
func TestTokenFromRequestCookieWins(t *testing.T) {
	// Arrange
	c, _ := testContext(t)
	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	c.Request.Header.Set("Authorization", "Bearer header-token")

	// Act & Assert
	assert.Equal(t, "cookie-token", auth.TokenFromRequest(c))
}

// TestTokenFromRequestBearerFallback verifies the header is used when
// no cookie is present.
func TestTokenFromRequestBearerFallback(t *testing.T) {
	c, _ := testContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", auth.TokenFromRequest(c))
}

// TestTokenFromRequestEmpty verifies the absence of both carriers
// yields an empty token.
func TestTokenFromRequestEmpty(t *testing.T) {
	c, _ := testContext(t)

	assert.Empty(t, auth.TokenFromRequest(c))

	// A header without the Bearer scheme does not count either.
	c.Request.Header.Set("Authorization", "Token abc")
	assert.Empty(t, auth.TokenFromRequest(c))
}

// TestSetAndClearTokenCookie verifies the cookie attributes on set and
// the immediate expiry on clear.
func TestSetAndClearTokenCookie(t *testing.T) {
	// Arrange
	c, rec := testContext(t)

	// Act
	auth.SetTokenCookie(c, "tok-123", true)

	// Assert
	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	set := cookies[0]
	assert.Equal(t, "token", set.Name)
	assert.Equal(t, "tok-123", set.Value)
	assert.True(t, set.HttpOnly)
	assert.True(t, set.Secure)
	assert.Equal(t, 30*24*60*60, set.MaxAge)

	// Clear on a fresh recorder.
	c2, rec2 := testContext(t)
	auth.ClearTokenCookie(c2, true)
	cleared := rec2.Result().Cookies()
	assert.Len(t, cleared, 1)
	assert.Equal(t, "token", cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0, "clearing must expire the cookie")
}

// TestPrincipalRoundTrip verifies the principal survives the context.
func TestPrincipalRoundTrip(t *testing.T) {
	c, _ := testContext(t)

	_, ok := auth.GetPrincipal(c)
	assert.False(t, ok, "fresh context carries no principal")

	auth.SetPrincipal(c, auth.Principal{UserID: "u1", Role: "admin"})
	p, ok := auth.GetPrincipal(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
}
