package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sira/backend/internal/api/handler"
	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/config"
	"sira/backend/internal/models"
)

const testSecret = "middleware-test-secret"

// newTestRouter wires the token middleware in front of a probe route
// that echoes the resolved principal.
func newTestRouter(storageMock *MockStorage) (*gin.Engine, *auth.TokenIssuer) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenIssuer(testSecret)
	h := handler.NewHandler(nil, nil, tokens, storageMock, &config.Config{Env: "test"})

	r := gin.New()
	r.GET("/me", h.VerifyToken, func(c *gin.Context) {
		p, _ := auth.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	r.GET("/admin", h.VerifyToken, h.AdminOnly, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true})
	})
	return r, tokens
}

func activeUser(role models.Role) *models.User {
	return &models.User{ID: "user-1", Email: "ada@example.com", Role: role, Verified: true}
}

// TestVerifyTokenNoToken verifies a bare request is turned away.
func TestVerifyTokenNoToken(t *testing.T) {
	// Arrange
	r, _ := newTestRouter(new(MockStorage))
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized, no token")
}

// TestVerifyTokenFromCookie verifies the cookie carrier works and the
// principal reaches the handler.
func TestVerifyTokenFromCookie(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").Return(activeUser(models.RoleUser), nil).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":"user-1"`)
	storageMock.AssertExpectations(t)
}

// TestVerifyTokenCookieWinsOverHeader verifies a valid cookie carries
// the request even when the Authorization header holds garbage.
func TestVerifyTokenCookieWinsOverHeader(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").Return(activeUser(models.RoleUser), nil).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestVerifyTokenFromBearerHeader verifies the header carrier works
// when no cookie is set.
func TestVerifyTokenFromBearerHeader(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").Return(activeUser(models.RoleUser), nil).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestVerifyTokenExpired verifies an expired token gets its own message.
func TestVerifyTokenExpired(t *testing.T) {
	// Arrange
	r, _ := newTestRouter(new(MockStorage))
	expired := &auth.TokenIssuer{Secret: testSecret, TTL: -time.Hour}
	token, err := expired.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

// TestVerifyTokenDeletedUser verifies a signed token for a since-deleted
// account is rejected.
func TestVerifyTokenDeletedUser(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").
		Return(nil, apperr.NotFound("user not found")).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized, no user found")
}

// TestAdminOnlyRejectsUserRole verifies the role gate answers 403, not
// 401, for an authenticated non-admin.
func TestAdminOnlyRejectsUserRole(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").Return(activeUser(models.RoleUser), nil).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin access only")
}

// TestAdminOnlyAllowsAdmin verifies an admin passes the gate.
func TestAdminOnlyAllowsAdmin(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", mock.Anything, "user-1").Return(activeUser(models.RoleAdmin), nil).Once()
	r, tokens := newTestRouter(storageMock)

	token, err := tokens.Issue("user-1")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
