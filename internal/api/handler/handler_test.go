package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"sira/backend/internal/api/handler"
	"sira/backend/internal/auth"
	"sira/backend/internal/config"
)

// newBareRouter wires only the routes that never reach a service, so
// the binding and envelope behavior can be probed in isolation.
func newBareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(nil, nil, auth.NewTokenIssuer(testSecret), new(MockStorage), &config.Config{Env: "test"})

	r := gin.New()
	r.GET("/", h.Welcome)
	r.POST("/auth/user", h.Register)
	r.POST("/auth/user/login", h.Login)
	r.NoRoute(h.NotFound)
	return r
}

// TestRegisterValidationErrors verifies a bad registration body answers
// 400 with a per-field error array before any service call.
func TestRegisterValidationErrors(t *testing.T) {
	// Arrange
	r := newBareRouter()
	body := `{"email":"not-an-email","password":"123","confirmPassword":"456"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation Failed")
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Contains(t, rec.Body.String(), "please enter a valid email address")
	assert.Contains(t, rec.Body.String(), "Password must be at least 6 characters long")
}

// TestLoginMalformedJSON verifies non-JSON input is answered without a
// field breakdown.
func TestLoginMalformedJSON(t *testing.T) {
	r := newBareRouter()
	req := httptest.NewRequest(http.MethodPost, "/auth/user/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

// TestWelcomeRoute verifies the root greeting.
func TestWelcomeRoute(t *testing.T) {
	r := newBareRouter()
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome To Sira Project")
}

// TestUnknownRoute verifies the catch-all names the missing path.
func TestUnknownRoute(t *testing.T) {
	r := newBareRouter()
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/no/such/route")
}
