// Package handler wires the HTTP surface: request binding, the
// status-code mapping of domain errors and the JSON response envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"sira/backend/internal/account"
	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/config"
	"sira/backend/internal/report"
	"sira/backend/internal/storage"
)

// Handler містить посилання на сервіси та конфігурацію.
type Handler struct {
	Accounts *account.Service
	Reports  *report.Service
	Tokens   *auth.TokenIssuer
	Storage  storage.Storage
	Cfg      *config.Config
}

func NewHandler(accounts *account.Service, reports *report.Service, tokens *auth.TokenIssuer, s storage.Storage, cfg *config.Config) *Handler {
	return &Handler{
		Accounts: accounts,
		Reports:  reports,
		Tokens:   tokens,
		Storage:  s,
		Cfg:      cfg,
	}
}

// bindJSON binds the request body and, on failure, writes the 400
// response with a field-level detail array. Returns false when the
// request was already answered.
func (h *Handler) bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apperr.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apperr.FieldError{
					Field:   fe.Field(),
					Message: fieldMessage(fe),
				})
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  false,
				"message": "Validation Failed",
				"errors":  fields,
			})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid JSON"})
		return false
	}
	return true
}

// fieldMessage renders a short human message for a failed binding tag.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "please enter a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "eqfield":
		return "passwords must match"
	default:
		return fe.Field() + " is invalid"
	}
}

// respondError maps a domain error to its HTTP status. The auth class
// defaults to 401; OTP-phase handlers remap it to 400 before calling.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		body := gin.H{"status": false, "message": verr.Message}
		if len(verr.Fields) > 0 {
			body["errors"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, apperr.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"status": false, "message": err.Error()})
	case errors.Is(err, apperr.ErrAuth),
		errors.Is(err, apperr.ErrInvalidToken),
		errors.Is(err, apperr.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": err.Error()})
	default:
		h.respondInternal(c, err)
	}
}

// respondInternal answers 500, echoing detail outside production only.
func (h *Handler) respondInternal(c *gin.Context, err error) {
	body := gin.H{"status": false, "message": "Internal Server Error"}
	if !h.Cfg.Production() {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// Welcome відповідає на кореневий маршрут.
func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Hello, Welcome To Sira Project, A Project that Helps students to Report All the Incidents in the School, Enjoy the App...")
}

// NotFound answers any unmatched route.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  false,
		"message": "Oops...., It seems like the Route " + c.Request.URL.Path + " You are looking for does not Exist",
	})
}
