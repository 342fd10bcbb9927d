package handler

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"

	"sira/backend/internal/account"
	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/models"
)

type registerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// Register creates an account and mails the activation OTP.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	_, err := h.Accounts.Register(c.Request.Context(), account.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "User Created Successfully and OTP sent to your email, Kindly check Your Email to activate your account...",
	})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   int    `json:"otp" binding:"required"`
}

// VerifyEmail activates an account with the emailed code.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.Accounts.Verify(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		// На етапі OTP невдала перевірка — це 400, а не 401.
		if errors.Is(err, apperr.ErrAuth) {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Account verified successfully",
		"data":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login checks the credentials, issues the session token and persists
// it into the http-only cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	auth.SetTokenCookie(c, token, h.Cfg.Production())

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"data":    gin.H{"user": user, "token": token},
	})
}

// Logout clears the client's token cookie. The token model is
// stateless, so there is nothing to revoke server-side.
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearTokenCookie(c, h.Cfg.Production())
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out successfully"})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendOTP regenerates and re-mails the verification code.
func (h *Handler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Accounts.RequestOTP(c.Request.Context(), req.Email, models.OTPPurposeVerify); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "OTP sent to your email address"})
}

// ForgotPassword initiates the password reset flow. Unlike every other
// OTP dispatch, an email delivery failure here is surfaced.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.Accounts.RequestOTP(c.Request.Context(), req.Email, models.OTPPurposeReset)
	if err != nil {
		if errors.Is(err, account.ErrEmailSend) {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Failed to send OTP email. Please try again."})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "OTP sent to your email address"})
}

// VerifyResetOTP checks a reset code without consuming it.
func (h *Handler) VerifyResetOTP(c *gin.Context) {
	var req verifyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Accounts.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, apperr.ErrAuth) {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid or expired OTP"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "OTP verified successfully"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         int    `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword consumes the reset code and replaces the password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !strongPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  false,
			"message": "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character",
		})
		return
	}

	if err := h.Accounts.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		if errors.Is(err, apperr.ErrAuth) {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid or expired OTP"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Password reset successful"})
}

// ListUsers returns all accounts (admin surface). An empty system
// answers 404, mirroring the admin dashboard contract.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Accounts.ListUsers(c.Request.Context())
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "No users found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Users Found", "data": users})
}

// PurgeUsers bulk-deletes every account (admin surface).
func (h *Handler) PurgeUsers(c *gin.Context) {
	count, err := h.Accounts.PurgeUsers(c.Request.Context())
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Users Deleted Successfully", "data": gin.H{"deleted": count}})
}

// strongPassword enforces the reset-flow password policy: upper, lower,
// digit and special character.
func strongPassword(p string) bool {
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
