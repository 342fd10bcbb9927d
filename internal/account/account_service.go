// Package account owns the credential lifecycle: registration, OTP
// verification, login gating and the OTP-driven password reset.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/mailer"
	"sira/backend/internal/models"
	"sira/backend/internal/storage"
)

// ErrEmailSend marks a surfaced email delivery failure. Only the
// password-reset initiation flow propagates it; every other OTP
// dispatch is fire-and-forget.
var ErrEmailSend = errors.New("failed to send OTP email")

// Service handles the business logic for user accounts.
type Service struct {
	Storage storage.Storage
	Mailer  mailer.Mailer
}

// NewService creates a new account service.
func NewService(s storage.Storage, m mailer.Mailer) *Service {
	return &Service{Storage: s, Mailer: m}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an unverified account, issues a verification OTP and
// dispatches the code by email in the background. The created user is
// returned without logging them in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)

	if _, err := s.Storage.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	otp := auth.GenerateOTP()
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
		Verified: false,
		OTP: &models.PendingCode{
			Code:      otp,
			ExpiresAt: auth.OTPExpiry(now),
			Purpose:   models.OTPPurposeVerify,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("INFO: New user registered: %s", userRef(user))

	// Реєстрацію не блокуємо через пошту: збій доставки лише логується.
	s.dispatchOTPEmail(user.Email, otp, models.OTPPurposeVerify)

	return user, nil
}

// Verify activates an account when the presented code matches the live
// verification OTP. On success the OTP slot is cleared atomically with
// the state change.
func (s *Service) Verify(ctx context.Context, email string, otp int) (*models.User, error) {
	user, err := s.Storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user.OTP != nil && (user.OTP.Code != otp || user.OTP.Purpose != models.OTPPurposeVerify) {
		return nil, apperr.Auth("invalid otp")
	}
	if user.Verified {
		return nil, apperr.Conflict("user already verified")
	}
	if user.OTP == nil || user.OTP.Expired(time.Now()) {
		return nil, apperr.Auth("otp expired")
	}

	patch := map[string]interface{}{"verified": true, "otp": nil}
	if err := s.Storage.UpdateUserFields(ctx, user.ID, patch); err != nil {
		return nil, err
	}
	user.Verified = true
	user.OTP = nil
	return user, nil
}

// Login checks the credentials and returns the account for the caller
// to issue a session token. Login itself creates no token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !user.Verified {
		return nil, apperr.Auth("not verified")
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, apperr.Auth("bad credentials")
	}
	return user, nil
}

// RequestOTP regenerates the pending-code slot for the given purpose
// and mails the fresh code. Whatever code was live before is replaced
// without comment.
//
// For the reset purpose the email is sent synchronously and a delivery
// failure is surfaced as ErrEmailSend; for verification re-sends the
// dispatch is fire-and-forget like at registration.
func (s *Service) RequestOTP(ctx context.Context, email string, purpose models.OTPPurpose) error {
	user, err := s.Storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	otp := auth.GenerateOTP()
	code := models.PendingCode{
		Code:      otp,
		ExpiresAt: auth.OTPExpiry(time.Now()),
		Purpose:   purpose,
	}
	if err := s.Storage.UpdateUserFields(ctx, user.ID, map[string]interface{}{"otp": code}); err != nil {
		return err
	}

	if purpose == models.OTPPurposeReset {
		subject, html := mailer.ResetEmail(otp)
		if err := s.Mailer.Send(ctx, user.Email, subject, html); err != nil {
			log.Printf("ERROR: Failed to send reset OTP to %s: %v", user.Email, err)
			return ErrEmailSend
		}
		return nil
	}

	s.dispatchOTPEmail(user.Email, otp, purpose)
	return nil
}

// VerifyResetOTP checks a reset code without consuming it (step 2 of
// the reset flow; the code is consumed by ResetPassword).
func (s *Service) VerifyResetOTP(ctx context.Context, email string, otp int) error {
	user, err := s.Storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	return checkResetOTP(user, otp)
}

// ResetPassword replaces the password after re-validating the reset
// code, clearing the OTP slot in the same update. Verified status is
// left untouched.
func (s *Service) ResetPassword(ctx context.Context, email string, otp int, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperr.Validation("new password is required")
	}
	user, err := s.Storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if err := checkResetOTP(user, otp); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	patch := map[string]interface{}{"password": hash, "otp": nil}
	return s.Storage.UpdateUserFields(ctx, user.ID, patch)
}

// ListUsers returns every registered account (admin surface).
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Storage.ListUsers(ctx)
}

// PurgeUsers deletes all accounts and returns the number removed
// (admin surface).
func (s *Service) PurgeUsers(ctx context.Context) (int64, error) {
	return s.Storage.DeleteAllUsers(ctx)
}

// checkResetOTP validates the live code against the reset purpose.
// A code issued for verification is rejected here and vice versa.
func checkResetOTP(user *models.User, otp int) error {
	if user.OTP != nil && (user.OTP.Code != otp || user.OTP.Purpose != models.OTPPurposeReset) {
		return apperr.Auth("invalid otp")
	}
	if user.OTP == nil || user.OTP.Expired(time.Now()) {
		return apperr.Auth("otp expired")
	}
	return nil
}

// dispatchOTPEmail sends the code in the background; failures are
// logged and never abort the calling operation.
func (s *Service) dispatchOTPEmail(email string, otp int, purpose models.OTPPurpose) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var subject, html string
		if purpose == models.OTPPurposeReset {
			subject, html = mailer.ResetEmail(otp)
		} else {
			subject, html = mailer.VerificationEmail(otp)
		}
		if err := s.Mailer.Send(ctx, email, subject, html); err != nil {
			log.Printf("ERROR: Failed to send OTP email to %s: %v", email, err)
		}
	}()
}

func validateRegisterInput(input RegisterInput) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "email is required"})
	}
	if input.Password == "" {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "password is required"})
	}
	if input.Password != input.ConfirmPassword {
		fields = append(fields, apperr.FieldError{Field: "confirmPassword", Message: "passwords must match"})
	}
	if len(fields) > 0 {
		return apperr.ValidationFields("validation failed", fields)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// String ідентифікатор для логів; пароль і OTP ніколи не логуються.
func userRef(u *models.User) string {
	return fmt.Sprintf("%s <%s>", u.ID, u.Email)
}
