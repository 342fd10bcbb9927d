package models

import "time"

// Role визначає рівень доступу користувача.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// OTPPurpose tags what a pending code was issued for. A code issued for
// one purpose is never accepted by the other flow.
type OTPPurpose string

const (
	OTPPurposeVerify OTPPurpose = "verify"
	OTPPurposeReset  OTPPurpose = "reset"
)

// PendingCode is the single one-time code slot on a user document.
type PendingCode struct {
	Code      int        `bson:"code" json:"-"`
	ExpiresAt time.Time  `bson:"expires_at" json:"-"`
	Purpose   OTPPurpose `bson:"purpose" json:"-"`
}

// Expired reports whether the code is past its expiry.
// The check is strictly greater-than: a code presented exactly at
// ExpiresAt is still valid.
func (p *PendingCode) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// User представляє зареєстрований обліковий запис.
type User struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"` // unique, case-normalized
	Password string `bson:"password" json:"-"`  // bcrypt digest
	Role     Role   `bson:"role" json:"role"`
	// Verified gates login: an unverified account can never log in.
	Verified bool `bson:"verified" json:"verified"`
	// OTP is the single pending-code slot, nil when no code is live.
	OTP *PendingCode `bson:"otp,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
