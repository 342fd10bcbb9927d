package config

import "time"

const (
	// OTP
	OTPMin = 100000
	OTPMax = 999999
	OTPTTL = 15 * time.Minute

	// Session
	TokenTTL        = 30 * 24 * time.Hour
	TokenCookieName = "token"

	// Evidence upload
	MaxEvidenceFiles    = 5
	MaxEvidenceFileSize = 5 << 20 // 5 MiB per file
	EvidenceFolder      = "reports"

	// Admin report-listing cache
	ReportCacheKey = "reports:all"
	ReportCacheTTL = 60 * time.Second
)

// AllowedEvidenceTypes maps accepted MIME types to their on-disk extension.
var AllowedEvidenceTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}
