package auth

import (
	"crypto/rand"
	"math/big"
	"time"

	"sira/backend/internal/config"
)

// GenerateOTP draws a 6-digit code uniformly from [100000, 999999].
// The lower bound rules out leading zeros.
func GenerateOTP() int {
	span := big.NewInt(config.OTPMax - config.OTPMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// crypto/rand failing means the process has no usable entropy
		// source; there is nothing sensible to fall back to.
		panic(err)
	}
	return config.OTPMin + int(n.Int64())
}

// OTPExpiry returns the expiry timestamp for a code generated at now.
func OTPExpiry(now time.Time) time.Time {
	return now.Add(config.OTPTTL)
}
