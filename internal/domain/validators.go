package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MaxCodeLength bounds the login access code.
	MaxCodeLength = 50
	// MaxPasswordLength bounds a submitted challenge password.
	MaxPasswordLength = 100
)

// NormalizeCode uppercases and trims an access code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks an access code before lookup.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("code is required")
	}
	if len(code) > MaxCodeLength {
		return fmt.Errorf("code exceeds %d characters", MaxCodeLength)
	}
	return nil
}

// ValidateAttemptPassword checks a submitted challenge password.
func ValidateAttemptPassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password exceeds %d characters", MaxPasswordLength)
	}
	return nil
}

// PasswordsMatch compares a submitted and stored challenge password with
// whitespace trimmed and case folded.
func PasswordsMatch(submitted, stored string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(stored))
}

// ValidateCoordinates checks that a position is finite and in range.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("coordinates must be finite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range: %v", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude out of range: %v", lon)
	}
	return nil
}
