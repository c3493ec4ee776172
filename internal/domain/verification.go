package domain

import "time"

// Verification purposes. A code issued for one purpose never validates
// against another.
const (
	PurposePasswordReset = "password_reset"
)

// VerificationCode is a short-lived, single-use secret tied to a user and a
// purpose. At most one live code exists per (user, purpose) pair; reissuing
// overwrites, and a successful verification consumes the record.
type VerificationCode struct {
	UserID    string `json:"user_id"`
	Purpose   string `json:"purpose"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // Unix seconds
}

// Expired reports whether the code is unusable at the given instant.
// A code at exactly ExpiresAt is already expired.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.Unix() >= v.ExpiresAt
}

// Matches reports whether the presented code can consume this record:
// same secret and not yet expired. An empty presented code never matches.
func (v *VerificationCode) Matches(code string, now time.Time) bool {
	return code != "" && v.Code == code && !v.Expired(now)
}
