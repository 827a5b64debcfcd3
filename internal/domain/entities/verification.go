package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	// VerificationTTL is the redemption window of a verification code.
	VerificationTTL = 2 * time.Minute

	// VerifyEmailTopic is the logical topic verification events are published to.
	VerifyEmailTopic = "verify_email"

	// VerificationAPIPath is the path embedded in verification emails.
	VerificationAPIPath = "v1/verify"
)

// VerificationRequest represents a one-time email verification code.
// Rows are never deleted; a used code stays on record.
type VerificationRequest struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	SentAt    time.Time
	ExpiresAt time.Time
	IsUsed    bool
}

// Expired reports whether the code can no longer be redeemed due to age
func (v *VerificationRequest) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// VerificationMessage is the payload handed off to the email delivery
// system via the outbound notifier.
type VerificationMessage struct {
	FirstName       string `json:"first_name"`
	Username        string `json:"username"`
	Hostname        string `json:"hostname"`
	VerificationAPI string `json:"verification_api"`
}
