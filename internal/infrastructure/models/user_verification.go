package models

import (
	"time"

	"github.com/google/uuid"
)

// UserVerification is an audit-trail row; it is never deleted, only
// flipped to used.
type UserVerification struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	VerificationCode string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	SentAt           time.Time `gorm:"not null"`
	ExpiresAt        time.Time `gorm:"not null"`
	IsUsed           bool      `gorm:"not null;default:false"`
}
