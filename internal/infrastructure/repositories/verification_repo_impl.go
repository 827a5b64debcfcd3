package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/internal/infrastructure/models"
)

// VerificationRepository implements verification code operations
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create persists a new verification code. SentAt and ExpiresAt are
// stamped here when the caller left them zero.
func (r *VerificationRepository) Create(ctx context.Context, verification *entities.VerificationRequest) error {
	if verification.ID == uuid.Nil {
		verification.ID = uuid.New()
	}
	if verification.SentAt.IsZero() {
		verification.SentAt = time.Now().UTC()
	}
	if verification.ExpiresAt.IsZero() {
		verification.ExpiresAt = verification.SentAt.Add(entities.VerificationTTL)
	}

	m := &models.UserVerification{
		ID:               verification.ID,
		UserID:           verification.UserID,
		VerificationCode: verification.Code,
		SentAt:           verification.SentAt,
		ExpiresAt:        verification.ExpiresAt,
		IsUsed:           verification.IsUsed,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return domainerrors.StorageUnavailable(err)
	}
	return nil
}

// GetByCode gets a verification record by its code, used or not
func (r *VerificationRepository) GetByCode(ctx context.Context, code string) (*entities.VerificationRequest, error) {
	var m models.UserVerification
	if err := r.db.WithContext(ctx).Where("verification_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.StorageUnavailable(err)
	}
	return &entities.VerificationRequest{
		ID:        m.ID,
		UserID:    m.UserID,
		Code:      m.VerificationCode,
		SentAt:    m.SentAt,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
	}, nil
}

// MarkUsed flips a code to used. The guard on is_used keeps the flag
// monotonic under concurrent redemption.
func (r *VerificationRepository) MarkUsed(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserVerification{}).
		Where("verification_code = ? AND is_used = ?", code, false).
		Update("is_used", true)

	if result.Error != nil {
		return domainerrors.StorageUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
