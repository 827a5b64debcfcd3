package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/internal/domain/repositories"
	"user-hub.backend/internal/infrastructure/messaging"
	"user-hub.backend/pkg/crypto"
	"user-hub.backend/pkg/logger"
)

var generateCode = crypto.GenerateVerificationCode

// VerificationUsecase issues and redeems one-time verification codes
type VerificationUsecase struct {
	verifRepo repositories.VerificationRepository
	userRepo  repositories.UserRepository
	publisher messaging.Publisher
	hostname  string
	now       func() time.Time
}

// NewVerificationUsecase creates a new verification usecase. hostname is
// the externally reachable host embedded in verification emails.
func NewVerificationUsecase(
	verifRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	publisher messaging.Publisher,
	hostname string,
) *VerificationUsecase {
	return &VerificationUsecase{
		verifRepo: verifRepo,
		userRepo:  userRepo,
		publisher: publisher,
		hostname:  hostname,
		now:       time.Now,
	}
}

// Issue generates a fresh code for the user, records it with a
// two-minute expiry and hands the notification off to the outbound
// channel. A delivery failure fails the whole operation; no retry.
func (u *VerificationUsecase) Issue(ctx context.Context, user *entities.User) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	verification := &entities.VerificationRequest{
		UserID: user.ID,
		Code:   code,
	}
	if err := u.verifRepo.Create(ctx, verification); err != nil {
		return err
	}

	msg := entities.VerificationMessage{
		FirstName:       user.FirstName,
		Username:        user.Username,
		Hostname:        u.hostname,
		VerificationAPI: entities.VerificationAPIPath,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if _, err := u.publisher.Publish(ctx, entities.VerifyEmailTopic, data); err != nil {
		logger.Error(ctx, "Failed to publish verification event",
			zap.String("topic", entities.VerifyEmailTopic),
			zap.String("username", user.Username),
			zap.Error(err),
		)
		return errors.Join(domainerrors.ErrPublishFailed, err)
	}

	logger.Debug(ctx, "Verification event published",
		zap.String("topic", entities.VerifyEmailTopic),
		zap.String("username", user.Username),
	)
	return nil
}

// Redeem consumes a verification code and flips the referenced user to
// verified. The code may be supplied bare or as the full issued
// compound string; in the compound form the redeemable segment follows
// the first slash.
func (u *VerificationUsecase) Redeem(ctx context.Context, rawCode string) error {
	code := rawCode
	if i := strings.Index(rawCode, "/"); i >= 0 {
		code = rawCode[i+1:]
	}

	verification, err := u.verifRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	if verification.Expired(u.now().UTC()) {
		return domainerrors.ErrCodeExpired
	}
	if verification.IsUsed {
		return domainerrors.ErrCodeUsed
	}

	if err := u.verifRepo.MarkUsed(ctx, code); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// lost the race against a concurrent redemption
			return domainerrors.ErrCodeUsed
		}
		return err
	}

	if err := u.userRepo.MarkVerified(ctx, verification.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// The code was consumed but its user is gone. The caller
			// still sees success; the inconsistency is only logged.
			logger.Error(ctx, "User verification failed, user no longer exists",
				zap.String("user_id", verification.UserID.String()),
			)
			return nil
		}
		return err
	}

	logger.Info(ctx, "User verified successfully",
		zap.String("user_id", verification.UserID.String()),
	)
	return nil
}
