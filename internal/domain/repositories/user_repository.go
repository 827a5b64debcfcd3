package repositories

import (
	"context"

	"github.com/google/uuid"
	"user-hub.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	UpdateProfile(ctx context.Context, user *entities.User) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// VerificationRepository defines verification code operations
type VerificationRepository interface {
	Create(ctx context.Context, verification *entities.VerificationRequest) error
	GetByCode(ctx context.Context, code string) (*entities.VerificationRequest, error)
	MarkUsed(ctx context.Context, code string) error
}
