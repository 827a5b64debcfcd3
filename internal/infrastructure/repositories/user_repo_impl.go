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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Identifier uniqueness is enforced by the
// unique index; a concurrent loser gets ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.AccountCreated = now
	user.AccountUpdated = now

	m := &models.User{
		ID:             user.ID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		PasswordHash:   user.PasswordHash,
		IsVerified:     user.IsVerified,
		AccountCreated: user.AccountCreated,
		AccountUpdated: user.AccountUpdated,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return domainerrors.StorageUnavailable(err)
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.StorageUnavailable(err)
	}
	return toUserEntity(&m), nil
}

// GetByUsername gets a user by login identifier
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.StorageUnavailable(err)
	}
	return toUserEntity(&m), nil
}

// UpdateProfile persists name and password changes and stamps the
// update timestamp. The verified flag is not touched here.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	user.AccountUpdated = time.Now().UTC()
	updates := map[string]interface{}{
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"password_hash":   user.PasswordHash,
		"account_updated": user.AccountUpdated,
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return domainerrors.StorageUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkVerified flips the verified flag to true. The flag never
// transitions back.
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_verified":     true,
		"account_updated": time.Now().UTC(),
	})
	if result.Error != nil {
		return domainerrors.StorageUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Ping reports whether the underlying store is reachable
func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return domainerrors.StorageUnavailable(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return domainerrors.StorageUnavailable(err)
	}
	return nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:             m.ID,
		Username:       m.Username,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		PasswordHash:   m.PasswordHash,
		IsVerified:     m.IsVerified,
		AccountCreated: m.AccountCreated,
		AccountUpdated: m.AccountUpdated,
	}
}
