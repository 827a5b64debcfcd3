package usecases

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/internal/domain/repositories"
	"user-hub.backend/pkg/crypto"
)

const basicPrefix = "Basic "

// VerificationIssuer issues a fresh verification code for a user
type VerificationIssuer interface {
	Issue(ctx context.Context, user *entities.User) error
}

// AccountUsecase handles account lifecycle business logic
type AccountUsecase struct {
	userRepo repositories.UserRepository
	issuer   VerificationIssuer
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(userRepo repositories.UserRepository, issuer VerificationIssuer) *AccountUsecase {
	return &AccountUsecase{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// Register creates a new user and issues its first verification code.
// Re-registering an existing identifier never creates a second row:
// a verified duplicate fails with ErrAlreadyExists, an unverified one
// fails with ErrVerificationPending after a fresh code has been issued.
func (u *AccountUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	existing, err := u.userRepo.GetByUsername(ctx, username)
	if err == nil {
		if existing.IsVerified {
			return nil, domainerrors.ErrAlreadyExists
		}
		if err := u.issuer.Issue(ctx, existing); err != nil {
			return nil, err
		}
		return nil, domainerrors.ErrVerificationPending
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: passwordHash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.issuer.Issue(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateBasic validates an HTTP Basic Authorization header value
// and returns the authenticated user. The username is returned whenever
// it could be decoded, for log and response messages.
func (u *AccountUsecase) AuthenticateBasic(ctx context.Context, authHeader string) (*entities.User, string, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, basicPrefix) {
		return nil, "", domainerrors.ErrAuthHeaderMissing
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, basicPrefix))
	if err != nil {
		return nil, "", domainerrors.ErrMalformedCredentials
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return nil, "", domainerrors.ErrMalformedCredentials
	}
	username = strings.ToLower(username)

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, username, domainerrors.ErrNotFound
		}
		return nil, username, err
	}

	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, username, domainerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, username, domainerrors.ErrEmailNotVerified
	}
	return user, username, nil
}

// UpdateProfile applies a partial update to the user's own profile.
// Only supplied fields change; a supplied password is re-hashed.
func (u *AccountUsecase) UpdateProfile(ctx context.Context, user *entities.User, input *entities.UpdateUserInput) error {
	if input.FirstName.Valid {
		user.FirstName = input.FirstName.String
	}
	if input.LastName.Valid {
		user.LastName = input.LastName.String
	}
	if input.Password.Valid {
		passwordHash, err := crypto.HashPassword(input.Password.String)
		if err != nil {
			return err
		}
		user.PasswordHash = passwordHash
	}
	return u.userRepo.UpdateProfile(ctx, user)
}

// GetByUsername looks up a user by login identifier
func (u *AccountUsecase) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return u.userRepo.GetByUsername(ctx, strings.ToLower(username))
}
