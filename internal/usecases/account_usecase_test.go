package usecases

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/pkg/crypto"
)

type userRepoStub struct {
	createFn        func(ctx context.Context, user *entities.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*entities.User, error)
	updateProfileFn func(ctx context.Context, user *entities.User) error
	markVerifiedFn  func(ctx context.Context, id uuid.UUID) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, user *entities.User) error {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) MarkVerified(ctx context.Context, id uuid.UUID) error {
	if s.markVerifiedFn != nil {
		return s.markVerifiedFn(ctx, id)
	}
	return nil
}

type issuerStub struct {
	issueFn func(ctx context.Context, user *entities.User) error
	calls   int
}

func (s *issuerStub) Issue(ctx context.Context, user *entities.User) error {
	s.calls++
	if s.issueFn != nil {
		return s.issueFn(ctx, user)
	}
	return nil
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAccountUsecase_RegisterNewUser(t *testing.T) {
	var created *entities.User
	repo := &userRepoStub{
		createFn: func(_ context.Context, user *entities.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	issuer := &issuerStub{}
	uc := NewAccountUsecase(repo, issuer)

	user, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username:  "  Alice@Example.COM ",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, "alice@example.com", user.Username)
	require.NotEqual(t, "s3cret", user.PasswordHash)
	require.True(t, crypto.CheckPassword("s3cret", user.PasswordHash))
	require.Equal(t, 1, issuer.calls)
}

func TestAccountUsecase_RegisterVerifiedDuplicate(t *testing.T) {
	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, _ string) (*entities.User, error) {
			return &entities.User{ID: uuid.New(), Username: "alice@example.com", IsVerified: true}, nil
		},
	}
	issuer := &issuerStub{}
	uc := NewAccountUsecase(repo, issuer)

	_, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice@example.com", FirstName: "A", LastName: "B", Password: "p",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	require.Equal(t, 0, issuer.calls)
}

func TestAccountUsecase_RegisterUnverifiedDuplicateReissues(t *testing.T) {
	existing := &entities.User{ID: uuid.New(), Username: "alice@example.com", IsVerified: false}
	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, _ string) (*entities.User, error) {
			return existing, nil
		},
		createFn: func(_ context.Context, _ *entities.User) error {
			t.Fatal("no second row may be created")
			return nil
		},
	}
	issuer := &issuerStub{}
	uc := NewAccountUsecase(repo, issuer)

	_, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice@example.com", FirstName: "A", LastName: "B", Password: "p",
	})
	require.ErrorIs(t, err, domainerrors.ErrVerificationPending)
	require.Equal(t, 1, issuer.calls)
}

func TestAccountUsecase_RegisterUnverifiedDuplicateIssueFails(t *testing.T) {
	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, _ string) (*entities.User, error) {
			return &entities.User{ID: uuid.New(), IsVerified: false}, nil
		},
	}
	issueErr := errors.New("broker down")
	issuer := &issuerStub{issueFn: func(_ context.Context, _ *entities.User) error { return issueErr }}
	uc := NewAccountUsecase(repo, issuer)

	_, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice@example.com", FirstName: "A", LastName: "B", Password: "p",
	})
	require.ErrorIs(t, err, issueErr)
}

func TestAccountUsecase_RegisterLookupFailure(t *testing.T) {
	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, _ string) (*entities.User, error) {
			return nil, domainerrors.StorageUnavailable(errors.New("conn refused"))
		},
	}
	uc := NewAccountUsecase(repo, &issuerStub{})

	_, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice@example.com", FirstName: "A", LastName: "B", Password: "p",
	})
	require.ErrorIs(t, err, domainerrors.ErrStorageUnavailable)
}

func TestAccountUsecase_RegisterCreateRace(t *testing.T) {
	repo := &userRepoStub{
		createFn: func(_ context.Context, _ *entities.User) error {
			return domainerrors.ErrAlreadyExists
		},
	}
	issuer := &issuerStub{}
	uc := NewAccountUsecase(repo, issuer)

	_, err := uc.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice@example.com", FirstName: "A", LastName: "B", Password: "p",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	require.Equal(t, 0, issuer.calls)
}

func TestAccountUsecase_AuthenticateBasic(t *testing.T) {
	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)

	verified := &entities.User{ID: uuid.New(), Username: "alice@example.com", PasswordHash: hash, IsVerified: true}
	unverified := &entities.User{ID: uuid.New(), Username: "bob@example.com", PasswordHash: hash, IsVerified: false}

	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*entities.User, error) {
			switch username {
			case "alice@example.com":
				return verified, nil
			case "bob@example.com":
				return unverified, nil
			default:
				return nil, domainerrors.ErrNotFound
			}
		},
	}
	uc := NewAccountUsecase(repo, &issuerStub{})
	ctx := context.Background()

	user, username, err := uc.AuthenticateBasic(ctx, basicHeader("alice@example.com", "correct-horse"))
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", username)
	require.Equal(t, verified.ID, user.ID)

	// username is case-insensitive
	_, _, err = uc.AuthenticateBasic(ctx, basicHeader("Alice@Example.com", "correct-horse"))
	require.NoError(t, err)

	_, _, err = uc.AuthenticateBasic(ctx, "")
	require.ErrorIs(t, err, domainerrors.ErrAuthHeaderMissing)

	_, _, err = uc.AuthenticateBasic(ctx, "Bearer token")
	require.ErrorIs(t, err, domainerrors.ErrAuthHeaderMissing)

	_, _, err = uc.AuthenticateBasic(ctx, "Basic not-base64!!!")
	require.ErrorIs(t, err, domainerrors.ErrMalformedCredentials)

	_, _, err = uc.AuthenticateBasic(ctx, "Basic "+base64.StdEncoding.EncodeToString([]byte("no-colon")))
	require.ErrorIs(t, err, domainerrors.ErrMalformedCredentials)

	_, username, err = uc.AuthenticateBasic(ctx, basicHeader("ghost@example.com", "x"))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.Equal(t, "ghost@example.com", username)

	_, username, err = uc.AuthenticateBasic(ctx, basicHeader("alice@example.com", "wrong"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	require.Equal(t, "alice@example.com", username)

	_, _, err = uc.AuthenticateBasic(ctx, basicHeader("bob@example.com", "correct-horse"))
	require.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)
}

func TestAccountUsecase_UpdateProfilePartial(t *testing.T) {
	var saved *entities.User
	repo := &userRepoStub{
		updateProfileFn: func(_ context.Context, user *entities.User) error {
			saved = user
			return nil
		},
	}
	uc := NewAccountUsecase(repo, &issuerStub{})

	user := &entities.User{
		ID:           uuid.New(),
		Username:     "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Smith",
		PasswordHash: "old-hash",
	}
	input := &entities.UpdateUserInput{FirstName: null.StringFrom("Alicia")}

	require.NoError(t, uc.UpdateProfile(context.Background(), user, input))
	require.NotNil(t, saved)
	require.Equal(t, "Alicia", saved.FirstName)
	require.Equal(t, "Smith", saved.LastName)
	require.Equal(t, "old-hash", saved.PasswordHash)
}

func TestAccountUsecase_UpdateProfileRehashesPassword(t *testing.T) {
	var saved *entities.User
	repo := &userRepoStub{
		updateProfileFn: func(_ context.Context, user *entities.User) error {
			saved = user
			return nil
		},
	}
	uc := NewAccountUsecase(repo, &issuerStub{})

	user := &entities.User{ID: uuid.New(), PasswordHash: "old-hash"}
	input := &entities.UpdateUserInput{Password: null.StringFrom("new-pass")}

	require.NoError(t, uc.UpdateProfile(context.Background(), user, input))
	require.NotEqual(t, "old-hash", saved.PasswordHash)
	require.True(t, crypto.CheckPassword("new-pass", saved.PasswordHash))
}

func TestAccountUsecase_GetByUsernameLowercases(t *testing.T) {
	var asked string
	repo := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*entities.User, error) {
			asked = username
			return &entities.User{Username: username}, nil
		},
	}
	uc := NewAccountUsecase(repo, &issuerStub{})

	_, err := uc.GetByUsername(context.Background(), "Alice@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", asked)
}
