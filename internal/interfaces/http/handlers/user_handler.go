package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/internal/interfaces/http/middleware"
	"user-hub.backend/internal/interfaces/http/response"
	"user-hub.backend/pkg/logger"
)

// allowedUpdateFields are the only keys accepted by the self-update
// endpoint; anything else fails the request.
var allowedUpdateFields = map[string]struct{}{
	"first_name": {},
	"last_name":  {},
	"password":   {},
}

// AccountService is the account lifecycle surface the handler needs
type AccountService interface {
	Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error)
	UpdateProfile(ctx context.Context, user *entities.User, input *entities.UpdateUserInput) error
}

// UserHandler handles account endpoints
type UserHandler struct {
	accounts AccountService
}

// NewUserHandler creates a new user handler
func NewUserHandler(accounts AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// CreateUser handles registration
// POST /v1/user
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warn(ctx, "Invalid create user payload", zap.Error(err))
		response.Error(c, domainerrors.BadRequest("Invalid request payload"))
		return
	}

	user, err := h.accounts.Register(ctx, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			response.Error(c, domainerrors.BadRequest("User with this username already exists."))
		case errors.Is(err, domainerrors.ErrVerificationPending):
			response.Error(c, domainerrors.BadRequest("User with this username already exists. Please verify your email to activate your account."))
		default:
			logger.Error(ctx, "Create user failed", zap.Error(err))
			response.Error(c, err)
		}
		return
	}

	logger.Info(ctx, "User created successfully", zap.String("username", user.Username))
	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created successfully. Please verify your email to activate your account.",
		"data":    user.Profile(),
	})
}

// GetSelf handles profile retrieval for the authenticated user
// GET /v1/user/self
func (h *UserHandler) GetSelf(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if c.Request.ContentLength > 0 || len(c.Request.URL.RawQuery) > 0 {
		response.Error(c, domainerrors.BadRequest("Request takes no body or query parameters"))
		return
	}

	logger.Debug(c.Request.Context(), "User data fetched", zap.String("username", user.Username))
	response.Success(c, http.StatusOK, user.Profile())
}

// UpdateSelf handles partial profile updates for the authenticated user
// PUT /v1/user/self
func (h *UserHandler) UpdateSelf(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if len(c.Request.URL.RawQuery) > 0 {
		response.Error(c, domainerrors.BadRequest("Request takes no query parameters"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request payload"))
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		logger.Warn(ctx, "Invalid update payload", zap.Error(err))
		response.Error(c, domainerrors.BadRequest("Invalid request payload"))
		return
	}
	for key := range fields {
		if _, allowed := allowedUpdateFields[key]; !allowed {
			logger.Warn(ctx, "Unexpected field in update payload",
				zap.String("field", key),
				zap.String("username", user.Username),
			)
			response.Error(c, domainerrors.BadRequest("Unexpected field in request payload"))
			return
		}
	}

	var input entities.UpdateUserInput
	if err := json.Unmarshal(body, &input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request payload"))
		return
	}
	if (input.FirstName.Valid && input.FirstName.String == "") ||
		(input.LastName.Valid && input.LastName.String == "") ||
		(input.Password.Valid && input.Password.String == "") {
		response.Error(c, domainerrors.BadRequest("Fields must not be empty"))
		return
	}

	if err := h.accounts.UpdateProfile(ctx, user, &input); err != nil {
		logger.Error(ctx, "Update user failed",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		response.Error(c, err)
		return
	}

	logger.Info(ctx, "User data updated", zap.String("username", user.Username))
	c.Status(http.StatusNoContent)
}
