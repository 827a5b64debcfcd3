package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/pkg/logger"
)

// VerificationService redeems a verification code
type VerificationService interface {
	Redeem(ctx context.Context, rawCode string) error
}

// VerifyHandler handles email verification redemption
type VerifyHandler struct {
	verifications VerificationService
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(verifications VerificationService) *VerifyHandler {
	return &VerifyHandler{verifications: verifications}
}

// VerifyUser handles code redemption
// GET /v1/verify?code=...
func (h *VerifyHandler) VerifyUser(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	if code == "" {
		logger.Warn(ctx, "Verification code is missing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code is missing"})
		return
	}

	if err := h.verifications.Redeem(ctx, code); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			logger.Warn(ctx, "Invalid verification code")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid verification code"})
		case errors.Is(err, domainerrors.ErrCodeExpired), errors.Is(err, domainerrors.ErrCodeUsed):
			logger.Warn(ctx, "Verification link no longer redeemable", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification link has expired"})
		default:
			logger.Error(ctx, "Verification processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "An error occurred while processing verification. Please try again later.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "User verified successfully"})
}
