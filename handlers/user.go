package handlers

import (
	"errors"
	"net/http"

	"coachbar/services/user"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
}

// RegisterHandler creates a new account and opens its first session.
func (h *HandlerBundle) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken), errors.Is(err, user.ErrWeakPassword):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		default:
			logger.Error("Failed to register user", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to register user", "")
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthenticateHandler signs a user in.
func (h *HandlerBundle) AuthenticateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
			return
		}
		logger.Error("Failed to authenticate user", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate", "")
		return
	}
	c.JSON(http.StatusOK, result)
}

// RevokeTokenHandler signs the authenticated user out everywhere.
func (h *HandlerBundle) RevokeTokenHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.Users.RevokeToken(c.Request.Context(), userID); err != nil {
		getLogger(c).Error("Failed to revoke token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordHandler issues a short-lived reset code. The response is the
// same whether or not the email has an account.
func (h *HandlerBundle) ForgotPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	code, err := h.Users.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("Failed to create reset code", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process request", "")
		return
	}
	if code != "" {
		// Delivery over email is out of band; the code is only logged here.
		logger.Info("Password reset code issued", zap.String("email", req.Email))
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset code was sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPasswordHandler completes the reset flow.
func (h *HandlerBundle) ResetPasswordHandler(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	err := h.Users.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidResetCode), errors.Is(err, user.ErrWeakPassword):
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		default:
			getLogger(c).Error("Failed to reset password", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to reset password", "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// GetProfileHandler returns the authenticated user's profile.
func (h *HandlerBundle) GetProfileHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	profile, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to get user profile", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUserHandler returns another user's public profile.
func (h *HandlerBundle) GetUserHandler(c *gin.Context) {
	target, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              target.ID,
		"fullName":        target.FullName,
		"profileImageUrl": target.ProfileImageURL,
	})
}

type updateProfileRequest struct {
	FullName        string `json:"fullName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// UpdateProfileHandler updates the authenticated user's display fields.
func (h *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	fields := bson.M{}
	if req.FullName != "" {
		fields["full_name"] = req.FullName
	}
	if req.ProfileImageURL != "" {
		fields["profile_image_url"] = req.ProfileImageURL
	}

	updated, err := h.Users.UpdateProfile(c.Request.Context(), userID, fields)
	if err != nil {
		getLogger(c).Error("Failed to update profile", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "")
		return
	}
	c.JSON(http.StatusOK, updated)
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateFCMTokenHandler stores the device push token.
func (h *HandlerBundle) UpdateFCMTokenHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Users.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		getLogger(c).Error("Failed to update FCM token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token updated"})
}

// DeleteAccountHandler removes the authenticated user's account.
func (h *HandlerBundle) DeleteAccountHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), userID); err != nil {
		getLogger(c).Error("Failed to delete account", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete account", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
