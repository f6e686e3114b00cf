package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "coachbar/database/repository/user"
	"coachbar/models"
	"coachbar/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetCode is returned when a password reset code does not match.
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	// ErrWeakPassword is returned for passwords under 8 characters.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// resetCodeLength is the number of characters in a password reset code.
const resetCodeLength = 6

// AuthResult bundles the signed token with the authenticated user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts, sessions, and profile data.
type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	RevokeToken(ctx context.Context, userID string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, fields bson.M) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

// DefaultUserService implements UserService. Session tokens are JWTs whose
// SHA-256 hash is held in the auth cache and mirrored on the user document,
// so revocation works even when the cache entry has expired.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache Cache
	Codes     Cache
}

func (s *DefaultUserService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *DefaultUserService) issueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateFields(user.ID, bson.M{"token_hash": tokenHash, "updated_at": time.Now()}); err != nil {
		return nil, err
	}
	user.TokenHash = tokenHash

	cacheKey := utils.AuthCachePrefix + user.ID
	if err := s.AuthCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL); err != nil {
		utils.GetLogger().Warn("failed to cache session token", zap.String("userID", user.ID), zap.Error(err))
	}
	return &AuthResult{Token: token, User: user}, nil
}

// RevokeToken invalidates the user's current session.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateFields(userID, bson.M{"token_hash": "", "updated_at": time.Now()}); err != nil {
		return err
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID); err != nil {
		utils.GetLogger().Warn("failed to drop cached session", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// RequestPasswordReset stores a short-lived code keyed by email and returns
// it for delivery. Unknown emails get no code and no error, so the endpoint
// does not leak which addresses have accounts.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}

	code, err := utils.GenerateSecureCode(resetCodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	key := utils.ResetCodeCachePrefix + email
	if err := s.Codes.Set(ctx, key, code, utils.ResetCodeTTL); err != nil {
		return "", fmt.Errorf("failed to store reset code: %w", err)
	}
	return code, nil
}

func (s *DefaultUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	key := utils.ResetCodeCachePrefix + email
	stored, err := s.Codes.Get(ctx, key)
	if err != nil || stored == "" || stored != code {
		return ErrInvalidResetCode
	}

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fields := bson.M{
		"password_hash": string(hash),
		"token_hash":    "",
		"updated_at":    time.Now(),
	}
	if err := s.Repo.UpdateFields(user.ID, fields); err != nil {
		return err
	}

	if err := s.Codes.Del(ctx, key); err != nil {
		utils.GetLogger().Warn("failed to drop reset code", zap.String("email", email), zap.Error(err))
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+user.ID); err != nil {
		utils.GetLogger().Warn("failed to drop cached session", zap.String("userID", user.ID), zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// UpdateProfile applies caller-selected profile fields. Only display fields
// are allowed through; credentials go through the dedicated flows.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, fields bson.M) (*models.User, error) {
	allowed := bson.M{"updated_at": time.Now()}
	for _, key := range []string{"full_name", "profile_image_url"} {
		if v, ok := fields[key]; ok {
			allowed[key] = v
		}
	}
	if err := s.Repo.UpdateFields(id, allowed); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.UpdateFields(id, bson.M{"fcm_token": token, "updated_at": time.Now()})
}

func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+id); err != nil {
		utils.GetLogger().Warn("failed to drop cached session", zap.String("userID", id), zap.Error(err))
	}
	return nil
}
