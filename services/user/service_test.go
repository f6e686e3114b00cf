package user

import (
	"context"
	"testing"
	"time"

	"coachbar/models"
	"coachbar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo keeps users in memory, keyed by id and email.
type fakeUserRepo struct {
	byID map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	copied := *u
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFields(id string, fields bson.M) error {
	u, ok := r.byID[id]
	if !ok {
		return assert.AnError
	}
	for key, value := range fields {
		switch key {
		case "token_hash":
			u.TokenHash = value.(string)
		case "password_hash":
			u.PasswordHash = value.(string)
		case "full_name":
			u.FullName = value.(string)
		case "profile_image_url":
			u.ProfileImageURL = value.(string)
		case "fcm_token":
			u.FCMToken = value.(string)
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return r.GetByID(id)
}

// fakeCache is an in-memory Cache. TTLs are recorded but never expire.
type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func newTestService() (*DefaultUserService, *fakeUserRepo, *fakeCache, *fakeCache) {
	repo := newFakeUserRepo()
	auth := newFakeCache()
	codes := newFakeCache()
	return &DefaultUserService{Repo: repo, AuthCache: auth, Codes: codes}, repo, auth, codes
}

func TestRegisterHashesPasswordAndOpensSession(t *testing.T) {
	svc, repo, auth, _ := newTestService()

	result, err := svc.Register(context.Background(), " Coach@Example.COM ", "open-sesame", "Coach Carter")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)

	stored := repo.byID[result.User.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "coach@example.com", stored.Email)
	assert.NotEqual(t, "open-sesame", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("open-sesame")))

	hash := utils.HashToken(result.Token)
	assert.Equal(t, hash, stored.TokenHash)
	assert.Equal(t, hash, auth.values[utils.AuthCachePrefix+result.User.ID])
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "short", "Coach Carter")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, repo.byID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "COACH@example.com", "other-secret", "Impostor")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateVerifiesPassword(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	result, err := svc.Authenticate(context.Background(), "coach@example.com", "open-sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Authenticate(context.Background(), "coach@example.com", "wrong-guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "stranger@example.com", "open-sesame")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRevokeTokenClearsSession(t *testing.T) {
	svc, repo, auth, _ := newTestService()

	result, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), result.User.ID))
	assert.Empty(t, repo.byID[result.User.ID].TokenHash)
	assert.Empty(t, auth.values[utils.AuthCachePrefix+result.User.ID])
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, auth, codes := newTestService()

	result, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	code, err := svc.RequestPasswordReset(context.Background(), "coach@example.com")
	require.NoError(t, err)
	assert.Len(t, code, resetCodeLength)
	assert.Equal(t, code, codes.values[utils.ResetCodeCachePrefix+"coach@example.com"])
	assert.Equal(t, utils.ResetCodeTTL, codes.ttls[utils.ResetCodeCachePrefix+"coach@example.com"])

	err = svc.ResetPassword(context.Background(), "coach@example.com", code, "new-sesame-42")
	require.NoError(t, err)

	// The old password no longer works, the code is single use, and any
	// existing session is revoked.
	_, err = svc.Authenticate(context.Background(), "coach@example.com", "open-sesame")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, codes.values[utils.ResetCodeCachePrefix+"coach@example.com"])
	assert.Empty(t, auth.values[utils.AuthCachePrefix+result.User.ID])

	_, err = svc.Authenticate(context.Background(), "coach@example.com", "new-sesame-42")
	assert.NoError(t, err)
}

func TestResetPasswordRejectsWrongCode(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	_, err = svc.RequestPasswordReset(context.Background(), "coach@example.com")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), "coach@example.com", "WRONG1", "new-sesame-42")
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	_, err = svc.Authenticate(context.Background(), "coach@example.com", "open-sesame")
	assert.NoError(t, err)
}

func TestResetPasswordRejectsMissingCode(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	// No reset was requested, so even an empty code must not match.
	err = svc.ResetPassword(context.Background(), "coach@example.com", "", "new-sesame-42")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPasswordRejectsWeakPassword(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	code, err := svc.RequestPasswordReset(context.Background(), "coach@example.com")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), "coach@example.com", code, "tiny")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRequestPasswordResetHidesUnknownEmails(t *testing.T) {
	svc, _, _, codes := newTestService()

	code, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, code)
	assert.Empty(t, codes.values)
}

func TestUpdateProfileAllowsOnlyDisplayFields(t *testing.T) {
	svc, repo, _, _ := newTestService()

	result, err := svc.Register(context.Background(), "coach@example.com", "open-sesame", "Coach Carter")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), result.User.ID, bson.M{
		"full_name":     "Coach C.",
		"password_hash": "sneaky",
	})
	require.NoError(t, err)
	assert.Equal(t, "Coach C.", updated.FullName)

	stored := repo.byID[result.User.ID]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("open-sesame")))
}
