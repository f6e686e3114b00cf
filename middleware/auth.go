package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "coachbar/database/repository/user"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// auth cache (falling back to the user document on a miss), and stores the
// authenticated user id on the request context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c)
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			unauthorized(c)
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID
		authCache := utils.GetAuthCacheClient()

		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				unauthorized(c)
				return
			}
			// Known-good session, refresh the cache entry.
			_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
			c.Set("userID", userID)
			c.Next()
			return
		}
		if err != redis.Nil {
			utils.GetLogger().Warn("auth cache lookup failed, falling back to DB",
				zap.String("userID", userID), zap.Error(err))
		}

		// Cache miss. The user document carries the current session hash.
		user, err := users.GetByIDWithProjection(userID, bson.M{"id": 1, "token_hash": 1})
		if err != nil || user.TokenHash == "" || user.TokenHash != computedHash {
			unauthorized(c)
			return
		}

		if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to repopulate auth cache",
				zap.String("userID", userID), zap.Error(err))
		}
		c.Set("userID", userID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
}
