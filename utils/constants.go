package utils

import "time"

// Redis key prefixes.
const (
	AuthCachePrefix      = "auth:"
	ResetCodeCachePrefix = "reset:"
)

// Session and reset-code lifetimes.
const (
	AuthTokenTTL = 72 * time.Hour
	AuthCacheTTL = time.Hour
	ResetCodeTTL = 15 * time.Minute
)
