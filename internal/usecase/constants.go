package usecase

import "time"

const (
	// DefaultAccountCacheTTL bounds how long an account lookup may be served
	// from cache before hitting storage again.
	DefaultAccountCacheTTL = 5 * time.Minute

	// accountCacheKeyPrefix namespaces account-by-number cache entries.
	accountCacheKeyPrefix = "account:"

	// transactionRateLimitKeyPrefix namespaces the per-account transaction
	// limiter keys.
	transactionRateLimitKeyPrefix = "transaction:"
)
