package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultMaxLinkedTransfers caps the size of one linked group.
	DefaultMaxLinkedTransfers = 600

	// DefaultMaxBatchTransfers caps the total number of transfers in one batch call.
	DefaultMaxBatchTransfers = 500

	// MaxTransferInterval bounds account history queries.
	MaxTransferInterval = 2 * 365 * 24 * time.Hour

	// DefaultTransferCacheTTL is how long fetched transfers stay cached.
	// Transfers are immutable, so the TTL only bounds memory.
	DefaultTransferCacheTTL = time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
