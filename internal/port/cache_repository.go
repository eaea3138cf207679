package port

import "context"

type CacheRepository interface {
	// ClaimRequest sets an idempotency key for a purchase request id,
	// returning false if the key already exists.
	ClaimRequest(ctx context.Context, requestID string) (bool, error)

	// ReleaseRequest drops the idempotency key so a failed request may be
	// resubmitted under the same id.
	ReleaseRequest(ctx context.Context, requestID string) error
}
