// Package resilience groups fault tolerance helpers for calls that leave the process.
//
// The circuitbreaker subpackage guards database access: once the store keeps
// failing, requests fail fast with circuitbreaker.ErrOpen instead of piling up
// on a dead connection pool. Nothing in this tree retries; every failure is
// reported to the caller of the request that observed it.
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := guarded.QueryContext(ctx, "SELECT 1")
package resilience
