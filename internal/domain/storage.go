package domain

import "context"

// DefaultStorageKey is the key the event list is persisted under.
const DefaultStorageKey = "eventPlannerData"

// KVStore is the key-value persistence surface. Get reports ok=false for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
