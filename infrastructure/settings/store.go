// Package settings exposes the key-value settings store backing all per-room
// and per-tenant state. Tenant-scoped keys are physically stored as
// "<clientKey>:<key>" so that uninstall cleanup is a prefix scan; raw access
// exists for the handful of global keys (the token forward index) that are
// deliberately not tenant-scoped.
package settings

import "context"

type Store interface {
	// Get reads a tenant-scoped key; the second return is false when absent.
	Get(ctx context.Context, clientKey, key string) (string, bool, error)
	Set(ctx context.Context, clientKey, key, value string) error
	Del(ctx context.Context, clientKey, key string) error

	// RawGet/RawSet/RawDel address keys verbatim, outside any tenant namespace.
	RawGet(ctx context.Context, key string) (string, bool, error)
	RawSet(ctx context.Context, key, value string) error
	RawDel(ctx context.Context, key string) error

	// Keys scans raw key names matching a glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// ScopedKey builds the physical key for a tenant-scoped entry.
func ScopedKey(clientKey, key string) string {
	return clientKey + ":" + key
}
