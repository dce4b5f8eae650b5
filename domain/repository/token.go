package repository

import (
	"context"

	"github.com/roomkit/guesthistory/domain/model"
)

// TokenRepository persists the bidirectional token mappings: a global forward
// entry token -> (tenant, room) and a tenant-scoped reverse entry room -> token.
type TokenRepository interface {
	// GetByRoom resolves the reverse index. The second return is false when
	// no token exists for the room.
	GetByRoom(ctx context.Context, clientKey, roomID string) (string, bool, error)

	// Create persists the forward mapping first, then the reverse mapping.
	// If the reverse write fails the orphaned forward entry stays behind
	// until the tenant is uninstalled; the caller sees only the error.
	Create(ctx context.Context, clientKey string, room model.RoomIdentity, token string) error

	// Resolve is a pure read of the forward mapping. Unknown tokens yield
	// model.ErrTokenNotFound.
	Resolve(ctx context.Context, token string) (*model.TokenContext, error)

	// Revoke deletes the reverse mapping and then the forward mapping,
	// returning the removed token. A room without a token is a no-op and
	// returns an empty token with a nil error.
	Revoke(ctx context.Context, clientKey, roomID string) (string, error)

	// PurgeTenant deletes every forward entry referenced by the tenant's
	// reverse keys. Best-effort: individual failures are logged, not retried.
	PurgeTenant(ctx context.Context, clientKey string) error
}
