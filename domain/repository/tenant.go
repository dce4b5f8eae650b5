package repository

import (
	"context"

	"github.com/roomkit/guesthistory/domain/model"
)

// TenantRepository stores install records and owns the bulk key cleanup on
// uninstall.
type TenantRepository interface {
	Save(ctx context.Context, tenant *model.Tenant) error

	// GetByClientKey yields model.ErrTenantNotFound for unknown keys.
	GetByClientKey(ctx context.Context, clientKey string) (*model.Tenant, error)

	// Purge deletes every key namespaced under the client key: flags, hook
	// records, reverse token entries and the install record itself.
	// Best-effort: individual delete failures do not abort the sweep.
	Purge(ctx context.Context, clientKey string) error
}
