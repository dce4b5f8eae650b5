// Package tenant covers the install lifecycle of the add-on.
package tenant

import (
	"context"
	"fmt"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

type TenantUseCase interface {
	// Install records a new installation, replacing any previous record for
	// the same client key.
	Install(ctx context.Context, tenant *model.Tenant) error

	GetByClientKey(ctx context.Context, clientKey string) (*model.Tenant, error)

	// Uninstall tears down everything stored for the tenant. Each of the two
	// sweeps is best effort: a failed deletion is logged, not fatal, so a
	// re-sent uninstall can finish the job.
	Uninstall(ctx context.Context, clientKey string) error
}

type tenantUseCase struct {
	tenants repository.TenantRepository
	tokens  repository.TokenRepository
	logger  *logger.Logger
}

func NewTenantUseCase(
	tenants repository.TenantRepository,
	tokens repository.TokenRepository,
	log *logger.Logger,
) TenantUseCase {
	return &tenantUseCase{
		tenants: tenants,
		tokens:  tokens,
		logger:  log,
	}
}

func (uc *tenantUseCase) Install(ctx context.Context, tenant *model.Tenant) error {
	if tenant.ClientKey == "" {
		return fmt.Errorf("install record has no client key")
	}

	if err := uc.tenants.Save(ctx, tenant); err != nil {
		return fmt.Errorf("failed to save install record: %w", err)
	}

	uc.logger.Info("tenant installed",
		zap.String("clientKey", tenant.ClientKey),
		zap.String("groupID", tenant.GroupID),
	)
	return nil
}

func (uc *tenantUseCase) GetByClientKey(ctx context.Context, clientKey string) (*model.Tenant, error) {
	return uc.tenants.GetByClientKey(ctx, clientKey)
}

func (uc *tenantUseCase) Uninstall(ctx context.Context, clientKey string) error {
	// Forward token entries live outside the tenant prefix, so they go
	// first while the reverse entries still exist to find them.
	if err := uc.tokens.PurgeTenant(ctx, clientKey); err != nil {
		uc.logger.Warn("failed to purge guest tokens on uninstall",
			zap.String("clientKey", clientKey),
			zap.Error(err),
		)
	}

	if err := uc.tenants.Purge(ctx, clientKey); err != nil {
		return fmt.Errorf("failed to purge tenant data: %w", err)
	}

	uc.logger.Info("tenant uninstalled", zap.String("clientKey", clientKey))
	return nil
}
