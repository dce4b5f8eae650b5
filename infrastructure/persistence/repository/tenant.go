package repository

import (
	"context"
	"encoding/json"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type tenantRepository struct {
	store  settings.Store
	logger *logger.Logger
	tracer trace.Tracer
}

func NewTenantRepository(store settings.Store, log *logger.Logger, tracer trace.Tracer) repository.TenantRepository {
	return &tenantRepository{
		store:  store,
		logger: log,
		tracer: tracer,
	}
}

func (r *tenantRepository) Save(ctx context.Context, tenant *model.Tenant) error {
	ctx, span := r.tracer.Start(ctx, "tenantRepository.Save")
	defer span.End()

	span.SetAttributes(attribute.String("tenant.clientKey", tenant.ClientKey))

	value, err := json.Marshal(tenant)
	if err != nil {
		return &model.StoreError{Op: "marshal tenant", Err: err}
	}

	if err := r.store.Set(ctx, tenant.ClientKey, tenantInfoKey, string(value)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write install record")
		return &model.StoreError{Op: "save tenant", Err: err}
	}
	return nil
}

func (r *tenantRepository) GetByClientKey(ctx context.Context, clientKey string) (*model.Tenant, error) {
	ctx, span := r.tracer.Start(ctx, "tenantRepository.GetByClientKey")
	defer span.End()

	span.SetAttributes(attribute.String("tenant.clientKey", clientKey))

	value, found, err := r.store.Get(ctx, clientKey, tenantInfoKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read install record")
		return nil, &model.StoreError{Op: "get tenant", Err: err}
	}
	if !found {
		span.SetAttributes(attribute.Bool("tenant.present", false))
		return nil, model.ErrTenantNotFound
	}

	var tenant model.Tenant
	if err := json.Unmarshal([]byte(value), &tenant); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corrupt install record")
		return nil, &model.StoreError{Op: "decode tenant", Err: err}
	}
	return &tenant, nil
}

func (r *tenantRepository) Purge(ctx context.Context, clientKey string) error {
	ctx, span := r.tracer.Start(ctx, "tenantRepository.Purge")
	defer span.End()

	span.SetAttributes(attribute.String("tenant.clientKey", clientKey))

	keys, err := r.store.Keys(ctx, clientKey+":*")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scan tenant keys")
		return &model.StoreError{Op: "scan tenant keys", Err: err}
	}

	span.SetAttributes(attribute.Int("keys.count", len(keys)))

	for _, key := range keys {
		if err := r.store.RawDel(ctx, key); err != nil {
			r.logger.Warn("failed to delete tenant key during purge",
				zap.String("key", key), zap.Error(err))
		}
	}

	return nil
}
