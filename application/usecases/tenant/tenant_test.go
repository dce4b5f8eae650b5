package tenant_test

import (
	"context"
	"testing"

	"github.com/roomkit/guesthistory/application/usecases/tenant"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	persistence "github.com/roomkit/guesthistory/infrastructure/persistence/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInstall_RejectsEmptyClientKey(t *testing.T) {
	store := settings.NewInMemoryStore()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.NewNop()

	uc := tenant.NewTenantUseCase(
		persistence.NewTenantRepository(store, log, tracer),
		persistence.NewTokenRepository(store, log, tracer),
		log)

	err := uc.Install(context.Background(), &model.Tenant{OAuthSecret: "s3cret"})
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestUninstall_SweepsEverythingForTenant(t *testing.T) {
	store := settings.NewInMemoryStore()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.NewNop()

	tenants := persistence.NewTenantRepository(store, log, tracer)
	tokens := persistence.NewTokenRepository(store, log, tracer)
	flags := persistence.NewFlagRepository(store, tracer)
	hooks := persistence.NewHookRepository(store, tracer)
	uc := tenant.NewTenantUseCase(tenants, tokens, log)
	ctx := context.Background()

	require.NoError(t, uc.Install(ctx, &model.Tenant{ClientKey: "tenant-1", OAuthSecret: "a"}))
	require.NoError(t, flags.Set(ctx, "tenant-1", model.FlagHistory, "42", true))
	require.NoError(t, hooks.Save(ctx, "tenant-1", "42", &model.HookRecord{Hooks: []model.HookEntry{{Type: model.HookHistory, ID: "1001"}}}))
	require.NoError(t, tokens.Create(ctx, "tenant-1", model.RoomIdentity{ID: "42"}, "tok-abc"))

	require.NoError(t, uc.Install(ctx, &model.Tenant{ClientKey: "tenant-2", OAuthSecret: "b"}))
	require.NoError(t, tokens.Create(ctx, "tenant-2", model.RoomIdentity{ID: "9"}, "tok-other"))

	require.NoError(t, uc.Uninstall(ctx, "tenant-1"))

	keys, err := store.Keys(ctx, "tenant-1:*")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = tokens.Resolve(ctx, "tok-abc")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)

	_, err = tenants.GetByClientKey(ctx, "tenant-2")
	assert.NoError(t, err)
	tokenCtx, err := tokens.Resolve(ctx, "tok-other")
	require.NoError(t, err)
	assert.Equal(t, "tenant-2", tokenCtx.ClientKey)
}

func TestUninstall_UnknownTenantIsBestEffort(t *testing.T) {
	store := settings.NewInMemoryStore()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.NewNop()

	uc := tenant.NewTenantUseCase(
		persistence.NewTenantRepository(store, log, tracer),
		persistence.NewTokenRepository(store, log, tracer),
		log)

	assert.NoError(t, uc.Uninstall(context.Background(), "never-installed"))
}
