package dependency

import (
	"github.com/roomkit/guesthistory/infrastructure/cache"
	"github.com/roomkit/guesthistory/infrastructure/persistence/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"go.opentelemetry.io/otel"
)

func (c *Container) initRepositories() {
	store := settings.NewRedisStore(cache.GetRedis())
	tracer := otel.Tracer("repository")

	c.FlagRepo = repository.NewFlagRepository(store, tracer)
	c.HookRepo = repository.NewHookRepository(store, tracer)
	c.TokenRepo = repository.NewTokenRepository(store, c.Logger, tracer)
	c.TenantRepo = repository.NewTenantRepository(store, c.Logger, tracer)

	c.Logger.Info("Repositories initialized successfully")
}
