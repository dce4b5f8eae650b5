// Package dependency wires configuration, infrastructure, repositories, use
// cases and controllers into one startable unit.
package dependency

import (
	"fmt"

	guestAccessUseCase "github.com/roomkit/guesthistory/application/usecases/guestaccess"
	roomConfigUseCase "github.com/roomkit/guesthistory/application/usecases/roomconfig"
	tenantUseCase "github.com/roomkit/guesthistory/application/usecases/tenant"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/cache"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/config"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"github.com/roomkit/guesthistory/infrastructure/metrics"
	configCtrl "github.com/roomkit/guesthistory/presentation/controllers/config"
	"github.com/roomkit/guesthistory/presentation/controllers/history"
	"github.com/roomkit/guesthistory/presentation/controllers/lifecycle"
	"github.com/roomkit/guesthistory/presentation/controllers/webhook"
	"go.opentelemetry.io/otel/sdk/trace"
)

type Container struct {
	Config *config.Config
	Logger *logger.Logger

	TracerProvider *trace.TracerProvider
	MetricsManager metrics.Manager

	ChatAPI chat.API

	FlagRepo   repository.FlagRepository
	TokenRepo  repository.TokenRepository
	HookRepo   repository.HookRepository
	TenantRepo repository.TenantRepository

	RoomConfigUC  roomConfigUseCase.RoomConfigUseCase
	GuestAccessUC guestAccessUseCase.GuestAccessUseCase
	TenantUC      tenantUseCase.TenantUseCase

	ConfigController    configCtrl.ConfigController
	WebhookController   webhook.WebhookController
	HistoryController   history.HistoryController
	LifecycleController lifecycle.LifecycleController
}

func NewContainer() (*Container, error) {
	c := &Container{}

	c.Config = config.GetConfig()

	loggerInstance, err := newLogger(c.Config)
	if err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}
	c.Logger = loggerInstance

	c.Logger.Info("Initializing guest history dependencies")
	if err := cache.InitRedis(c.Config); err != nil {
		return nil, fmt.Errorf("error initializing cache: %w", err)
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("error initializing infrastructure: %w", err)
	}

	c.initRepositories()

	c.initUseCases()

	c.initControllers()

	c.Logger.Info("All dependencies initialized successfully")

	return c, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.IsProduction() {
		return logger.NewProductionLogger()
	}
	return logger.NewDevelopmentLogger()
}
