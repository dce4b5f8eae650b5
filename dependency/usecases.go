package dependency

import (
	guestAccessUseCase "github.com/roomkit/guesthistory/application/usecases/guestaccess"
	roomConfigUseCase "github.com/roomkit/guesthistory/application/usecases/roomconfig"
	tenantUseCase "github.com/roomkit/guesthistory/application/usecases/tenant"
)

func (c *Container) initUseCases() {
	baseURL := c.Config.LocalBaseURL()

	c.RoomConfigUC = roomConfigUseCase.NewRoomConfigUseCase(
		c.FlagRepo, c.TokenRepo, c.HookRepo, c.ChatAPI,
		baseURL, c.Config.Chat.GlanceKey, c.Logger)

	c.GuestAccessUC = guestAccessUseCase.NewGuestAccessUseCase(
		c.FlagRepo, c.TokenRepo, c.TenantRepo, c.ChatAPI,
		baseURL, c.Config.Chat.HistoryLimit, c.Logger)

	c.TenantUC = tenantUseCase.NewTenantUseCase(c.TenantRepo, c.TokenRepo, c.Logger)

	c.Logger.Info("Use cases initialized successfully")
}
