package guestaccess_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/roomkit/guesthistory/application/usecases/guestaccess"
	"github.com/roomkit/guesthistory/application/usecases/roomconfig"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/chat/chattest"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	persistence "github.com/roomkit/guesthistory/infrastructure/persistence/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// Both use cases over one store and one fake platform, exercising the full
// flag/token/hook lifecycle the way the HTTP layer drives it.
type lifecycleFixture struct {
	config roomconfig.RoomConfigUseCase
	guest  guestaccess.GuestAccessUseCase
	chat   *chattest.Fake
	tenant *model.Tenant
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	store := settings.NewInMemoryStore()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.NewNop()

	flags := persistence.NewFlagRepository(store, tracer)
	tokens := persistence.NewTokenRepository(store, log, tracer)
	hooks := persistence.NewHookRepository(store, tracer)
	tenants := persistence.NewTenantRepository(store, log, tracer)
	fake := chattest.NewFake()

	tenant := &model.Tenant{ClientKey: "tenant-1", OAuthSecret: "s3cret"}
	require.NoError(t, tenants.Save(context.Background(), tenant))

	return &lifecycleFixture{
		config: roomconfig.NewRoomConfigUseCase(
			flags, tokens, hooks, fake,
			"https://addon.example.com", "guest-history-glance", log),
		guest: guestaccess.NewGuestAccessUseCase(
			flags, tokens, tenants, fake,
			"https://addon.example.com", 150, log),
		chat:   fake,
		tenant: tenant,
	}
}

func TestGuestHistoryLifecycle(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	f.chat.Users["7"] = &chat.User{Name: "Guesty", IsGuest: true}

	// History off: a guest message produces nothing.
	sent, err := f.guest.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.chat.Sent)

	// Toggle on: both hooks registered, glance refreshed.
	changed, err := f.config.SetHistory(ctx, f.tenant, "42", true)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, f.chat.RoomHooks("42"), 2)

	// Same event now mints a token and posts the card.
	sent, err = f.guest.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, f.chat.Sent, 1)

	link := f.chat.Sent[0].Card.URL
	token := link[strings.LastIndex(link, "/")+1:]

	// The advertised link serves history.
	f.chat.History["42"] = []chat.Message{{ID: "m1", Message: "hello"}}
	messages, tokenCtx, err := f.guest.LatestHistory(ctx, token)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "42", tokenCtx.Room.ID)

	// Toggle off: the token dies with the hooks.
	_, err = f.config.SetHistory(ctx, f.tenant, "42", false)
	require.NoError(t, err)
	assert.Empty(t, f.chat.RoomHooks("42"))

	_, _, err = f.guest.LatestHistory(ctx, token)
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestDisableCascade_NextLinkIsFresh(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	room := model.RoomIdentity{ID: "42", Name: "Lobby"}

	_, err := f.config.SetHistory(ctx, f.tenant, "42", true)
	require.NoError(t, err)

	first, err := f.guest.HistoryLink(ctx, "tenant-1", room)
	require.NoError(t, err)

	_, err = f.config.SetHistory(ctx, f.tenant, "42", false)
	require.NoError(t, err)
	_, err = f.config.SetHistory(ctx, f.tenant, "42", true)
	require.NoError(t, err)

	second, err := f.guest.HistoryLink(ctx, "tenant-1", room)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHistoryLink_TokensAreUnique(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		link, err := f.guest.HistoryLink(ctx, "tenant-1", model.RoomIdentity{ID: fmt.Sprintf("room-%d", i)})
		require.NoError(t, err)

		token := link[strings.LastIndex(link, "/")+1:]
		_, dup := seen[token]
		require.False(t, dup, "token collision for room %d", i)
		seen[token] = struct{}{}
	}
}
