package guestaccess_test

import (
	"context"
	"strings"
	"testing"

	"github.com/roomkit/guesthistory/application/usecases/guestaccess"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/chat/chattest"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	persistence "github.com/roomkit/guesthistory/infrastructure/persistence/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type fixture struct {
	uc      guestaccess.GuestAccessUseCase
	chat    *chattest.Fake
	flags   repository.FlagRepository
	tokens  repository.TokenRepository
	tenants repository.TenantRepository
	tenant  *model.Tenant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := settings.NewInMemoryStore()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.NewNop()

	flags := persistence.NewFlagRepository(store, tracer)
	tokens := persistence.NewTokenRepository(store, log, tracer)
	tenants := persistence.NewTenantRepository(store, log, tracer)
	fake := chattest.NewFake()

	tenant := &model.Tenant{ClientKey: "tenant-1", OAuthSecret: "s3cret"}
	require.NoError(t, tenants.Save(context.Background(), tenant))

	return &fixture{
		uc: guestaccess.NewGuestAccessUseCase(
			flags, tokens, tenants, fake,
			"https://addon.example.com", 150, log),
		chat:    fake,
		flags:   flags,
		tokens:  tokens,
		tenants: tenants,
		tenant:  tenant,
	}
}

func (f *fixture) addUser(t *testing.T, id, name string, guest bool) {
	t.Helper()
	f.chat.Users[id] = &chat.User{ID: "0", Name: name, IsGuest: guest}
}

func messageEvent(roomID, senderID string) *model.RoomEvent {
	return &model.RoomEvent{
		Event:    model.EventRoomMessage,
		Room:     model.RoomIdentity{ID: roomID, Name: "Lobby"},
		SenderID: senderID,
	}
}

func enterEvent(roomID, senderID string) *model.RoomEvent {
	return &model.RoomEvent{
		Event:    model.EventRoomEnter,
		Room:     model.RoomIdentity{ID: roomID, Name: "Lobby"},
		SenderID: senderID,
	}
}

func TestHistoryLink_ReusesLiveToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := model.RoomIdentity{ID: "42", Name: "Lobby"}

	first, err := f.uc.HistoryLink(ctx, "tenant-1", room)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "https://addon.example.com/history/"))

	second, err := f.uc.HistoryLink(ctx, "tenant-1", room)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHistoryLink_TokenResolvesBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := model.RoomIdentity{ID: "42", Name: "Lobby"}

	link, err := f.uc.HistoryLink(ctx, "tenant-1", room)
	require.NoError(t, err)

	token := link[strings.LastIndex(link, "/")+1:]
	tokenCtx, err := f.uc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tokenCtx.ClientKey)
	assert.Equal(t, room, tokenCtx.Room)
}

func TestResolveToken_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.ResolveToken(ctx, "")
	assert.ErrorIs(t, err, model.ErrMissingToken)

	_, err = f.uc.ResolveToken(ctx, "bogus")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestHandleRoomEvent_IgnoresNonGuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Alice", false)
	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagHistory, "42", true))

	sent, err := f.uc.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.chat.Sent)
}

func TestHandleRoomEvent_RequiresHistoryFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Guesty", true)

	sent, err := f.uc.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.chat.Sent)
}

func TestHandleRoomEvent_SendsCardForGuestMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Guesty", true)
	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagHistory, "42", true))

	sent, err := f.uc.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	assert.True(t, sent)

	require.Len(t, f.chat.Sent, 1)
	msg := f.chat.Sent[0]
	assert.Equal(t, "42", msg.RoomID)
	assert.Equal(t, "green", msg.Opts.Color)
	require.NotNil(t, msg.Card)
	assert.Equal(t, "link", msg.Card.Style)
	assert.Contains(t, msg.Card.Description, "Guesty")
	assert.True(t, strings.HasPrefix(msg.Card.URL, "https://addon.example.com/history/"))
}

func TestHandleRoomEvent_GreetingNeedsBothFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Guesty", true)

	// History on, greeting off: enter events stay silent.
	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagHistory, "42", true))

	sent, err := f.uc.HandleRoomEvent(ctx, f.tenant, enterEvent("42", "7"))
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagGreeting, "42", true))

	sent, err = f.uc.HandleRoomEvent(ctx, f.tenant, enterEvent("42", "7"))
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, f.chat.Sent, 1)
}

func TestHandleRoomEvent_GreetingFlagAloneIsNotEnough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Guesty", true)
	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagGreeting, "42", true))

	sent, err := f.uc.HandleRoomEvent(ctx, f.tenant, enterEvent("42", "7"))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.chat.Sent)
}

func TestHandleRoomEvent_CardLinkStaysStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "7", "Guesty", true)
	require.NoError(t, f.flags.Set(ctx, "tenant-1", model.FlagHistory, "42", true))

	_, err := f.uc.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)
	_, err = f.uc.HandleRoomEvent(ctx, f.tenant, messageEvent("42", "7"))
	require.NoError(t, err)

	require.Len(t, f.chat.Sent, 2)
	assert.Equal(t, f.chat.Sent[0].Card.URL, f.chat.Sent[1].Card.URL)
}

func TestLatestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := model.RoomIdentity{ID: "42", Name: "Lobby"}
	require.NoError(t, f.tokens.Create(ctx, "tenant-1", room, "tok-abc"))

	f.chat.History["42"] = []chat.Message{
		{ID: "m1", Message: "hello"},
		{ID: "m2", Message: "world"},
	}

	messages, tokenCtx, err := f.uc.LatestHistory(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "Lobby", tokenCtx.Room.Name)
}

func TestLatestHistory_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.uc.LatestHistory(context.Background(), "bogus")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}
