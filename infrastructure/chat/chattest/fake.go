// Package chattest provides an in-memory chat.API double for use case and
// controller tests.
package chattest

import (
	"context"
	"strconv"
	"sync"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/chat"
)

type RegisteredHook struct {
	ID     string
	RoomID string
	Spec   chat.WebhookSpec
}

type SentMessage struct {
	RoomID  string
	Message string
	Opts    chat.MessageOptions
	Card    *chat.Card
}

type GlanceUpdate struct {
	RoomID    string
	GlanceKey string
	Glance    model.Glance
}

// Fake implements chat.API and records every call. Error fields, when set,
// are returned by the corresponding method.
type Fake struct {
	mu     sync.Mutex
	nextID int

	Hooks   []RegisteredHook
	Removed []string
	Sent    []SentMessage
	Glances []GlanceUpdate
	Users   map[string]*chat.User
	History map[string][]chat.Message

	AddWebhookErr    error
	RemoveWebhookErr error
	GetUserErr       error
	SendErr          error
	HistoryErr       error
	GlanceErr        error
}

func NewFake() *Fake {
	return &Fake{
		nextID:  1000,
		Users:   make(map[string]*chat.User),
		History: make(map[string][]chat.Message),
	}
}

func (f *Fake) AddRoomWebhook(_ context.Context, _ *model.Tenant, roomID string, spec chat.WebhookSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.AddWebhookErr != nil {
		return "", f.AddWebhookErr
	}

	f.nextID++
	id := strconv.Itoa(f.nextID)
	f.Hooks = append(f.Hooks, RegisteredHook{ID: id, RoomID: roomID, Spec: spec})
	return id, nil
}

func (f *Fake) RemoveRoomWebhook(_ context.Context, _ *model.Tenant, _ string, hookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.RemoveWebhookErr != nil {
		return f.RemoveWebhookErr
	}

	f.Removed = append(f.Removed, hookID)
	for i, h := range f.Hooks {
		if h.ID == hookID {
			f.Hooks = append(f.Hooks[:i], f.Hooks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *Fake) GetUser(_ context.Context, _ *model.Tenant, userID string) (*chat.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}

	user, ok := f.Users[userID]
	if !ok {
		return nil, &model.RemoteAPIError{Op: "GET user/" + userID, StatusCode: 404}
	}
	return user, nil
}

func (f *Fake) SendMessage(_ context.Context, _ *model.Tenant, roomID, message string, opts chat.MessageOptions, card *chat.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return f.SendErr
	}

	f.Sent = append(f.Sent, SentMessage{RoomID: roomID, Message: message, Opts: opts, Card: card})
	return nil
}

func (f *Fake) GetLatestHistory(_ context.Context, _ *model.Tenant, roomID string, limit int) ([]chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.HistoryErr != nil {
		return nil, f.HistoryErr
	}

	msgs := f.History[roomID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (f *Fake) UpdateGlance(_ context.Context, _ *model.Tenant, roomID, glanceKey string, glance model.Glance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GlanceErr != nil {
		return f.GlanceErr
	}

	f.Glances = append(f.Glances, GlanceUpdate{RoomID: roomID, GlanceKey: glanceKey, Glance: glance})
	return nil
}

// RoomHooks returns the live hooks registered for a room, in registration order.
func (f *Fake) RoomHooks(roomID string) []RegisteredHook {
	f.mu.Lock()
	defer f.mu.Unlock()

	var hooks []RegisteredHook
	for _, h := range f.Hooks {
		if h.RoomID == roomID {
			hooks = append(hooks, h)
		}
	}
	return hooks
}
