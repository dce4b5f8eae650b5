// Package chat is the typed client for the chat platform's REST API. The
// platform is consumed as an opaque remote service: webhooks, users,
// notifications, room history and the glance UI slot.
package chat

import (
	"context"
	"encoding/json"

	"github.com/roomkit/guesthistory/domain/model"
)

// WebhookSpec describes a remote event subscription to create.
type WebhookSpec struct {
	URL            string `json:"url"`
	Event          string `json:"event"`
	Authentication string `json:"authentication"`
	Name           string `json:"name"`
}

// User is the subset of the platform's user resource this service reads.
type User struct {
	ID      json.Number `json:"id"`
	Name    string      `json:"name"`
	IsGuest bool        `json:"is_guest"`
}

// Card is the rich link attachment sent alongside a notification.
type Card struct {
	Style       string   `json:"style"`
	URL         string   `json:"url"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        CardIcon `json:"icon"`
}

type CardIcon struct {
	URL string `json:"url"`
}

// MessageOptions carries notification options; only color is used today.
type MessageOptions struct {
	Color string `json:"color,omitempty"`
}

// Message is one entry of a room's history feed. From can be an object or a
// plain string depending on the sender type, so it stays raw.
type Message struct {
	ID      string          `json:"id"`
	From    json.RawMessage `json:"from"`
	Message string          `json:"message"`
	Date    string          `json:"date"`
}

// API is the remote chat platform contract the use cases depend on.
type API interface {
	// AddRoomWebhook registers a hook and returns the platform-assigned id.
	AddRoomWebhook(ctx context.Context, tenant *model.Tenant, roomID string, spec WebhookSpec) (string, error)

	RemoveRoomWebhook(ctx context.Context, tenant *model.Tenant, roomID, hookID string) error

	GetUser(ctx context.Context, tenant *model.Tenant, userID string) (*User, error)

	SendMessage(ctx context.Context, tenant *model.Tenant, roomID, message string, opts MessageOptions, card *Card) error

	GetLatestHistory(ctx context.Context, tenant *model.Tenant, roomID string, limit int) ([]Message, error)

	UpdateGlance(ctx context.Context, tenant *model.Tenant, roomID, glanceKey string, glance model.Glance) error
}
