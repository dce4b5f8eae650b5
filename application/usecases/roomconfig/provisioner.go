package roomconfig

import (
	"context"
	"fmt"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

// hookProvisioner creates and removes remote event subscriptions and keeps
// the per-room HookRecord aligned with them.
type hookProvisioner struct {
	hooks   repository.HookRepository
	chat    chat.API
	baseURL string
	logger  *logger.Logger
}

func newHookProvisioner(hooks repository.HookRepository, chatAPI chat.API, baseURL string, log *logger.Logger) *hookProvisioner {
	return &hookProvisioner{
		hooks:   hooks,
		chat:    chatAPI,
		baseURL: baseURL,
		logger:  log,
	}
}

func (p *hookProvisioner) newHook(hookType model.HookType, event string) chat.WebhookSpec {
	return chat.WebhookSpec{
		URL:            fmt.Sprintf("%s/webhook/%s", p.baseURL, hookType),
		Event:          event,
		Authentication: "jwt",
		Name:           string(hookType) + " webhook",
	}
}

// enableHistory registers the greeting hook and then the history hook. When
// the second registration fails, the record keeps the entries that did
// succeed; the inconsistency is recognized, not auto-repaired.
func (p *hookProvisioner) enableHistory(ctx context.Context, tenant *model.Tenant, roomID string) error {
	record, found, err := p.hooks.Get(ctx, tenant.ClientKey, roomID)
	if err != nil {
		return err
	}
	if !found {
		record = &model.HookRecord{}
	}

	if _, ok := record.Greeting(); !ok {
		greetingID, err := p.chat.AddRoomWebhook(ctx, tenant, roomID, p.newHook(model.HookGreeting, model.EventRoomEnter))
		if err != nil {
			return fmt.Errorf("failed to register greeting hook: %w", err)
		}
		record.Hooks = append(record.Hooks, model.HookEntry{Type: model.HookGreeting, ID: greetingID})
	}

	historyID, err := p.chat.AddRoomWebhook(ctx, tenant, roomID, p.newHook(model.HookHistory, model.EventRoomMessage))
	if err != nil {
		if saveErr := p.hooks.Save(ctx, tenant.ClientKey, roomID, record); saveErr != nil {
			p.logger.Error("failed to persist partial hook record",
				zap.String("roomID", roomID), zap.Error(saveErr))
		}
		return fmt.Errorf("failed to register history hook: %w", err)
	}
	record.Hooks = append(record.Hooks, model.HookEntry{Type: model.HookHistory, ID: historyID})

	return p.hooks.Save(ctx, tenant.ClientKey, roomID, record)
}

// disableHistory removes every hook for the room, greeting's included, and
// deletes the record. Remote removals are best-effort per entry.
func (p *hookProvisioner) disableHistory(ctx context.Context, tenant *model.Tenant, roomID string) error {
	record, found, err := p.hooks.Get(ctx, tenant.ClientKey, roomID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	for _, hook := range record.Hooks {
		if err := p.chat.RemoveRoomWebhook(ctx, tenant, roomID, hook.ID); err != nil {
			p.logger.Warn("failed to remove remote hook",
				zap.String("roomID", roomID),
				zap.String("hookID", hook.ID),
				zap.String("hookType", string(hook.Type)),
				zap.Error(err))
		}
	}

	return p.hooks.Delete(ctx, tenant.ClientKey, roomID)
}

// enableGreetingOnly is the path for toggling greeting while history stays
// disabled: only the greeting hook is registered, appended to an existing
// record or starting a fresh one.
func (p *hookProvisioner) enableGreetingOnly(ctx context.Context, tenant *model.Tenant, roomID string) error {
	record, found, err := p.hooks.Get(ctx, tenant.ClientKey, roomID)
	if err != nil {
		return err
	}
	if !found {
		record = &model.HookRecord{}
	}
	if _, ok := record.Greeting(); ok {
		return nil
	}

	greetingID, err := p.chat.AddRoomWebhook(ctx, tenant, roomID, p.newHook(model.HookGreeting, model.EventRoomEnter))
	if err != nil {
		return fmt.Errorf("failed to register greeting hook: %w", err)
	}

	record.Hooks = append(record.Hooks, model.HookEntry{Type: model.HookGreeting, ID: greetingID})
	return p.hooks.Save(ctx, tenant.ClientKey, roomID, record)
}

// disableGreetingOnly removes just the greeting entry, leaving history's
// hook (when present) untouched.
func (p *hookProvisioner) disableGreetingOnly(ctx context.Context, tenant *model.Tenant, roomID string) error {
	record, found, err := p.hooks.Get(ctx, tenant.ClientKey, roomID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	entry, ok := record.Greeting()
	if !ok {
		return nil
	}

	if err := p.chat.RemoveRoomWebhook(ctx, tenant, roomID, entry.ID); err != nil {
		p.logger.Warn("failed to remove remote greeting hook",
			zap.String("roomID", roomID),
			zap.String("hookID", entry.ID),
			zap.Error(err))
	}

	record.Remove(model.HookGreeting)
	if len(record.Hooks) == 0 {
		return p.hooks.Delete(ctx, tenant.ClientKey, roomID)
	}
	return p.hooks.Save(ctx, tenant.ClientKey, roomID, record)
}
