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

type tokenRepository struct {
	store  settings.Store
	logger *logger.Logger
	tracer trace.Tracer
}

func NewTokenRepository(store settings.Store, log *logger.Logger, tracer trace.Tracer) repository.TokenRepository {
	return &tokenRepository{
		store:  store,
		logger: log,
		tracer: tracer,
	}
}

func (r *tokenRepository) GetByRoom(ctx context.Context, clientKey, roomID string) (string, bool, error) {
	ctx, span := r.tracer.Start(ctx, "tokenRepository.GetByRoom")
	defer span.End()

	span.SetAttributes(attribute.String("room.id", roomID))

	token, found, err := r.store.Get(ctx, clientKey, tokenReverseKey(roomID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read reverse token index")
		return "", false, &model.StoreError{Op: "get token by room", Err: err}
	}

	span.SetAttributes(attribute.Bool("token.present", found))
	return token, found, nil
}

func (r *tokenRepository) Create(ctx context.Context, clientKey string, room model.RoomIdentity, token string) error {
	ctx, span := r.tracer.Start(ctx, "tokenRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("room.id", room.ID))

	value, err := json.Marshal(model.TokenContext{ClientKey: clientKey, Room: room})
	if err != nil {
		return &model.StoreError{Op: "marshal token context", Err: err}
	}

	// Forward mapping first. If the reverse write below fails, the orphaned
	// forward entry is reclaimed at uninstall; the caller still sees an error
	// and no link is handed out.
	if err := r.store.RawSet(ctx, tokenForwardKey(token), string(value)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write forward token entry")
		return &model.StoreError{Op: "create token forward entry", Err: err}
	}

	if err := r.store.Set(ctx, clientKey, tokenReverseKey(room.ID), token); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write reverse token entry")
		return &model.StoreError{Op: "create token reverse entry", Err: err}
	}

	return nil
}

func (r *tokenRepository) Resolve(ctx context.Context, token string) (*model.TokenContext, error) {
	ctx, span := r.tracer.Start(ctx, "tokenRepository.Resolve")
	defer span.End()

	value, found, err := r.store.RawGet(ctx, tokenForwardKey(token))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read forward token entry")
		return nil, &model.StoreError{Op: "resolve token", Err: err}
	}
	if !found {
		span.SetAttributes(attribute.Bool("token.present", false))
		return nil, model.ErrTokenNotFound
	}

	var tokenCtx model.TokenContext
	if err := json.Unmarshal([]byte(value), &tokenCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corrupt token context")
		return nil, &model.StoreError{Op: "decode token context", Err: err}
	}

	span.SetAttributes(
		attribute.Bool("token.present", true),
		attribute.String("room.id", tokenCtx.Room.ID),
	)
	return &tokenCtx, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, clientKey, roomID string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "tokenRepository.Revoke")
	defer span.End()

	span.SetAttributes(attribute.String("room.id", roomID))

	token, found, err := r.GetByRoom(ctx, clientKey, roomID)
	if err != nil {
		return "", err
	}
	if !found {
		span.SetAttributes(attribute.Bool("token.present", false))
		return "", nil
	}

	if err := r.store.Del(ctx, clientKey, tokenReverseKey(roomID)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete reverse token entry")
		return "", &model.StoreError{Op: "revoke token reverse entry", Err: err}
	}

	if err := r.store.RawDel(ctx, tokenForwardKey(token)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete forward token entry")
		return "", &model.StoreError{Op: "revoke token forward entry", Err: err}
	}

	span.SetAttributes(attribute.Bool("token.present", true))
	return token, nil
}

func (r *tokenRepository) PurgeTenant(ctx context.Context, clientKey string) error {
	ctx, span := r.tracer.Start(ctx, "tokenRepository.PurgeTenant")
	defer span.End()

	pattern := settings.ScopedKey(clientKey, tokenKeyPrefix+"*")
	keys, err := r.store.Keys(ctx, pattern)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scan reverse token keys")
		return &model.StoreError{Op: "scan tenant token keys", Err: err}
	}

	span.SetAttributes(attribute.Int("tokens.count", len(keys)))

	for _, key := range keys {
		token, found, err := r.store.RawGet(ctx, key)
		if err != nil || !found {
			if err != nil {
				r.logger.Warn("skipping unreadable reverse token key",
					zap.String("key", key), zap.Error(err))
			}
			continue
		}

		if err := r.store.RawDel(ctx, tokenForwardKey(token)); err != nil {
			r.logger.Warn("failed to delete forward token entry during purge",
				zap.String("token", token), zap.Error(err))
		}
	}

	return nil
}
