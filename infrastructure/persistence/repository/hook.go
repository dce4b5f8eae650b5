package repository

import (
	"context"
	"encoding/json"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type hookRepository struct {
	store  settings.Store
	tracer trace.Tracer
}

func NewHookRepository(store settings.Store, tracer trace.Tracer) repository.HookRepository {
	return &hookRepository{
		store:  store,
		tracer: tracer,
	}
}

func (r *hookRepository) Get(ctx context.Context, clientKey, roomID string) (*model.HookRecord, bool, error) {
	ctx, span := r.tracer.Start(ctx, "hookRepository.Get")
	defer span.End()

	span.SetAttributes(attribute.String("room.id", roomID))

	value, found, err := r.store.Get(ctx, clientKey, hookKey(roomID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read hook record")
		return nil, false, &model.StoreError{Op: "get hook record", Err: err}
	}
	if !found {
		span.SetAttributes(attribute.Bool("hooks.present", false))
		return nil, false, nil
	}

	var record model.HookRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corrupt hook record")
		return nil, false, &model.StoreError{Op: "decode hook record", Err: err}
	}

	span.SetAttributes(
		attribute.Bool("hooks.present", true),
		attribute.Int("hooks.count", len(record.Hooks)),
	)
	return &record, true, nil
}

func (r *hookRepository) Save(ctx context.Context, clientKey, roomID string, record *model.HookRecord) error {
	ctx, span := r.tracer.Start(ctx, "hookRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("room.id", roomID),
		attribute.Int("hooks.count", len(record.Hooks)),
	)

	value, err := json.Marshal(record)
	if err != nil {
		return &model.StoreError{Op: "marshal hook record", Err: err}
	}

	if err := r.store.Set(ctx, clientKey, hookKey(roomID), string(value)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write hook record")
		return &model.StoreError{Op: "save hook record", Err: err}
	}
	return nil
}

func (r *hookRepository) Delete(ctx context.Context, clientKey, roomID string) error {
	ctx, span := r.tracer.Start(ctx, "hookRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("room.id", roomID))

	if err := r.store.Del(ctx, clientKey, hookKey(roomID)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete hook record")
		return &model.StoreError{Op: "delete hook record", Err: err}
	}
	return nil
}
