package repository

import (
	"context"
	"strconv"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/domain/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type flagRepository struct {
	store  settings.Store
	tracer trace.Tracer
}

func NewFlagRepository(store settings.Store, tracer trace.Tracer) repository.FlagRepository {
	return &flagRepository{
		store:  store,
		tracer: tracer,
	}
}

func (r *flagRepository) Get(ctx context.Context, clientKey string, flag model.FlagName, roomID string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "flagRepository.Get")
	defer span.End()

	span.SetAttributes(
		attribute.String("flag.name", string(flag)),
		attribute.String("room.id", roomID),
	)

	val, found, err := r.store.Get(ctx, clientKey, flagKey(flag, roomID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read flag")
		return false, &model.StoreError{Op: "get flag", Err: err}
	}
	if !found {
		span.SetAttributes(attribute.Bool("flag.present", false))
		return false, nil
	}

	enabled := model.FlagToBool(val)
	span.SetAttributes(
		attribute.Bool("flag.present", true),
		attribute.Bool("flag.value", enabled),
	)
	return enabled, nil
}

func (r *flagRepository) Set(ctx context.Context, clientKey string, flag model.FlagName, roomID string, value bool) error {
	ctx, span := r.tracer.Start(ctx, "flagRepository.Set")
	defer span.End()

	span.SetAttributes(
		attribute.String("flag.name", string(flag)),
		attribute.String("room.id", roomID),
		attribute.Bool("flag.value", value),
	)

	if err := r.store.Set(ctx, clientKey, flagKey(flag, roomID), strconv.FormatBool(value)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write flag")
		return &model.StoreError{Op: "set flag", Err: err}
	}
	return nil
}
