package repository_test

import (
	"context"
	"testing"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/persistence/repository"
	"github.com/roomkit/guesthistory/infrastructure/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestHookRepository_SaveGetRoundtrip(t *testing.T) {
	repo := repository.NewHookRepository(settings.NewInMemoryStore(), noop.NewTracerProvider().Tracer("test"))
	ctx := context.Background()

	record := &model.HookRecord{Hooks: []model.HookEntry{
		{Type: model.HookGreeting, ID: "1001"},
		{Type: model.HookHistory, ID: "1002"},
	}}
	require.NoError(t, repo.Save(ctx, "tenant-1", "42", record))

	loaded, found, err := repo.Get(ctx, "tenant-1", "42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record.Hooks, loaded.Hooks)
}

func TestHookRepository_GetAbsent(t *testing.T) {
	repo := repository.NewHookRepository(settings.NewInMemoryStore(), noop.NewTracerProvider().Tracer("test"))

	_, found, err := repo.Get(context.Background(), "tenant-1", "42")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHookRepository_DeleteAbsentTolerated(t *testing.T) {
	repo := repository.NewHookRepository(settings.NewInMemoryStore(), noop.NewTracerProvider().Tracer("test"))

	assert.NoError(t, repo.Delete(context.Background(), "tenant-1", "42"))
}
