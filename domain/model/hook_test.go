package model_test

import (
	"testing"

	"github.com/roomkit/guesthistory/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestHookRecordRemove(t *testing.T) {
	record := &model.HookRecord{Hooks: []model.HookEntry{
		{Type: model.HookGreeting, ID: "1"},
		{Type: model.HookHistory, ID: "2"},
	}}

	assert.True(t, record.Remove(model.HookGreeting))

	_, ok := record.Greeting()
	assert.False(t, ok)

	entry, ok := record.History()
	assert.True(t, ok)
	assert.Equal(t, "2", entry.ID)

	assert.False(t, record.Remove(model.HookGreeting))
}

func TestRoomEventHookType(t *testing.T) {
	message := &model.RoomEvent{Event: model.EventRoomMessage}
	assert.Equal(t, model.HookHistory, message.HookType())

	enter := &model.RoomEvent{Event: model.EventRoomEnter}
	assert.Equal(t, model.HookGreeting, enter.HookType())
}
