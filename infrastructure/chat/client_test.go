package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTenant(apiURL string) *model.Tenant {
	return &model.Tenant{
		ClientKey:   "tenant-1",
		OAuthSecret: "s3cret",
		APIBaseURL:  apiURL,
	}
}

func TestAddRoomWebhook_SignsAndParses(t *testing.T) {
	var gotAuth string
	var gotSpec chat.WebhookSpec

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/room/42/webhook", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotSpec))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1007}`))
	}))
	defer server.Close()

	api := chat.NewClient(logger.NewNop())
	tenant := newTestTenant(server.URL)

	id, err := api.AddRoomWebhook(context.Background(), tenant, "42", chat.WebhookSpec{
		URL:   "https://addon.example.com/webhook/history",
		Event: "room_message",
	})
	require.NoError(t, err)
	assert.Equal(t, "1007", id)
	assert.Equal(t, "room_message", gotSpec.Event)

	// The bearer token must verify against the tenant secret and carry the
	// client key as issuer.
	require.True(t, len(gotAuth) > len("Bearer "))
	raw := gotAuth[len("Bearer "):]
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims["iss"])
}

func TestExecute_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	api := chat.NewClient(logger.NewNop())

	_, err := api.GetUser(context.Background(), newTestTenant(server.URL), "7")
	require.Error(t, err)

	var remoteErr *model.RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
}

func TestGetLatestHistory_PassesLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/room/42/history/latest", r.URL.Path)
		require.Equal(t, "75", r.URL.Query().Get("max-results"))

		_, _ = w.Write([]byte(`{"items": [{"id": "m1", "from": "Guesty", "message": "hi", "date": "2026-03-01T12:00:00Z"}]}`))
	}))
	defer server.Close()

	api := chat.NewClient(logger.NewNop())

	messages, err := api.GetLatestHistory(context.Background(), newTestTenant(server.URL), "42", 75)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Message)
	assert.Equal(t, json.RawMessage(`"Guesty"`), messages[0].From)
}
