package history_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/presentation/controllers/history"
	"github.com/roomkit/guesthistory/presentation/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGuestAccess struct {
	contexts map[string]*model.TokenContext
	messages []chat.Message
}

func (s *stubGuestAccess) HistoryLink(context.Context, string, model.RoomIdentity) (string, error) {
	return "", nil
}

func (s *stubGuestAccess) ResolveToken(_ context.Context, token string) (*model.TokenContext, error) {
	if token == "" {
		return nil, model.ErrMissingToken
	}
	tokenCtx, ok := s.contexts[token]
	if !ok {
		return nil, model.ErrTokenNotFound
	}
	return tokenCtx, nil
}

func (s *stubGuestAccess) LatestHistory(ctx context.Context, token string) ([]chat.Message, *model.TokenContext, error) {
	tokenCtx, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return s.messages, tokenCtx, nil
}

func (s *stubGuestAccess) HandleRoomEvent(context.Context, *model.Tenant, *model.RoomEvent) (bool, error) {
	return false, nil
}

func newRouter(stub *stubGuestAccess) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.HistoryRoutes(&router.RouterGroup, history.NewHistoryController(stub))
	return router
}

func TestRoomContext_KnownToken(t *testing.T) {
	stub := &stubGuestAccess{contexts: map[string]*model.TokenContext{
		"tok-abc": {ClientKey: "tenant-1", Room: model.RoomIdentity{ID: "42", Name: "Lobby"}},
	}}
	router := newRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history/tok-abc", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "42", body["room_id"])
	assert.Equal(t, "Lobby", body["room_name"])
}

func TestRoomContext_UnknownToken(t *testing.T) {
	router := newRouter(&stubGuestAccess{contexts: map[string]*model.TokenContext{}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history/bogus", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is invalid")
}

func TestLatest_ReturnsMessages(t *testing.T) {
	stub := &stubGuestAccess{
		contexts: map[string]*model.TokenContext{
			"tok-abc": {ClientKey: "tenant-1", Room: model.RoomIdentity{ID: "42", Name: "Lobby"}},
		},
		messages: []chat.Message{
			{ID: "m1", Message: "hello", Date: "2026-03-01T12:00:00Z"},
		},
	}
	router := newRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history/tok-abc/latest", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body history.LatestHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Lobby", body.RoomName)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "hello", body.Items[0].Message)
}
