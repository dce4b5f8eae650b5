package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/roomkit/guesthistory/domain/model"
	"github.com/roomkit/guesthistory/infrastructure/logger"
	"go.uber.org/zap"
)

const tokenLifetime = time.Minute

type client struct {
	http   *http.Client
	logger *logger.Logger
}

func NewClient(log *logger.Logger) API {
	return &client{
		http:   &http.Client{},
		logger: log,
	}
}

func (c *client) AddRoomWebhook(ctx context.Context, tenant *model.Tenant, roomID string, spec WebhookSpec) (string, error) {
	var res struct {
		ID json.Number `json:"id"`
	}

	path := fmt.Sprintf("room/%s/webhook", url.PathEscape(roomID))
	if err := c.execute(ctx, tenant, http.MethodPost, path, spec, &res); err != nil {
		return "", err
	}

	c.logger.Debug("webhook registered",
		zap.String("roomID", roomID),
		zap.String("event", spec.Event),
		zap.String("hookID", res.ID.String()),
	)
	return res.ID.String(), nil
}

func (c *client) RemoveRoomWebhook(ctx context.Context, tenant *model.Tenant, roomID, hookID string) error {
	path := fmt.Sprintf("room/%s/webhook/%s", url.PathEscape(roomID), url.PathEscape(hookID))
	return c.execute(ctx, tenant, http.MethodDelete, path, nil, nil)
}

func (c *client) GetUser(ctx context.Context, tenant *model.Tenant, userID string) (*User, error) {
	var user User
	path := fmt.Sprintf("user/%s", url.PathEscape(userID))
	if err := c.execute(ctx, tenant, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) SendMessage(ctx context.Context, tenant *model.Tenant, roomID, message string, opts MessageOptions, card *Card) error {
	body := struct {
		Message       string `json:"message"`
		MessageFormat string `json:"message_format"`
		Color         string `json:"color,omitempty"`
		Card          *Card  `json:"card,omitempty"`
	}{
		Message:       message,
		MessageFormat: "text",
		Color:         opts.Color,
		Card:          card,
	}

	path := fmt.Sprintf("room/%s/notification", url.PathEscape(roomID))
	return c.execute(ctx, tenant, http.MethodPost, path, body, nil)
}

func (c *client) GetLatestHistory(ctx context.Context, tenant *model.Tenant, roomID string, limit int) ([]Message, error) {
	var res struct {
		Items []Message `json:"items"`
	}

	path := fmt.Sprintf("room/%s/history/latest?max-results=%d", url.PathEscape(roomID), limit)
	if err := c.execute(ctx, tenant, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *client) UpdateGlance(ctx context.Context, tenant *model.Tenant, roomID, glanceKey string, glance model.Glance) error {
	body := struct {
		Glance []struct {
			Key     string       `json:"key"`
			Content model.Glance `json:"content"`
		} `json:"glance"`
	}{}
	body.Glance = append(body.Glance, struct {
		Key     string       `json:"key"`
		Content model.Glance `json:"content"`
	}{Key: glanceKey, Content: glance})

	path := fmt.Sprintf("addon/ui/room/%s", url.PathEscape(roomID))
	return c.execute(ctx, tenant, http.MethodPut, path, body, nil)
}

func (c *client) execute(ctx context.Context, tenant *model.Tenant, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &model.RemoteAPIError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	endpoint := strings.TrimRight(tenant.APIBaseURL, "/") + "/" + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &model.RemoteAPIError{Op: op, Err: err}
	}

	token, err := c.signRequest(tenant)
	if err != nil {
		return &model.RemoteAPIError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &model.RemoteAPIError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Warn("chat api request failed",
			zap.String("op", op),
			zap.Int("status", res.StatusCode),
		)
		return &model.RemoteAPIError{Op: op, StatusCode: res.StatusCode}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &model.RemoteAPIError{Op: op, Err: err}
	}
	return nil
}

// signRequest mints a short-lived JWT with the tenant's OAuth secret; the
// platform identifies the installation by the issuer claim.
func (c *client) signRequest(tenant *model.Tenant) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tenant.ClientKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tenant.OAuthSecret))
}
