package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventsvc "salesdrive/internal/services/event"
	"salesdrive/internal/store/memory"
)

const hook = `{"info":{"webhookType":"order","webhookEvent":"new_order"},"data":{"id":77}}`

func newTestRouter(t *testing.T, token string) (http.Handler, *eventsvc.System, *memory.EventStore) {
	t.Helper()
	store := memory.NewEventStore()
	sys := eventsvc.NewEventProcessingSystem(store, memory.NewDeduper(), nil, eventsvc.DefaultWorkerConfig(), zerolog.Nop())
	h := NewRouter(RouterDependencies{
		WebhookToken: token,
		Receiver:     sys.Ingestor,
		Events:       store,
		Replay:       sys.Replay,
		Logger:       zerolog.Nop(),
	})
	return h, sys, store
}

func do(h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestRouter(t, "secret")

	rec := do(h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookToken(t *testing.T) {
	h, _, store := newTestRouter(t, "secret")

	rec := do(h, http.MethodPost, "/webhooks/salesdrive", hook, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPost, "/webhooks/salesdrive?token=wrong", hook, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPost, "/webhooks/salesdrive?token=secret", hook, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Status    string `json:"status"`
		ID        int64  `json:"id"`
		Duplicate bool   `json:"duplicate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "ok", out.Status)
	assert.False(t, out.Duplicate)

	stored, err := store.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, 77, stored.EntityID)

	rec = do(h, http.MethodPost, "/webhooks/salesdrive", hook, map[string]string{"X-Webhook-Token": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Duplicate)
}

func TestWebhookBadPayload(t *testing.T) {
	h, _, _ := newTestRouter(t, "")

	rec := do(h, http.MethodPost, "/webhooks/salesdrive", `{"data":{}}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndReplayEvents(t *testing.T) {
	h, sys, store := newTestRouter(t, "secret")
	auth := map[string]string{"X-Webhook-Token": "secret"}
	ctx := context.Background()

	rec := do(h, http.MethodPost, "/webhooks/salesdrive", hook, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := sys.Worker.ProcessBatch(ctx)
	require.NoError(t, err)

	rec = do(h, http.MethodGet, "/admin/events?limit=10", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []struct {
			ID     int64  `json:"id"`
			Type   string `json:"type"`
			Status string `json:"status"`
		} `json:"data"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "order", list.Data[0].Type)
	assert.Equal(t, "completed", list.Data[0].Status)
	assert.Equal(t, 10, list.Limit)

	since := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	rec = do(h, http.MethodPost, "/admin/events/replay", `{"since":"`+since+`"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"requeued":1}`, rec.Body.String())

	pending, err := store.FindUnprocessed(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	rec = do(h, http.MethodPost, "/admin/events/replay", `{"since":"yesterday"}`, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/admin/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
