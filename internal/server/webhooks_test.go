package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	booksync "github.com/smallbiznis/booksync/internal/sync"
	"github.com/smallbiznis/booksync/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type syncerStub struct {
	mu    sync.Mutex
	calls []string
}

func (s *syncerStub) SyncKindByID(_ context.Context, kind booksync.Kind, qbID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, string(kind)+":"+qbID)
	return nil
}

func (s *syncerStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newWebhookTestServer(t *testing.T, token string) (*Server, *syncerStub, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	syncer := &syncerStub{}
	dispatcher := webhook.NewDispatcher(zap.NewNop(), syncer, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go dispatcher.Run(ctx)

	s := &Server{
		engine:     gin.New(),
		log:        zap.NewNop(),
		verifier:   webhook.NewVerifier(token),
		dispatcher: dispatcher,
	}
	s.registerWebhookRoutes()
	return s, syncer, cancel
}

func sign(token string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(token))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookChallengeEcho(t *testing.T) {
	s, syncer, stop := newWebhookTestServer(t, "tok")
	defer stop()

	body := []byte(`{"challenge":"abc-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/quickbooks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc-123")
	assert.Equal(t, 0, syncer.count())
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	s, syncer, stop := newWebhookTestServer(t, "tok")
	defer stop()

	body := []byte(`{"eventNotifications":[{"realmId":"r1","dataChangeEvent":{"entities":[{"name":"Customer","id":"9","operation":"Update"}]}}]}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/quickbooks", bytes.NewReader(body))
	req.Header.Set(webhook.SignatureHeader, sign("wrong-token", body))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Nothing may reach the dispatcher off a rejected delivery.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, syncer.count())
}

func TestWebhookDispatchesEntities(t *testing.T) {
	s, syncer, stop := newWebhookTestServer(t, "tok")
	defer stop()

	body := []byte(`{"eventNotifications":[{"realmId":"r1","dataChangeEvent":{"entities":[` +
		`{"name":"Customer","id":"9","operation":"Update"},` +
		`{"name":"Invoice","id":"130","operation":"Create"}]}}]}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/quickbooks", bytes.NewReader(body))
	req.Header.Set(webhook.SignatureHeader, sign("tok", body))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	require.Eventually(t, func() bool {
		return syncer.count() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestWebhookMissingSignature(t *testing.T) {
	s, _, stop := newWebhookTestServer(t, "tok")
	defer stop()

	body := []byte(`{"eventNotifications":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/quickbooks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
