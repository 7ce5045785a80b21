package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/channel/whatsapp"
	"github.com/viniciusalbino/autoAtendeAI/internal/http/handlers"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/service"
)

const messagePayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "changes": [{
      "value": {
        "metadata": {"display_phone_number": "5511300000000", "phone_number_id": "10901"},
        "messages": [{"from": "5511999990000", "id": "wamid.A", "type": "text", "text": {"body": "quero um civic"}}]
      }
    }]
  }]
}`

const statusPayload = `{
  "entry": [{
    "changes": [{
      "value": {
        "metadata": {"display_phone_number": "5511300000000"},
        "statuses": [{"id": "wamid.A", "status": "delivered"}]
      }
    }]
  }]
}`

type stubProcessor struct {
	err  error
	seen []whatsapp.Inbound
}

func (s *stubProcessor) ProcessWhatsApp(_ context.Context, in whatsapp.Inbound) error {
	s.seen = append(s.seen, in)
	return s.err
}

func buildWebhookRouter(p *stubProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewWebhookHandler(p, "verify-me", zap.NewNop())
	r := gin.New()
	r.GET("/whatsapp/webhook", h.Verify)
	r.POST("/whatsapp/webhook", h.Receive)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerify(t *testing.T) {
	r := buildWebhookRouter(&stubProcessor{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=42", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveMessage(t *testing.T) {
	p := &stubProcessor{}
	w := post(buildWebhookRouter(p), "/whatsapp/webhook", messagePayload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.Len(t, p.seen, 1)
	assert.Equal(t, "quero um civic", p.seen[0].Event.RawText)
	assert.Equal(t, "5511300000000", p.seen[0].BusinessNumber)
}

func TestReceiveInvalidPayload(t *testing.T) {
	p := &stubProcessor{}
	r := buildWebhookRouter(p)

	assert.Equal(t, http.StatusBadRequest, post(r, "/whatsapp/webhook", `{"foo": 1}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/whatsapp/webhook", `not json`).Code)
	assert.Empty(t, p.seen)
}

func TestReceiveStatusOnlyIsIgnored(t *testing.T) {
	p := &stubProcessor{}
	w := post(buildWebhookRouter(p), "/whatsapp/webhook", statusPayload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ignored"}`, w.Body.String())
	assert.Empty(t, p.seen)
}

func TestReceiveErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate", service.ErrDuplicate, http.StatusOK},
		{"no dealership", dealership.ErrNotFound, http.StatusNotFound},
		{"delivery failure", errors.New("graph api down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(buildWebhookRouter(&stubProcessor{err: tc.err}), "/whatsapp/webhook", messagePayload)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
