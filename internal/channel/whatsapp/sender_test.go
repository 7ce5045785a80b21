package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

type captured struct {
	path string
	auth string
	body map[string]any
}

func newTestServer(t *testing.T, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		got = append(got, captured{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(Config{Token: "tok", PhoneNumberID: "10901", BaseURL: baseURL}, nil, zaptest.NewLogger(t))
}

func TestSendMessageTypes(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK)
	client := newTestClient(t, srv.URL)

	err := client.Send(context.Background(), "+5511999990000", []reply.Unit{
		{Text: "olá"},
		{Text: "Foto 1 do Corolla", Image: "https://cdn/1.jpg"},
		{Text: "*Toyota Corolla*", Image: "https://cdn/1.jpg", Actions: []reply.Action{
			{ID: "detail-request:corolla", Label: "Quero saber mais sobre este carro"},
			{ID: "more-photos:corolla", Label: "Ver mais fotos"},
			{ID: "decline", Label: "Não, obrigado"},
			{ID: "extra", Label: "ignored"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, *got, 3)

	first := (*got)[0]
	assert.Equal(t, "/v17.0/10901/messages", first.path)
	assert.Equal(t, "Bearer tok", first.auth)
	assert.Equal(t, "5511999990000", first.body["to"])
	assert.Equal(t, "text", first.body["type"])
	assert.Equal(t, "olá", first.body["text"].(map[string]any)["body"])

	image := (*got)[1].body
	assert.Equal(t, "image", image["type"])
	assert.Equal(t, "https://cdn/1.jpg", image["image"].(map[string]any)["link"])
	assert.Equal(t, "Foto 1 do Corolla", image["image"].(map[string]any)["caption"])

	interactive := (*got)[2].body["interactive"].(map[string]any)
	assert.Equal(t, "button", interactive["type"])
	assert.Equal(t, "image", interactive["header"].(map[string]any)["type"])
	buttons := interactive["action"].(map[string]any)["buttons"].([]any)
	require.Len(t, buttons, 3)
	firstReply := buttons[0].(map[string]any)["reply"].(map[string]any)
	assert.Equal(t, "detail-request:corolla", firstReply["id"])
	assert.Equal(t, "Quero saber mais sob", firstReply["title"])
}

func TestSendStopsOnAPIError(t *testing.T) {
	srv, got := newTestServer(t, http.StatusUnauthorized)
	client := newTestClient(t, srv.URL)

	err := client.Send(context.Background(), "5511999990000", []reply.Unit{{Text: "a"}, {Text: "b"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Len(t, *got, 1)
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "Não, obrigado", truncate("Não, obrigado", 20))
	assert.Equal(t, "ção", truncate("çãopq", 3))
}
