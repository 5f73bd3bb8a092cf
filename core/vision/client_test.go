package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 1)
		assert.Len(t, req.Messages[0].Content, 2)
		assert.True(t, strings.HasPrefix(req.Messages[0].Content[1].ImageURL.URL, "data:image/jpeg;base64,"))

		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": content}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}
	}))
}

func TestClient_Classify(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[{"product": "Whole Milk", "quantity": 2}]`)
	defer srv.Close()

	client := NewClient(Config{
		BaseURL: srv.URL + "/", // trailing slash must be tolerated
		Model:   "test-model",
		ApiKey:  "test-key",
	})

	detections, err := client.Classify(context.Background(), []byte("not-a-real-jpeg"))
	assert.NoError(t, err)
	assert.Len(t, detections, 1)
	assert.Equal(t, "Whole Milk", detections[0].Product)
	assert.Equal(t, float64(2), detections[0].Quantity)
}

func TestClient_Classify_UpstreamError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Model: "test-model", ApiKey: "test-key"})

	_, err := client.Classify(context.Background(), []byte("img"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Classify_NonJSONContent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "Sorry, I cannot identify any products.")
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Model: "test-model", ApiKey: "test-key"})

	_, err := client.Classify(context.Background(), []byte("img"))
	assert.Error(t, err)
}

func TestClient_Classify_MissingKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1", Model: "m"})

	_, err := client.Classify(context.Background(), []byte("img"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}
