package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, fn http.HandlerFunc) *Client {
	t.Helper()
	s := httptest.NewServer(fn)
	t.Cleanup(s.Close)
	return New(s.URL, "test-key", "test-model")
}

func TestClient_ChatComplete(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"word\": \"soccer\"}"}}]}`))
	})

	content, err := c.ChatComplete(context.Background(), "pick a word", map[string]string{"topic": "sports"}, true, 1)
	require.NoError(t, err)
	assert.Equal(t, `{"word": "soccer"}`, content)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "pick a word", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.JSONEq(t, `{"topic": "sports"}`, got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestClient_ChatComplete_NoJSONFormat(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})

	_, err := c.ChatComplete(context.Background(), "sys", nil, false, 0.5)
	require.NoError(t, err)
	assert.Nil(t, got.ResponseFormat)
	assert.InDelta(t, 0.5, got.Temperature, 1e-9)
}

func TestClient_ChatComplete_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
		mention string
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
			mention: "429",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": []}`))
			},
			mention: "no choices",
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": [{"message": {"content": ""}}]}`))
			},
			mention: "empty content",
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			mention: "decoding",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.ChatComplete(context.Background(), "sys", nil, true, 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestClient_ChatComplete_TransportError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	s.Close() // connection refused from now on
	c := New(s.URL, "k", "m")

	_, err := c.ChatComplete(context.Background(), "sys", nil, true, 1)
	assert.Error(t, err)
}
