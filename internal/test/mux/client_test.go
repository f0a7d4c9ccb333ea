package mux_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"infinite-flow-backend/internal/mux"
)

func TestClient_CreateDirectUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/video/v1/uploads", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "token-id", user)
		assert.Equal(t, "token-secret", pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "http://localhost:3000", body["cors_origin"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"upload-1","url":"https://storage.mux.example/upload-1","status":"waiting"}}`))
	}))
	defer server.Close()

	client := mux.NewClient(server.URL, "token-id", "token-secret")
	upload, err := client.CreateDirectUpload(t.Context(), "public", "http://localhost:3000")

	require.NoError(t, err)
	assert.Equal(t, "upload-1", upload.ID)
	assert.Equal(t, "https://storage.mux.example/upload-1", upload.URL)
}

func TestClient_GetAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/video/v1/assets/asset-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"asset-1","status":"ready","duration":83.4,"playback_ids":[{"id":"pb-1","policy":"public"}]}}`))
	}))
	defer server.Close()

	client := mux.NewClient(server.URL, "token-id", "token-secret")
	asset, err := client.GetAsset(t.Context(), "asset-1")

	require.NoError(t, err)
	assert.Equal(t, "ready", asset.Status)
	assert.Equal(t, 83.4, asset.Duration)
	require.Len(t, asset.PlaybackIDs, 1)
	assert.Equal(t, "public", asset.PlaybackIDs[0].Policy)
}

func TestClient_ErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"messages":["bad credentials"]}}`))
	}))
	defer server.Close()

	client := mux.NewClient(server.URL, "token-id", "wrong-secret")
	_, err := client.GetAsset(t.Context(), "asset-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestClient_RetryWithBackoff(t *testing.T) {
	client := mux.NewClient("https://api.test.com", "token-id", "token-secret")
	client.RetryBackoffs = []time.Duration{time.Millisecond, time.Millisecond}

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 3 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := mux.NewClient("https://api.test.com", "token-id", "token-secret")
	client.RetryBackoffs = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

	err := client.RetryWithBackoff(func() error {
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}
