// Package mux is a thin client for the Mux Video REST API: direct uploads,
// asset creation from remote URLs, and asset status retrieval.
package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	httpClient  *http.Client

	// RetryBackoffs is the sleep schedule between retry attempts.
	RetryBackoffs []time.Duration
}

// envelope is Mux's standard response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// UploadOut represents a direct upload. URL is short-lived; AssetID is
// assigned asynchronously once the platform has received the file.
type UploadOut struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Status    string `json:"status"`
	AssetID   string `json:"asset_id,omitempty"`
	Timeout   int    `json:"timeout,omitempty"`
	TestMode  bool   `json:"test,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// PlaybackIDOut is one playback variant of an asset.
type PlaybackIDOut struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

// AssetOut represents a processed (or processing) asset. Status is one of
// "preparing", "ready", "errored".
type AssetOut struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Duration    float64         `json:"duration,omitempty"`
	PlaybackIDs []PlaybackIDOut `json:"playback_ids,omitempty"`
	Errors      *AssetErrors    `json:"errors,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

type AssetErrors struct {
	Type     string   `json:"type,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

type newAssetSettings struct {
	PlaybackPolicy []string `json:"playback_policy,omitempty"`
}

type createUploadIn struct {
	NewAssetSettings newAssetSettings `json:"new_asset_settings"`
	CORSOrigin       string           `json:"cors_origin,omitempty"`
}

type createAssetIn struct {
	Input          string   `json:"input"`
	PlaybackPolicy []string `json:"playback_policy,omitempty"`
}

func NewClient(baseURL, tokenID, tokenSecret string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokenID:     tokenID,
		tokenSecret: tokenSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		RetryBackoffs: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.tokenID, c.tokenSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s: status %d, body: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
		}
	}

	return nil
}

// CreateDirectUpload issues a short-lived upload URL. File bytes go straight
// from the browser to Mux and never pass through this server.
func (c *Client) CreateDirectUpload(ctx context.Context, playbackPolicy, corsOrigin string) (*UploadOut, error) {
	in := createUploadIn{
		NewAssetSettings: newAssetSettings{PlaybackPolicy: []string{playbackPolicy}},
		CORSOrigin:       corsOrigin,
	}
	var out envelope[UploadOut]
	if err := c.do(ctx, http.MethodPost, "/video/v1/uploads", in, &out); err != nil {
		return nil, fmt.Errorf("failed to create direct upload: %w", err)
	}
	return &out.Data, nil
}

// GetUpload retrieves a direct upload, including the asset id once the
// platform has assigned one.
func (c *Client) GetUpload(ctx context.Context, uploadID string) (*UploadOut, error) {
	var out envelope[UploadOut]
	if err := c.do(ctx, http.MethodGet, "/video/v1/uploads/"+uploadID, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return &out.Data, nil
}

// CreateAsset ingests a video from a remote URL.
func (c *Client) CreateAsset(ctx context.Context, sourceURL, playbackPolicy string) (*AssetOut, error) {
	in := createAssetIn{
		Input:          sourceURL,
		PlaybackPolicy: []string{playbackPolicy},
	}
	var out envelope[AssetOut]
	if err := c.do(ctx, http.MethodPost, "/video/v1/assets", in, &out); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) GetAsset(ctx context.Context, assetID string) (*AssetOut, error) {
	var out envelope[AssetOut]
	if err := c.do(ctx, http.MethodGet, "/video/v1/assets/"+assetID, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &out.Data, nil
}

func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	if err := c.do(ctx, http.MethodDelete, "/video/v1/assets/"+assetID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic.
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(c.RetryBackoffs) {
			time.Sleep(c.RetryBackoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
